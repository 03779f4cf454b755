package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/pagination"
	"github.com/clownsinformatics/tienda/internal/storage/memory"
)

type fixture struct {
	svc      Service
	products domain.ProductRepository
	clients  domain.ClientRepository
	users    domain.UserRepository

	userID   int64
	clientID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	orders := memory.NewOrderRepository()
	products := memory.NewProductRepository()
	clients := memory.NewClientRepository()
	users := memory.NewUserRepository()

	orderCache, err := cache.New[string, domain.Order](16)
	require.NoError(t, err)

	user, err := users.Create(ctx, domain.User{
		Name:     "Admin",
		Username: "admin",
		Email:    "admin@example.com",
		Password: "hash",
		Roles:    []domain.Role{domain.RoleAdmin},
	})
	require.NoError(t, err)

	client, err := clients.Create(ctx, domain.Client{
		Username: "ana",
		Name:     "Ana",
		Email:    "ana@example.com",
		Address:  "Calle Mayor 1",
		Phone:    "600000000",
	})
	require.NoError(t, err)

	return &fixture{
		svc:      New(orders, products, clients, users, orderCache, nil),
		products: products,
		clients:  clients,
		users:    users,
		userID:   user.ID,
		clientID: client.ID,
	}
}

func (f *fixture) addProduct(t *testing.T, name, price string, stock int) domain.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), domain.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	})
	require.NoError(t, err)
	return p
}

func TestCreateComputesTotalsAndReservesStock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	ssd := f.addProduct(t, "ssd", "10.0", 5)
	hdd := f.addProduct(t, "hdd", "5.0", 5)

	created, err := f.svc.Create(ctx, CreateInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Lines: []LineInput{
			{ProductID: ssd.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("10.0")},
			{ProductID: hdd.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("5.0")},
		},
	})
	require.NoError(t, err)

	require.Equal(t, 2, created.TotalItems)
	require.True(t, created.TotalAmount.Equal(decimal.RequireFromString("25.0")),
		"total amount = %s", created.TotalAmount)
	require.Equal(t, "ana", created.Client.Username)

	gotSSD, err := f.products.Get(ctx, ssd.ID)
	require.NoError(t, err)
	require.Equal(t, 3, gotSSD.Stock)

	gotHDD, err := f.products.Get(ctx, hdd.ID)
	require.NoError(t, err)
	require.Equal(t, 4, gotHDD.Stock)
}

func TestCreateRejectsEmptyLines(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), CreateInput{UserID: f.userID, ClientID: f.clientID})
	require.ErrorIs(t, err, domain.ErrOrderNoLines)
	require.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCreateRejectsInsufficientStock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := f.addProduct(t, "ssd", "10.0", 1)

	_, err := f.svc.Create(context.Background(), CreateInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Lines:    []LineInput{{ProductID: p.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("10.0")}},
	})
	require.ErrorIs(t, err, domain.ErrProductNoStock)

	got, err := f.products.Get(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Stock, "stock must not change on rejected order")
}

func TestCreateRejectsPriceMismatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := f.addProduct(t, "ssd", "10.0", 5)

	_, err := f.svc.Create(context.Background(), CreateInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Lines:    []LineInput{{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("9.99")}},
	})
	require.ErrorIs(t, err, domain.ErrProductBadPrice)
}

func TestCreateRejectsUnknownUserAndClient(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	p := f.addProduct(t, "ssd", "10.0", 5)
	lines := []LineInput{{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.0")}}

	_, err := f.svc.Create(context.Background(), CreateInput{UserID: 999, ClientID: f.clientID, Lines: lines})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.svc.Create(context.Background(), CreateInput{UserID: f.userID, ClientID: 999, Lines: lines})
	require.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestClientSnapshotIsNotReconciled(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "ssd", "10.0", 5)

	created, err := f.svc.Create(ctx, CreateInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Lines:    []LineInput{{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.0")}},
	})
	require.NoError(t, err)

	client, err := f.clients.Get(ctx, f.clientID)
	require.NoError(t, err)
	client.Address = "Nueva Direccion 5"
	_, err = f.clients.Update(ctx, client)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Calle Mayor 1", got.Client.Address, "snapshot must keep creation-time data")
}

func TestUpdateReturnsOldStockAndReservesNew(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ssd := f.addProduct(t, "ssd", "10.0", 5)
	hdd := f.addProduct(t, "hdd", "5.0", 5)

	created, err := f.svc.Create(ctx, CreateInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Lines:    []LineInput{{ProductID: ssd.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("10.0")}},
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, created.ID, UpdateInput{
		Lines: []LineInput{{ProductID: hdd.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("5.0")}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, updated.TotalItems)
	require.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("10.0")))

	gotSSD, err := f.products.Get(ctx, ssd.ID)
	require.NoError(t, err)
	require.Equal(t, 5, gotSSD.Stock, "old lines must be returned to stock")

	gotHDD, err := f.products.Get(ctx, hdd.ID)
	require.NoError(t, err)
	require.Equal(t, 3, gotHDD.Stock)
}

func TestUpdateKeepsStockWhenValidationFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ssd := f.addProduct(t, "ssd", "10.0", 5)

	created, err := f.svc.Create(ctx, CreateInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Lines:    []LineInput{{ProductID: ssd.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("10.0")}},
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, created.ID, UpdateInput{})
	require.ErrorIs(t, err, domain.ErrOrderNoLines)

	got, err := f.products.Get(ctx, ssd.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.Stock, "reserved stock must be restored after failed update")
}

func TestDeleteReturnsStock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ssd := f.addProduct(t, "ssd", "10.0", 5)

	created, err := f.svc.Create(ctx, CreateInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Lines:    []LineInput{{ProductID: ssd.ID, Quantity: 4, UnitPrice: decimal.RequireFromString("10.0")}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, created.ID))

	got, err := f.products.Get(ctx, ssd.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Stock)

	_, err = f.svc.Get(ctx, created.ID)
	require.True(t, errors.Is(err, domain.ErrOrderNotFound), "got %v", err)
}

func TestListByUserPagination(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	ssd := f.addProduct(t, "ssd", "1.0", 1000)

	for i := 0; i < 23; i++ {
		_, err := f.svc.Create(ctx, CreateInput{
			UserID:   f.userID,
			ClientID: f.clientID,
			Lines:    []LineInput{{ProductID: ssd.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("1.0")}},
		})
		require.NoError(t, err)
	}

	page, err := f.svc.ListByUser(ctx, f.userID, pagination.Request{Page: 2, Size: 10})
	require.NoError(t, err)
	require.Equal(t, 23, page.TotalElements)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Content, 3)
	require.True(t, page.Last)
}
