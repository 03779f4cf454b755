package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

func pageReq(page, size int, sortBy string) pagination.Request {
	return pagination.Request{Page: page, Size: size, SortBy: sortBy, Direction: pagination.DirectionAsc}
}

func TestCategoryRepository_UniqueName(t *testing.T) {
	repo := NewCategoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, domain.Category{ID: uuid.New(), Name: "Disney"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Имя уникально без учёта регистра, как unique-констрейнт в БД.
	_, err = repo.Create(ctx, domain.Category{ID: uuid.New(), Name: "disney"})
	if !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if !domain.IsConflict(err) {
		t.Fatal("duplicate name must be a conflict")
	}
}

func TestCategoryRepository_GetByName(t *testing.T) {
	repo := NewCategoryRepository()
	ctx := context.Background()

	created, _ := repo.Create(ctx, domain.Category{ID: uuid.New(), Name: "Portatiles"})

	got, err := repo.GetByName(ctx, "PORTATILES")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, got.ID)
	}

	if _, err := repo.GetByName(ctx, "missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductRepository_CombinedFilter(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	products := []domain.Product{
		{ID: uuid.New(), Name: "Product 1", Price: decimal.NewFromFloat(25.0), Stock: 5},
		{ID: uuid.New(), Name: "Product 2", Price: decimal.NewFromFloat(99.0), Stock: 5},
		{ID: uuid.New(), Name: "Other", Price: decimal.NewFromFloat(10.0), Stock: 5},
	}
	for _, p := range products {
		if _, err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	name := "Product 1"
	maxPrice := decimal.NewFromFloat(50.0)
	got, total, err := repo.List(ctx, domain.ProductFilter{Name: &name, MaxPrice: &maxPrice}, pageReq(0, 10, "name"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(got) != 1 {
		t.Fatalf("expected exactly one match, got %d (total %d)", len(got), total)
	}
	if got[0].Name != "Product 1" {
		t.Fatalf("unexpected product %q", got[0].Name)
	}
	if !got[0].Price.LessThanOrEqual(maxPrice) {
		t.Fatalf("price bound violated: %s", got[0].Price)
	}
}

func TestProductRepository_ExistsByCategory(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, domain.Product{ID: uuid.New(), Name: "Mouse", Category: "Perifericos"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ok, err := repo.ExistsByCategory(ctx, "perifericos")
	if err != nil || !ok {
		t.Fatalf("expected category reference, got %v/%v", ok, err)
	}

	ok, err = repo.ExistsByCategory(ctx, "Disney")
	if err != nil || ok {
		t.Fatalf("expected no reference, got %v/%v", ok, err)
	}
}

func TestOrderRepository_ListByUserPaged(t *testing.T) {
	repo := NewOrderRepository()
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 23; i++ {
		order := domain.Order{
			ID:        domain.NewOrderID(),
			UserID:    7,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		if _, err := repo.Create(ctx, order); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if _, err := repo.Create(ctx, domain.Order{ID: domain.NewOrderID(), UserID: 8, CreatedAt: now}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	content, total, err := repo.ListByUser(ctx, 7, pageReq(2, 10, "createdAt"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 23 {
		t.Fatalf("expected 23 orders for user, got %d", total)
	}
	if len(content) != 3 {
		t.Fatalf("expected 3 items on last page, got %d", len(content))
	}

	exists, err := repo.ExistsByUserID(ctx, 7)
	if err != nil || !exists {
		t.Fatalf("expected orders for user 7: %v/%v", exists, err)
	}
	exists, _ = repo.ExistsByUserID(ctx, 99)
	if exists {
		t.Fatal("expected no orders for user 99")
	}
}

func TestUserRepository_DeleteModes(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, domain.User{Username: "ana", Email: "ana@tienda.dev"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.SoftDelete(ctx, created.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after soft delete failed: %v", err)
	}
	if !got.IsDeleted {
		t.Fatal("soft delete must keep the record, flagged deleted")
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("hard delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found after hard delete, got %v", err)
	}
}

func TestUserRepository_UniqueUsernameAndEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, domain.User{Username: "ana", Email: "ana@tienda.dev"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := repo.Create(ctx, domain.User{Username: "ANA", Email: "other@tienda.dev"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for username, got %v", err)
	}
	if _, err := repo.Create(ctx, domain.User{Username: "other", Email: "ANA@tienda.dev"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for email, got %v", err)
	}
}

func TestSortAndPage_Desc(t *testing.T) {
	items := []int{1, 3, 2}
	content, total := sortAndPage(items, pagination.Request{Page: 0, Size: 2, Direction: pagination.DirectionDesc}, func(a, b int) bool { return a < b })
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if content[0] != 3 || content[1] != 2 {
		t.Fatalf("expected [3 2], got %v", content)
	}
}
