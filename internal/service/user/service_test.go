package user

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/storage/memory"
)

func newTestService(t *testing.T) (Service, domain.UserRepository, domain.OrderRepository) {
	t.Helper()

	users := memory.NewUserRepository()
	orders := memory.NewOrderRepository()
	userCache, err := cache.New[int64, domain.User](16)
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}

	return New(users, orders, userCache, nil), users, orders
}

func TestCreateHashesPassword(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{
		Name:     "Ana",
		Username: "ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if created.Password == "secret123" {
		t.Fatal("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(created.Roles) != 1 || created.Roles[0] != domain.RoleUser {
		t.Fatalf("expected default USER role, got %v", created.Roles)
	}
}

func TestCreateDuplicateUsernameOrEmailConflict(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Username: "ana", Email: "ana@example.com", Password: "x"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Create(ctx, Input{Username: "ANA", Email: "other@example.com", Password: "x"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for username, got %v", err)
	}
	if _, err := svc.Create(ctx, Input{Username: "other", Email: "Ana@Example.com", Password: "x"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for email, got %v", err)
	}
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Username: "ana", Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.SignIn(ctx, "ana", "secret123")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if got.Username != "ana" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.SignIn(ctx, "ana", "wrong"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "ana", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("mismatch must map to unauthorized, got %v", err)
	}
	if _, err := svc.SignIn(ctx, "ghost", "secret123"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteHardWhenNoOrders(t *testing.T) {
	t.Parallel()

	svc, users, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Username: "ana", Email: "ana@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := users.Get(ctx, created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user without orders must be removed, got %v", err)
	}
}

func TestDeleteSoftWhenOrdersExist(t *testing.T) {
	t.Parallel()

	svc, users, orders := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Username: "ana", Email: "ana@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := orders.Create(ctx, domain.Order{ID: domain.NewOrderID(), UserID: created.ID}); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	got, err := users.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("user with orders must survive delete: %v", err)
	}
	if !got.IsDeleted {
		t.Fatal("user with orders must be marked deleted")
	}
}

func TestUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Username: "ana", Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, Input{
		Name:     "Ana Maria",
		Username: "ana",
		Email:    "ana@example.com",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Password != created.Password {
		t.Fatal("empty password must keep previous hash")
	}

	if _, err := svc.SignIn(ctx, "ana", "secret123"); err != nil {
		t.Fatalf("sign in after update failed: %v", err)
	}
}
