package client

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/storage/memory"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	clientCache, err := cache.New[int64, domain.Client](16)
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	return New(memory.NewClientRepository(), clientCache, nil)
}

func TestCreateDuplicateUsernameConflict(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Username: "ana", Name: "Ana", Balance: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	// Логины сравниваются без учёта регистра.
	_, err := svc.Create(ctx, Input{Username: "Ana", Name: "Other"})
	if !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
	if !domain.IsConflict(err) {
		t.Fatalf("duplicate username must be a conflict, got %v", err)
	}
}

func TestPatchUsernameToTakenConflict(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Username: "ana", Name: "Ana"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other, err := svc.Create(ctx, Input{Username: "juan", Name: "Juan"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	taken := "ANA"
	if _, err := svc.Patch(ctx, other.ID, Patch{Username: &taken}); !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Username: "ana", Name: "Ana"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// Запись остаётся, помеченная удалённой: история заказов на неё ссылается.
	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if !got.IsDeleted {
		t.Fatal("expected client to be marked deleted")
	}
}
