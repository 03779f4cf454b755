package supplier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/storage/memory"
)

func newTestService(t *testing.T) (Service, domain.CategoryRepository) {
	t.Helper()

	supplierCache, err := cache.New[uuid.UUID, domain.Supplier](16)
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}

	categories := memory.NewCategoryRepository()
	svc := New(memory.NewSupplierRepository(), categories, supplierCache, nil)
	return svc, categories
}

func seedCategory(t *testing.T, categories domain.CategoryRepository, name string) {
	t.Helper()

	now := time.Now().UTC()
	if _, err := categories.Create(context.Background(), domain.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed category %s: %v", name, err)
	}
}

func TestCreateWithUnknownCategoryRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), Input{
		Name:     "Acme",
		Contact:  600123456,
		Category: "Electronics",
	})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCreateWithKnownCategory(t *testing.T) {
	t.Parallel()

	svc, categories := newTestService(t)
	seedCategory(t, categories, "Electronics")
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{
		Name:     "Acme",
		Contact:  600123456,
		Category: "Electronics",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated supplier id")
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Category != "Electronics" {
		t.Fatalf("expected category Electronics, got %s", got.Category)
	}
}

func TestCreateDuplicateNameConflict(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, Input{Name: "Acme", Contact: 600123456}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(ctx, Input{Name: "acme", Contact: 600654321})
	if !errors.Is(err, domain.ErrSupplierExists) {
		t.Fatalf("expected ErrSupplierExists, got %v", err)
	}
}

func TestPatchToUnknownCategoryRejected(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Acme", Contact: 600123456})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	unknown := "Toys"
	if _, err := svc.Patch(ctx, created.ID, Patch{Category: &unknown}); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
