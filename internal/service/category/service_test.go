package category

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/pagination"
	"github.com/clownsinformatics/tienda/internal/storage/memory"
)

func newTestService(t *testing.T) (Service, domain.ProductRepository) {
	t.Helper()

	categoryCache, err := cache.New[uuid.UUID, domain.Category](16)
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}

	products := memory.NewProductRepository()
	svc := New(memory.NewCategoryRepository(), products, categoryCache, nil)
	return svc, products
}

func TestCreateDuplicateNameConflict(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Disney"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(ctx, "disney")
	if !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if !domain.IsConflict(err) {
		t.Fatalf("duplicate name must be a conflict, got %v", err)
	}
}

func TestUpdateToNameOfOtherCategoryConflict(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "Series")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(ctx, "Disney"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(ctx, first.ID, "DISNEY"); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	// Обновление на собственное имя конфликтом не считается.
	if _, err := svc.Update(ctx, first.ID, "Series"); err != nil {
		t.Fatalf("update to own name failed: %v", err)
	}
}

func TestDeleteCategoryWithProductsConflict(t *testing.T) {
	t.Parallel()

	svc, products := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Disney")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := products.Create(ctx, domain.Product{Name: "mickey", Category: "Disney"}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	err = svc.Delete(ctx, created.ID)
	if !errors.Is(err, domain.ErrCategoryHasProducts) {
		t.Fatalf("expected ErrCategoryHasProducts, got %v", err)
	}

	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("category must survive failed delete: %v", err)
	}
}

func TestDeleteUnreferencedCategory(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Empty")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got %v", err)
	}
}

func TestListBuildsPage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	names := []string{"Disney", "Marvel", "Series"}
	for _, name := range names {
		if _, err := svc.Create(ctx, name); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	page, err := svc.List(ctx, domain.CategoryFilter{}, pagination.Request{Size: 2, SortBy: "name"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.TotalElements != 3 || page.TotalPages != 2 {
		t.Fatalf("unexpected page math: %+v", page)
	}
	if len(page.Content) != 2 || page.Content[0].Name != "Disney" {
		t.Fatalf("unexpected page content: %+v", page.Content)
	}
}
