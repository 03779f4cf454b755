package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/filter"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

type productRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий продуктов.
func NewProductRepository() domain.ProductRepository {
	return &productRepository{items: make(map[uuid.UUID]domain.Product)}
}

func (r *productRepository) List(_ context.Context, f domain.ProductFilter, page pagination.Request) ([]domain.Product, int, error) {
	r.mu.RLock()
	all := make([]domain.Product, 0, len(r.items))
	for _, p := range r.items {
		all = append(all, p)
	}
	r.mu.RUnlock()

	matched := filter.Apply(all, f.Predicate())
	content, total := sortAndPage(matched, page, productLess(page.SortBy))
	return content, total, nil
}

func (r *productRepository) Get(_ context.Context, id uuid.UUID) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *productRepository) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[p.ID] = p
	return p, nil
}

func (r *productRepository) Update(_ context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	r.items[p.ID] = p
	return p, nil
}

func (r *productRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *productRepository) ExistsByCategory(_ context.Context, category string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if strings.EqualFold(p.Category, category) {
			return true, nil
		}
	}
	return false, nil
}

func productLess(sortBy string) func(a, b domain.Product) bool {
	switch sortBy {
	case "name":
		return func(a, b domain.Product) bool { return a.Name < b.Name }
	case "price":
		return func(a, b domain.Product) bool { return a.Price.LessThan(b.Price) }
	case "weight":
		return func(a, b domain.Product) bool { return a.Weight < b.Weight }
	case "stock":
		return func(a, b domain.Product) bool { return a.Stock < b.Stock }
	default:
		return func(a, b domain.Product) bool { return a.ID.String() < b.ID.String() }
	}
}

var _ domain.ProductRepository = (*productRepository)(nil)
