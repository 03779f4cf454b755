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

type supplierRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.Supplier
}

// NewSupplierRepository возвращает in-memory репозиторий поставщиков.
func NewSupplierRepository() domain.SupplierRepository {
	return &supplierRepository{items: make(map[uuid.UUID]domain.Supplier)}
}

func (r *supplierRepository) List(_ context.Context, f domain.SupplierFilter, page pagination.Request) ([]domain.Supplier, int, error) {
	r.mu.RLock()
	all := make([]domain.Supplier, 0, len(r.items))
	for _, s := range r.items {
		all = append(all, s)
	}
	r.mu.RUnlock()

	matched := filter.Apply(all, f.Predicate())
	content, total := sortAndPage(matched, page, supplierLess(page.SortBy))
	return content, total, nil
}

func (r *supplierRepository) Get(_ context.Context, id uuid.UUID) (domain.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[id]
	if !ok {
		return domain.Supplier{}, domain.ErrSupplierNotFound
	}
	return s, nil
}

func (r *supplierRepository) Create(_ context.Context, s domain.Supplier) (domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, s.Name) {
			return domain.Supplier{}, domain.ErrSupplierExists
		}
	}
	r.items[s.ID] = s
	return s, nil
}

func (r *supplierRepository) Update(_ context.Context, s domain.Supplier) (domain.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[s.ID]; !ok {
		return domain.Supplier{}, domain.ErrSupplierNotFound
	}
	r.items[s.ID] = s
	return s, nil
}

func (r *supplierRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrSupplierNotFound
	}
	delete(r.items, id)
	return nil
}

func supplierLess(sortBy string) func(a, b domain.Supplier) bool {
	switch sortBy {
	case "name":
		return func(a, b domain.Supplier) bool { return a.Name < b.Name }
	case "dateOfHire":
		return func(a, b domain.Supplier) bool { return a.DateOfHire.Before(b.DateOfHire) }
	default:
		return func(a, b domain.Supplier) bool { return a.ID.String() < b.ID.String() }
	}
}

var _ domain.SupplierRepository = (*supplierRepository)(nil)
