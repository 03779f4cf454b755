package memory

import (
	"context"
	"sync"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

type orderRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepository{items: make(map[string]domain.Order)}
}

func (r *orderRepository) List(_ context.Context, page pagination.Request) ([]domain.Order, int, error) {
	r.mu.RLock()
	all := make([]domain.Order, 0, len(r.items))
	for _, o := range r.items {
		all = append(all, o)
	}
	r.mu.RUnlock()

	content, total := sortAndPage(all, page, orderLess(page.SortBy))
	return content, total, nil
}

func (r *orderRepository) ListByUser(_ context.Context, userID int64, page pagination.Request) ([]domain.Order, int, error) {
	r.mu.RLock()
	matched := make([]domain.Order, 0)
	for _, o := range r.items {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	r.mu.RUnlock()

	content, total := sortAndPage(matched, page, orderLess(page.SortBy))
	return content, total, nil
}

func (r *orderRepository) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (r *orderRepository) Create(_ context.Context, o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[o.ID] = o
	return o, nil
}

func (r *orderRepository) Update(_ context.Context, o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[o.ID]; !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	r.items[o.ID] = o
	return o, nil
}

func (r *orderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *orderRepository) ExistsByUserID(_ context.Context, userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.items {
		if o.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func orderLess(sortBy string) func(a, b domain.Order) bool {
	switch sortBy {
	case "createdAt":
		return func(a, b domain.Order) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	case "totalAmount":
		return func(a, b domain.Order) bool { return a.TotalAmount.LessThan(b.TotalAmount) }
	default:
		return func(a, b domain.Order) bool { return a.ID < b.ID }
	}
}

var _ domain.OrderRepository = (*orderRepository)(nil)
