package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/filter"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

type clientRepository struct {
	mu     sync.RWMutex
	items  map[int64]domain.Client
	nextID int64
}

// NewClientRepository возвращает in-memory репозиторий клиентов.
func NewClientRepository() domain.ClientRepository {
	return &clientRepository{items: make(map[int64]domain.Client)}
}

func (r *clientRepository) List(_ context.Context, f domain.ClientFilter, page pagination.Request) ([]domain.Client, int, error) {
	r.mu.RLock()
	all := make([]domain.Client, 0, len(r.items))
	for _, c := range r.items {
		all = append(all, c)
	}
	r.mu.RUnlock()

	matched := filter.Apply(all, f.Predicate())
	content, total := sortAndPage(matched, page, clientLess(page.SortBy))
	return content, total, nil
}

func (r *clientRepository) Get(_ context.Context, id int64) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return c, nil
}

func (r *clientRepository) GetByUsername(_ context.Context, username string) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if strings.EqualFold(c.Username, username) {
			return c, nil
		}
	}
	return domain.Client{}, domain.ErrClientNotFound
}

func (r *clientRepository) Create(_ context.Context, c domain.Client) (domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if strings.EqualFold(existing.Username, c.Username) {
			return domain.Client{}, domain.ErrClientExists
		}
	}
	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = c
	return c, nil
}

func (r *clientRepository) Update(_ context.Context, c domain.Client) (domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	for id, existing := range r.items {
		if id != c.ID && strings.EqualFold(existing.Username, c.Username) {
			return domain.Client{}, domain.ErrClientExists
		}
	}
	r.items[c.ID] = c
	return c, nil
}

func (r *clientRepository) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.IsDeleted = true
	r.items[id] = c
	return nil
}

func clientLess(sortBy string) func(a, b domain.Client) bool {
	switch sortBy {
	case "username":
		return func(a, b domain.Client) bool { return a.Username < b.Username }
	case "name":
		return func(a, b domain.Client) bool { return a.Name < b.Name }
	default:
		return func(a, b domain.Client) bool { return a.ID < b.ID }
	}
}

var _ domain.ClientRepository = (*clientRepository)(nil)
