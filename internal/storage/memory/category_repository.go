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

type categoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]domain.Category
}

// NewCategoryRepository возвращает in-memory репозиторий категорий.
func NewCategoryRepository() domain.CategoryRepository {
	return &categoryRepository{items: make(map[uuid.UUID]domain.Category)}
}

func (r *categoryRepository) List(_ context.Context, f domain.CategoryFilter, page pagination.Request) ([]domain.Category, int, error) {
	r.mu.RLock()
	all := make([]domain.Category, 0, len(r.items))
	for _, c := range r.items {
		all = append(all, c)
	}
	r.mu.RUnlock()

	matched := filter.Apply(all, f.Predicate())
	content, total := sortAndPage(matched, page, categoryLess(page.SortBy))
	return content, total, nil
}

func (r *categoryRepository) Get(_ context.Context, id uuid.UUID) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (r *categoryRepository) GetByName(_ context.Context, name string) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

func (r *categoryRepository) Create(_ context.Context, c domain.Category) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Уникальность имени — аналог unique-констрейнта БД.
	for _, existing := range r.items {
		if strings.EqualFold(existing.Name, c.Name) {
			return domain.Category{}, domain.ErrCategoryExists
		}
	}
	r.items[c.ID] = c
	return c, nil
}

func (r *categoryRepository) Update(_ context.Context, c domain.Category) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	for id, existing := range r.items {
		if id != c.ID && strings.EqualFold(existing.Name, c.Name) {
			return domain.Category{}, domain.ErrCategoryExists
		}
	}
	r.items[c.ID] = c
	return c, nil
}

func (r *categoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.items, id)
	return nil
}

func categoryLess(sortBy string) func(a, b domain.Category) bool {
	switch sortBy {
	case "name":
		return func(a, b domain.Category) bool { return a.Name < b.Name }
	case "createdAt":
		return func(a, b domain.Category) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b domain.Category) bool { return a.ID.String() < b.ID.String() }
	}
}

var _ domain.CategoryRepository = (*categoryRepository)(nil)
