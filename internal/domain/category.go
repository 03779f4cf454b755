package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/clownsinformatics/tienda/internal/filter"
)

// Category — товарная категория. Имя уникально без учёта регистра.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsDeleted bool      `json:"isDeleted"`
}

// CategoryFilter — опциональные параметры поиска категорий.
// Все присутствующие условия соединяются AND.
type CategoryFilter struct {
	Name      *string
	IsDeleted *bool
}

// Predicate собирает единый предикат из присутствующих условий.
func (f CategoryFilter) Predicate() filter.Predicate[Category] {
	preds := make([]filter.Predicate[Category], 0, 2)
	if f.Name != nil {
		preds = append(preds, filter.ContainsFold(func(c Category) string { return c.Name }, *f.Name))
	}
	if f.IsDeleted != nil {
		preds = append(preds, filter.Equal(func(c Category) bool { return c.IsDeleted }, *f.IsDeleted))
	}
	return filter.And(preds...)
}
