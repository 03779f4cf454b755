package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/clownsinformatics/tienda/internal/filter"
)

// Supplier — поставщик. Привязан к категории по имени.
type Supplier struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Contact    int       `json:"contact"`
	Address    string    `json:"address"`
	DateOfHire time.Time `json:"dateOfHire"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SupplierFilter — опциональные параметры поиска поставщиков.
type SupplierFilter struct {
	Name     *string
	Category *string
}

// Predicate собирает единый предикат из присутствующих условий.
func (f SupplierFilter) Predicate() filter.Predicate[Supplier] {
	preds := make([]filter.Predicate[Supplier], 0, 2)
	if f.Name != nil {
		preds = append(preds, filter.ContainsFold(func(s Supplier) string { return s.Name }, *f.Name))
	}
	if f.Category != nil {
		preds = append(preds, filter.EqualFold(func(s Supplier) string { return s.Category }, *f.Category))
	}
	return filter.And(preds...)
}
