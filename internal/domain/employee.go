package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clownsinformatics/tienda/internal/filter"
)

// Employee — сотрудник магазина.
type Employee struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Salary    decimal.Decimal `json:"salary"`
	Position  string          `json:"position"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// EmployeeFilter — опциональные параметры поиска сотрудников.
type EmployeeFilter struct {
	Name      *string
	MinSalary *decimal.Decimal
	MaxSalary *decimal.Decimal
	Position  *string
}

// Predicate собирает единый предикат из присутствующих условий.
func (f EmployeeFilter) Predicate() filter.Predicate[Employee] {
	preds := make([]filter.Predicate[Employee], 0, 4)
	if f.Name != nil {
		preds = append(preds, filter.ContainsFold(func(e Employee) string { return e.Name }, *f.Name))
	}
	if f.MinSalary != nil {
		preds = append(preds, filter.MinDecimal(func(e Employee) decimal.Decimal { return e.Salary }, *f.MinSalary))
	}
	if f.MaxSalary != nil {
		preds = append(preds, filter.MaxDecimal(func(e Employee) decimal.Decimal { return e.Salary }, *f.MaxSalary))
	}
	if f.Position != nil {
		preds = append(preds, filter.EqualFold(func(e Employee) string { return e.Position }, *f.Position))
	}
	return filter.And(preds...)
}
