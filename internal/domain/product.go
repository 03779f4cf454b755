package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clownsinformatics/tienda/internal/filter"
)

// ProductImageDefault — картинка-заглушка для продуктов без изображения.
const ProductImageDefault = "https://via.placeholder.com/150"

// Product — товар каталога. Category хранит имя категории (категориальное
// поле фильтрации); целостность ссылки обеспечивает сервисный слой.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Weight      float64         `json:"weight"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"img"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductFilter — опциональные параметры поиска продуктов.
type ProductFilter struct {
	Name      *string
	MaxWeight *float64
	MaxPrice  *decimal.Decimal
	MinStock  *int
	Category  *string
}

// Predicate собирает единый предикат из присутствующих условий.
func (f ProductFilter) Predicate() filter.Predicate[Product] {
	preds := make([]filter.Predicate[Product], 0, 5)
	if f.Name != nil {
		preds = append(preds, filter.ContainsFold(func(p Product) string { return p.Name }, *f.Name))
	}
	if f.MaxWeight != nil {
		preds = append(preds, filter.Max(func(p Product) float64 { return p.Weight }, *f.MaxWeight))
	}
	if f.MaxPrice != nil {
		preds = append(preds, filter.MaxDecimal(func(p Product) decimal.Decimal { return p.Price }, *f.MaxPrice))
	}
	if f.MinStock != nil {
		preds = append(preds, filter.Min(func(p Product) int { return p.Stock }, *f.MinStock))
	}
	if f.Category != nil {
		preds = append(preds, filter.EqualFold(func(p Product) string { return p.Category }, *f.Category))
	}
	return filter.And(preds...)
}
