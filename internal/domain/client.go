package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clownsinformatics/tienda/internal/filter"
)

// Client — покупатель магазина. Username уникален.
type Client struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Email     string          `json:"email"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone"`
	Birthdate time.Time       `json:"birthdate"`
	Image     string          `json:"image"`
	IsDeleted bool            `json:"isDeleted"`
}

// Snapshot возвращает денормализованную копию клиента для встраивания
// в заказ. Снимок фиксирует клиента на момент оформления и не
// синхронизируется с последующими правками.
func (c Client) Snapshot() ClientSnapshot {
	return ClientSnapshot{
		ID:       c.ID,
		Username: c.Username,
		Name:     c.Name,
		Email:    c.Email,
		Address:  c.Address,
		Phone:    c.Phone,
	}
}

// ClientFilter — опциональные параметры поиска клиентов.
type ClientFilter struct {
	Username  *string
	IsDeleted *bool
}

// Predicate собирает единый предикат из присутствующих условий.
func (f ClientFilter) Predicate() filter.Predicate[Client] {
	preds := make([]filter.Predicate[Client], 0, 2)
	if f.Username != nil {
		preds = append(preds, filter.ContainsFold(func(c Client) string { return c.Username }, *f.Username))
	}
	if f.IsDeleted != nil {
		preds = append(preds, filter.Equal(func(c Client) bool { return c.IsDeleted }, *f.IsDeleted))
	}
	return filter.And(preds...)
}
