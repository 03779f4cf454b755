package domain

import (
	"time"

	"github.com/clownsinformatics/tienda/internal/filter"
)

// Role — роль пользователя бэк-офиса.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User — учётная запись бэк-офиса. Username и email уникальны.
// Password хранит bcrypt-хеш и никогда не сериализуется.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Roles     []Role    `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsDeleted bool      `json:"isDeleted"`
}

// UserFilter — опциональные параметры поиска пользователей.
type UserFilter struct {
	Username  *string
	Email     *string
	IsDeleted *bool
}

// Predicate собирает единый предикат из присутствующих условий.
func (f UserFilter) Predicate() filter.Predicate[User] {
	preds := make([]filter.Predicate[User], 0, 3)
	if f.Username != nil {
		preds = append(preds, filter.ContainsFold(func(u User) string { return u.Username }, *f.Username))
	}
	if f.Email != nil {
		preds = append(preds, filter.ContainsFold(func(u User) string { return u.Email }, *f.Email))
	}
	if f.IsDeleted != nil {
		preds = append(preds, filter.Equal(func(u User) bool { return u.IsDeleted }, *f.IsDeleted))
	}
	return filter.And(preds...)
}
