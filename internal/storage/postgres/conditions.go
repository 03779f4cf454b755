package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/clownsinformatics/tienda/internal/pagination"
)

const opTimeout = 5 * time.Second

// conditions накапливает условия WHERE с позиционными аргументами.
// Условие записывается с плейсхолдером $%d, номер подставляется при
// добавлении.
type conditions struct {
	exprs []string
	args  []any
}

func (c *conditions) add(expr string, arg any) {
	c.args = append(c.args, arg)
	c.exprs = append(c.exprs, fmt.Sprintf(expr, len(c.args)))
}

// where возвращает готовую часть "WHERE ..." либо пустую строку.
func (c *conditions) where() string {
	if len(c.exprs) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.exprs, " AND ")
}

// paged дополняет запрос сортировкой и LIMIT/OFFSET, возвращая полный
// список аргументов. Колонка сортировки берётся из allowlist; неизвестное
// поле заменяется колонкой по умолчанию.
func (c *conditions) paged(sortColumns map[string]string, defaultColumn string, page pagination.Request) (string, []any) {
	column, ok := sortColumns[page.SortBy]
	if !ok {
		column = defaultColumn
	}
	direction := "ASC"
	if page.Desc() {
		direction = "DESC"
	}

	clause := fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		column, direction, len(c.args)+1, len(c.args)+2)
	args := append(append([]any{}, c.args...), page.Size, page.Offset())
	return clause, args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
