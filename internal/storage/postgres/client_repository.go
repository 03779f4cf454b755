package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

type clientRepository struct {
	db *sql.DB
}

var _ domain.ClientRepository = (*clientRepository)(nil)

// NewClientRepository создаёт PostgreSQL-реализацию ClientRepository.
func NewClientRepository(store *Store) domain.ClientRepository {
	return &clientRepository{db: store.DB()}
}

var clientSortColumns = map[string]string{
	"id":        "id",
	"username":  "username",
	"name":      "name",
	"balance":   "balance",
	"email":     "email",
	"birthdate": "birthdate",
}

func (r *clientRepository) List(ctx context.Context, f domain.ClientFilter, page pagination.Request) ([]domain.Client, int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c conditions
	if f.Username != nil {
		c.add("username ILIKE $%d", "%"+*f.Username+"%")
	}
	if f.IsDeleted != nil {
		c.add("is_deleted = $%d", *f.IsDeleted)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients`+c.where(), c.args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	clause, args := c.paged(clientSortColumns, "id", page)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, name, balance, email, address, phone, birthdate, image, is_deleted
		FROM clients`+c.where()+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select clients: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Client, 0, page.Size)
	for rows.Next() {
		var item domain.Client
		if err := rows.Scan(
			&item.ID, &item.Username, &item.Name, &item.Balance, &item.Email,
			&item.Address, &item.Phone, &item.Birthdate, &item.Image, &item.IsDeleted,
		); err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate clients: %w", err)
	}

	return items, total, nil
}

func (r *clientRepository) Get(ctx context.Context, id int64) (domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *clientRepository) GetByUsername(ctx context.Context, username string) (domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.getOne(ctx, `WHERE LOWER(username) = LOWER($1)`, username)
}

func (r *clientRepository) getOne(ctx context.Context, cond string, arg any) (domain.Client, error) {
	var item domain.Client
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, name, balance, email, address, phone, birthdate, image, is_deleted
		FROM clients `+cond, arg,
	).Scan(
		&item.ID, &item.Username, &item.Name, &item.Balance, &item.Email,
		&item.Address, &item.Phone, &item.Birthdate, &item.Image, &item.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Client{}, domain.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("select client: %w", err)
	}
	return item, nil
}

func (r *clientRepository) Create(ctx context.Context, c domain.Client) (domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO clients (username, name, balance, email, address, phone, birthdate, image, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, c.Username, c.Name, c.Balance, c.Email, c.Address, c.Phone, c.Birthdate, c.Image, c.IsDeleted).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Client{}, domain.ErrClientExists
		}
		return domain.Client{}, fmt.Errorf("insert client: %w", err)
	}

	return c, nil
}

func (r *clientRepository) Update(ctx context.Context, c domain.Client) (domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET username = $2, name = $3, balance = $4, email = $5, address = $6,
		    phone = $7, birthdate = $8, image = $9, is_deleted = $10
		WHERE id = $1
	`, c.ID, c.Username, c.Name, c.Balance, c.Email, c.Address, c.Phone, c.Birthdate, c.Image, c.IsDeleted)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Client{}, domain.ErrClientExists
		}
		return domain.Client{}, fmt.Errorf("update client: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Client{}, domain.ErrClientNotFound
	}

	return c, nil
}

func (r *clientRepository) SoftDelete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE clients SET is_deleted = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete client: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}
