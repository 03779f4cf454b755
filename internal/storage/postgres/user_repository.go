package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

type userRepository struct {
	db *sql.DB
}

var _ domain.UserRepository = (*userRepository)(nil)

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

var userSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"lastName":  "last_name",
	"username":  "username",
	"email":     "email",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// Роли хранятся одной текстовой колонкой через запятую.
func joinRoles(roles []domain.Role) string {
	parts := make([]string, 0, len(roles))
	for _, role := range roles {
		parts = append(parts, string(role))
	}
	return strings.Join(parts, ",")
}

func splitRoles(raw string) []domain.Role {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	roles := make([]domain.Role, 0, len(parts))
	for _, part := range parts {
		roles = append(roles, domain.Role(strings.TrimSpace(part)))
	}
	return roles
}

func (r *userRepository) List(ctx context.Context, f domain.UserFilter, page pagination.Request) ([]domain.User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c conditions
	if f.Username != nil {
		c.add("username ILIKE $%d", "%"+*f.Username+"%")
	}
	if f.Email != nil {
		c.add("email ILIKE $%d", "%"+*f.Email+"%")
	}
	if f.IsDeleted != nil {
		c.add("is_deleted = $%d", *f.IsDeleted)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users`+c.where(), c.args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	clause, args := c.paged(userSortColumns, "id", page)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, last_name, username, email, password, roles, created_at, updated_at, is_deleted
		FROM users`+c.where()+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	items := make([]domain.User, 0, page.Size)
	for rows.Next() {
		var (
			item  domain.User
			roles string
		)
		if err := rows.Scan(
			&item.ID, &item.Name, &item.LastName, &item.Username, &item.Email,
			&item.Password, &roles, &item.CreatedAt, &item.UpdatedAt, &item.IsDeleted,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		item.Roles = splitRoles(roles)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	return items, total, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.getOne(ctx, `WHERE LOWER(username) = LOWER($1)`, username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.getOne(ctx, `WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *userRepository) getOne(ctx context.Context, cond string, arg any) (domain.User, error) {
	var (
		item  domain.User
		roles string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, last_name, username, email, password, roles, created_at, updated_at, is_deleted
		FROM users `+cond, arg,
	).Scan(
		&item.ID, &item.Name, &item.LastName, &item.Username, &item.Email,
		&item.Password, &roles, &item.CreatedAt, &item.UpdatedAt, &item.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	item.Roles = splitRoles(roles)
	return item, nil
}

func (r *userRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, last_name, username, email, password, roles, created_at, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, u.Name, u.LastName, u.Username, u.Email, u.Password, joinRoles(u.Roles), u.CreatedAt, u.UpdatedAt, u.IsDeleted).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = $2, last_name = $3, username = $4, email = $5, password = $6,
		    roles = $7, updated_at = $8, is_deleted = $9
		WHERE id = $1
	`, u.ID, u.Name, u.LastName, u.Username, u.Email, u.Password, joinRoles(u.Roles), u.UpdatedAt, u.IsDeleted)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	return u, nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
