package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

type categoryRepository struct {
	db *sql.DB
}

var _ domain.CategoryRepository = (*categoryRepository)(nil)

// NewCategoryRepository создаёт PostgreSQL-реализацию CategoryRepository.
func NewCategoryRepository(store *Store) domain.CategoryRepository {
	return &categoryRepository{db: store.DB()}
}

var categorySortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (r *categoryRepository) List(ctx context.Context, f domain.CategoryFilter, page pagination.Request) ([]domain.Category, int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c conditions
	if f.Name != nil {
		c.add("name ILIKE $%d", "%"+*f.Name+"%")
	}
	if f.IsDeleted != nil {
		c.add("is_deleted = $%d", *f.IsDeleted)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories`+c.where(), c.args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	clause, args := c.paged(categorySortColumns, "id", page)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at, is_deleted
		FROM categories`+c.where()+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Category, 0, page.Size)
	for rows.Next() {
		var item domain.Category
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedAt, &item.UpdatedAt, &item.IsDeleted); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate categories: %w", err)
	}

	return items, total, nil
}

func (r *categoryRepository) Get(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.getOne(ctx, `WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *categoryRepository) getOne(ctx context.Context, cond string, arg any) (domain.Category, error) {
	var item domain.Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at, is_deleted
		FROM categories `+cond, arg,
	).Scan(&item.ID, &item.Name, &item.CreatedAt, &item.UpdatedAt, &item.IsDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, domain.ErrCategoryNotFound
		}
		return domain.Category{}, fmt.Errorf("select category: %w", err)
	}
	return item, nil
}

func (r *categoryRepository) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, created_at, updated_at, is_deleted)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Name, c.CreatedAt, c.UpdatedAt, c.IsDeleted)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Category{}, domain.ErrCategoryExists
		}
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}

	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $2, updated_at = $3, is_deleted = $4
		WHERE id = $1
	`, c.ID, c.Name, c.UpdatedAt, c.IsDeleted)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Category{}, domain.ErrCategoryExists
		}
		return domain.Category{}, fmt.Errorf("update category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Category{}, domain.ErrCategoryNotFound
	}

	return c, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}
