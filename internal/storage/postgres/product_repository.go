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

type productRepository struct {
	db *sql.DB
}

var _ domain.ProductRepository = (*productRepository)(nil)

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

var productSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"weight":    "weight",
	"price":     "price",
	"stock":     "stock",
	"category":  "category",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (r *productRepository) List(ctx context.Context, f domain.ProductFilter, page pagination.Request) ([]domain.Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c conditions
	if f.Name != nil {
		c.add("name ILIKE $%d", "%"+*f.Name+"%")
	}
	if f.MaxWeight != nil {
		c.add("weight <= $%d", *f.MaxWeight)
	}
	if f.MaxPrice != nil {
		c.add("price <= $%d", *f.MaxPrice)
	}
	if f.MinStock != nil {
		c.add("stock >= $%d", *f.MinStock)
	}
	if f.Category != nil {
		c.add("LOWER(category) = LOWER($%d)", *f.Category)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products`+c.where(), c.args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	clause, args := c.paged(productSortColumns, "id", page)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, weight, price, image, stock, description, category, created_at, updated_at
		FROM products`+c.where()+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Product, 0, page.Size)
	for rows.Next() {
		item, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate products: %w", err)
	}

	return items, total, nil
}

func scanProduct(rows *sql.Rows) (domain.Product, error) {
	var item domain.Product
	if err := rows.Scan(
		&item.ID, &item.Name, &item.Weight, &item.Price, &item.Image,
		&item.Stock, &item.Description, &item.Category, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return domain.Product{}, fmt.Errorf("scan product: %w", err)
	}
	return item, nil
}

func (r *productRepository) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var item domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, weight, price, image, stock, description, category, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&item.ID, &item.Name, &item.Weight, &item.Price, &item.Image,
		&item.Stock, &item.Description, &item.Category, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return item, nil
}

func (r *productRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, weight, price, image, stock, description, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.ID, p.Name, p.Weight, p.Price, p.Image, p.Stock, p.Description, p.Category, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, weight = $3, price = $4, image = $5, stock = $6,
		    description = $7, category = $8, updated_at = $9
		WHERE id = $1
	`, p.ID, p.Name, p.Weight, p.Price, p.Image, p.Stock, p.Description, p.Category, p.UpdatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}

	return p, nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) ExistsByCategory(ctx context.Context, category string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM products WHERE LOWER(category) = LOWER($1))
	`, category).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check products by category: %w", err)
	}

	return exists, nil
}
