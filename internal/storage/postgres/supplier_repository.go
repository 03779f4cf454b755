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

type supplierRepository struct {
	db *sql.DB
}

var _ domain.SupplierRepository = (*supplierRepository)(nil)

// NewSupplierRepository создаёт PostgreSQL-реализацию SupplierRepository.
func NewSupplierRepository(store *Store) domain.SupplierRepository {
	return &supplierRepository{db: store.DB()}
}

var supplierSortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"contact":    "contact",
	"dateOfHire": "date_of_hire",
	"category":   "category",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

func (r *supplierRepository) List(ctx context.Context, f domain.SupplierFilter, page pagination.Request) ([]domain.Supplier, int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c conditions
	if f.Name != nil {
		c.add("name ILIKE $%d", "%"+*f.Name+"%")
	}
	if f.Category != nil {
		c.add("LOWER(category) = LOWER($%d)", *f.Category)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM suppliers`+c.where(), c.args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	clause, args := c.paged(supplierSortColumns, "id", page)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, contact, address, date_of_hire, category, created_at, updated_at
		FROM suppliers`+c.where()+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select suppliers: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Supplier, 0, page.Size)
	for rows.Next() {
		var item domain.Supplier
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Contact, &item.Address,
			&item.DateOfHire, &item.Category, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate suppliers: %w", err)
	}

	return items, total, nil
}

func (r *supplierRepository) Get(ctx context.Context, id uuid.UUID) (domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var item domain.Supplier
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, contact, address, date_of_hire, category, created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`, id).Scan(
		&item.ID, &item.Name, &item.Contact, &item.Address,
		&item.DateOfHire, &item.Category, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Supplier{}, domain.ErrSupplierNotFound
		}
		return domain.Supplier{}, fmt.Errorf("select supplier: %w", err)
	}

	return item, nil
}

func (r *supplierRepository) Create(ctx context.Context, s domain.Supplier) (domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, name, contact, address, date_of_hire, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.Name, s.Contact, s.Address, s.DateOfHire, s.Category, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Supplier{}, domain.ErrSupplierExists
		}
		return domain.Supplier{}, fmt.Errorf("insert supplier: %w", err)
	}

	return s, nil
}

func (r *supplierRepository) Update(ctx context.Context, s domain.Supplier) (domain.Supplier, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE suppliers
		SET name = $2, contact = $3, address = $4, date_of_hire = $5,
		    category = $6, updated_at = $7
		WHERE id = $1
	`, s.ID, s.Name, s.Contact, s.Address, s.DateOfHire, s.Category, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Supplier{}, domain.ErrSupplierExists
		}
		return domain.Supplier{}, fmt.Errorf("update supplier: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Supplier{}, domain.ErrSupplierNotFound
	}

	return s, nil
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSupplierNotFound
	}

	return nil
}
