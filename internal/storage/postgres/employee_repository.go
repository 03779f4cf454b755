package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

type employeeRepository struct {
	db *sql.DB
}

var _ domain.EmployeeRepository = (*employeeRepository)(nil)

// NewEmployeeRepository создаёт PostgreSQL-реализацию EmployeeRepository.
func NewEmployeeRepository(store *Store) domain.EmployeeRepository {
	return &employeeRepository{db: store.DB()}
}

var employeeSortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"salary":    "salary",
	"position":  "position",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (r *employeeRepository) List(ctx context.Context, f domain.EmployeeFilter, page pagination.Request) ([]domain.Employee, int, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var c conditions
	if f.Name != nil {
		c.add("name ILIKE $%d", "%"+*f.Name+"%")
	}
	if f.MinSalary != nil {
		c.add("salary >= $%d", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		c.add("salary <= $%d", *f.MaxSalary)
	}
	if f.Position != nil {
		c.add("LOWER(position) = LOWER($%d)", *f.Position)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM employees`+c.where(), c.args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	clause, args := c.paged(employeeSortColumns, "id", page)
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, salary, position, created_at, updated_at
		FROM employees`+c.where()+clause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select employees: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Employee, 0, page.Size)
	for rows.Next() {
		var item domain.Employee
		if err := rows.Scan(&item.ID, &item.Name, &item.Salary, &item.Position, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate employees: %w", err)
	}

	return items, total, nil
}

func (r *employeeRepository) Get(ctx context.Context, id int) (domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var item domain.Employee
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, salary, position, created_at, updated_at
		FROM employees
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Salary, &item.Position, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Employee{}, domain.ErrEmployeeNotFound
		}
		return domain.Employee{}, fmt.Errorf("select employee: %w", err)
	}

	return item, nil
}

func (r *employeeRepository) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (name, salary, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.Name, e.Salary, e.Position, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("insert employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE employees
		SET name = $2, salary = $3, position = $4, updated_at = $5
		WHERE id = $1
	`, e.ID, e.Name, e.Salary, e.Position, e.UpdatedAt)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("update employee: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}

	return e, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrEmployeeNotFound
	}

	return nil
}
