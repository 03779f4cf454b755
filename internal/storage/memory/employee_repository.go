package memory

import (
	"context"
	"sync"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/filter"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

type employeeRepository struct {
	mu     sync.RWMutex
	items  map[int]domain.Employee
	nextID int
}

// NewEmployeeRepository возвращает in-memory репозиторий сотрудников.
func NewEmployeeRepository() domain.EmployeeRepository {
	return &employeeRepository{items: make(map[int]domain.Employee)}
}

func (r *employeeRepository) List(_ context.Context, f domain.EmployeeFilter, page pagination.Request) ([]domain.Employee, int, error) {
	r.mu.RLock()
	all := make([]domain.Employee, 0, len(r.items))
	for _, e := range r.items {
		all = append(all, e)
	}
	r.mu.RUnlock()

	matched := filter.Apply(all, f.Predicate())
	content, total := sortAndPage(matched, page, employeeLess(page.SortBy))
	return content, total, nil
}

func (r *employeeRepository) Get(_ context.Context, id int) (domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) Create(_ context.Context, e domain.Employee) (domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	e.ID = r.nextID
	r.items[e.ID] = e
	return e, nil
}

func (r *employeeRepository) Update(_ context.Context, e domain.Employee) (domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[e.ID]; !ok {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	r.items[e.ID] = e
	return e, nil
}

func (r *employeeRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.items, id)
	return nil
}

func employeeLess(sortBy string) func(a, b domain.Employee) bool {
	switch sortBy {
	case "name":
		return func(a, b domain.Employee) bool { return a.Name < b.Name }
	case "salary":
		return func(a, b domain.Employee) bool { return a.Salary.LessThan(b.Salary) }
	case "position":
		return func(a, b domain.Employee) bool { return a.Position < b.Position }
	default:
		return func(a, b domain.Employee) bool { return a.ID < b.ID }
	}
}

var _ domain.EmployeeRepository = (*employeeRepository)(nil)
