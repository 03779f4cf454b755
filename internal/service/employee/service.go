// Package employee реализует операции над сотрудниками.
package employee

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/notify"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

// Input — данные создания или полного обновления сотрудника.
type Input struct {
	Name     string
	Salary   decimal.Decimal
	Position string
}

// Patch — частичное обновление сотрудника.
type Patch struct {
	Name     *string
	Salary   *decimal.Decimal
	Position *string
}

// Service описывает операции над сотрудниками.
type Service interface {
	List(ctx context.Context, f domain.EmployeeFilter, page pagination.Request) (pagination.Page[domain.Employee], error)
	Get(ctx context.Context, id int) (domain.Employee, error)
	Create(ctx context.Context, in Input) (domain.Employee, error)
	Update(ctx context.Context, id int, in Input) (domain.Employee, error)
	Patch(ctx context.Context, id int, patch Patch) (domain.Employee, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo     domain.EmployeeRepository
	cache    *cache.Cache[int, domain.Employee]
	notifier *notify.Notifier
	logger   *log.Entry
}

// New создаёт сервис сотрудников. Кэш и notifier могут быть nil.
func New(repo domain.EmployeeRepository, c *cache.Cache[int, domain.Employee], notifier *notify.Notifier) Service {
	return &service{
		repo:     repo,
		cache:    c,
		notifier: notifier,
		logger:   log.WithField("component", "employee-service"),
	}
}

func (s *service) List(ctx context.Context, f domain.EmployeeFilter, page pagination.Request) (pagination.Page[domain.Employee], error) {
	page = page.Normalize("id")
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return pagination.Page[domain.Employee]{}, err
	}
	return pagination.New(items, total, page), nil
}

func (s *service) Get(ctx context.Context, id int) (domain.Employee, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}
	s.cache.Put(id, item)

	return item, nil
}

func (s *service) Create(ctx context.Context, in Input) (domain.Employee, error) {
	now := time.Now().UTC()
	item, err := s.repo.Create(ctx, domain.Employee{
		Name:      in.Name,
		Salary:    in.Salary,
		Position:  in.Position,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Employee{}, err
	}

	s.cache.Put(item.ID, item)
	s.notifier.Created(notify.EntityEmployee, strconv.Itoa(item.ID), item)
	s.logger.WithField("employee_id", item.ID).Info("employee created")

	return item, nil
}

func (s *service) Update(ctx context.Context, id int, in Input) (domain.Employee, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}

	item.Name = in.Name
	item.Salary = in.Salary
	item.Position = in.Position
	item.UpdatedAt = time.Now().UTC()

	return s.store(ctx, item)
}

func (s *service) Patch(ctx context.Context, id int, patch Patch) (domain.Employee, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Employee{}, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Salary != nil {
		item.Salary = *patch.Salary
	}
	if patch.Position != nil {
		item.Position = *patch.Position
	}
	item.UpdatedAt = time.Now().UTC()

	return s.store(ctx, item)
}

func (s *service) store(ctx context.Context, item domain.Employee) (domain.Employee, error) {
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.Employee{}, err
	}

	s.cache.Put(updated.ID, updated)
	s.notifier.Updated(notify.EntityEmployee, strconv.Itoa(updated.ID), updated)

	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(id)
	s.notifier.Deleted(notify.EntityEmployee, strconv.Itoa(id), id)
	s.logger.WithField("employee_id", id).Info("employee deleted")

	return nil
}
