// Package supplier реализует операции над поставщиками.
package supplier

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/notify"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

// Input — данные создания или полного обновления поставщика.
type Input struct {
	Name       string
	Contact    int
	Address    string
	DateOfHire time.Time
	Category   string
}

// Patch — частичное обновление поставщика.
type Patch struct {
	Name       *string
	Contact    *int
	Address    *string
	DateOfHire *time.Time
	Category   *string
}

// Service описывает операции над поставщиками.
type Service interface {
	List(ctx context.Context, f domain.SupplierFilter, page pagination.Request) (pagination.Page[domain.Supplier], error)
	Get(ctx context.Context, id uuid.UUID) (domain.Supplier, error)
	Create(ctx context.Context, in Input) (domain.Supplier, error)
	Update(ctx context.Context, id uuid.UUID, in Input) (domain.Supplier, error)
	Patch(ctx context.Context, id uuid.UUID, patch Patch) (domain.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       domain.SupplierRepository
	categories domain.CategoryRepository
	cache      *cache.Cache[uuid.UUID, domain.Supplier]
	notifier   *notify.Notifier
	logger     *log.Entry
}

// New создаёт сервис поставщиков. Кэш и notifier могут быть nil.
func New(
	repo domain.SupplierRepository,
	categories domain.CategoryRepository,
	c *cache.Cache[uuid.UUID, domain.Supplier],
	notifier *notify.Notifier,
) Service {
	return &service{
		repo:       repo,
		categories: categories,
		cache:      c,
		notifier:   notifier,
		logger:     log.WithField("component", "supplier-service"),
	}
}

func (s *service) List(ctx context.Context, f domain.SupplierFilter, page pagination.Request) (pagination.Page[domain.Supplier], error) {
	page = page.Normalize("id")
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return pagination.Page[domain.Supplier]{}, err
	}
	return pagination.New(items, total, page), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (domain.Supplier, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	s.cache.Put(id, item)

	return item, nil
}

func (s *service) checkCategory(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	_, err := s.categories.GetByName(ctx, name)
	return err
}

func (s *service) Create(ctx context.Context, in Input) (domain.Supplier, error) {
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return domain.Supplier{}, err
	}

	now := time.Now().UTC()
	item, err := s.repo.Create(ctx, domain.Supplier{
		ID:         uuid.New(),
		Name:       in.Name,
		Contact:    in.Contact,
		Address:    in.Address,
		DateOfHire: in.DateOfHire,
		Category:   in.Category,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return domain.Supplier{}, err
	}

	s.cache.Put(item.ID, item)
	s.notifier.Created(notify.EntitySupplier, item.ID.String(), item)
	s.logger.WithField("supplier_id", item.ID).Info("supplier created")

	return item, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in Input) (domain.Supplier, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return domain.Supplier{}, err
	}

	item.Name = in.Name
	item.Contact = in.Contact
	item.Address = in.Address
	item.DateOfHire = in.DateOfHire
	item.Category = in.Category
	item.UpdatedAt = time.Now().UTC()

	return s.store(ctx, item)
}

func (s *service) Patch(ctx context.Context, id uuid.UUID, patch Patch) (domain.Supplier, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Supplier{}, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Contact != nil {
		item.Contact = *patch.Contact
	}
	if patch.Address != nil {
		item.Address = *patch.Address
	}
	if patch.DateOfHire != nil {
		item.DateOfHire = *patch.DateOfHire
	}
	if patch.Category != nil {
		if err := s.checkCategory(ctx, *patch.Category); err != nil {
			return domain.Supplier{}, err
		}
		item.Category = *patch.Category
	}
	item.UpdatedAt = time.Now().UTC()

	return s.store(ctx, item)
}

func (s *service) store(ctx context.Context, item domain.Supplier) (domain.Supplier, error) {
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.Supplier{}, err
	}

	s.cache.Put(updated.ID, updated)
	s.notifier.Updated(notify.EntitySupplier, updated.ID.String(), updated)

	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(id)
	s.notifier.Deleted(notify.EntitySupplier, id.String(), id.String())
	s.logger.WithField("supplier_id", id).Info("supplier deleted")

	return nil
}
