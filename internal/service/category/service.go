// Package category реализует операции над товарными категориями.
package category

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

// Patch — частичное обновление категории.
type Patch struct {
	Name      *string
	IsDeleted *bool
}

// Service описывает операции над категориями.
type Service interface {
	List(ctx context.Context, f domain.CategoryFilter, page pagination.Request) (pagination.Page[domain.Category], error)
	Get(ctx context.Context, id uuid.UUID) (domain.Category, error)
	GetByName(ctx context.Context, name string) (domain.Category, error)
	Create(ctx context.Context, name string) (domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (domain.Category, error)
	Patch(ctx context.Context, id uuid.UUID, patch Patch) (domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     domain.CategoryRepository
	products domain.ProductRepository
	cache    *cache.Cache[uuid.UUID, domain.Category]
	notifier *notify.Notifier
	logger   *log.Entry
}

// New создаёт сервис категорий. Кэш и notifier могут быть nil.
func New(
	repo domain.CategoryRepository,
	products domain.ProductRepository,
	c *cache.Cache[uuid.UUID, domain.Category],
	notifier *notify.Notifier,
) Service {
	return &service{
		repo:     repo,
		products: products,
		cache:    c,
		notifier: notifier,
		logger:   log.WithField("component", "category-service"),
	}
}

func (s *service) List(ctx context.Context, f domain.CategoryFilter, page pagination.Request) (pagination.Page[domain.Category], error) {
	page = page.Normalize("id")
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return pagination.Page[domain.Category]{}, err
	}
	return pagination.New(items, total, page), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}
	s.cache.Put(id, item)

	return item, nil
}

func (s *service) GetByName(ctx context.Context, name string) (domain.Category, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *service) Create(ctx context.Context, name string) (domain.Category, error) {
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return domain.Category{}, domain.ErrCategoryExists
	} else if !domain.IsNotFound(err) {
		return domain.Category{}, err
	}

	now := time.Now().UTC()
	item, err := s.repo.Create(ctx, domain.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.Category{}, err
	}

	s.cache.Put(item.ID, item)
	s.notifier.Created(notify.EntityCategory, item.ID.String(), item)
	s.logger.WithField("category_id", item.ID).Info("category created")

	return item, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, name string) (domain.Category, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	if existing, err := s.repo.GetByName(ctx, name); err == nil && existing.ID != id {
		return domain.Category{}, domain.ErrCategoryExists
	} else if err != nil && !domain.IsNotFound(err) {
		return domain.Category{}, err
	}

	item.Name = name
	item.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.Category{}, err
	}

	s.cache.Put(updated.ID, updated)
	s.notifier.Updated(notify.EntityCategory, updated.ID.String(), updated)

	return updated, nil
}

func (s *service) Patch(ctx context.Context, id uuid.UUID, patch Patch) (domain.Category, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	if patch.Name != nil && *patch.Name != item.Name {
		if existing, err := s.repo.GetByName(ctx, *patch.Name); err == nil && existing.ID != id {
			return domain.Category{}, domain.ErrCategoryExists
		} else if err != nil && !domain.IsNotFound(err) {
			return domain.Category{}, err
		}
		item.Name = *patch.Name
	}
	if patch.IsDeleted != nil {
		item.IsDeleted = *patch.IsDeleted
	}
	item.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.Category{}, err
	}

	s.cache.Put(updated.ID, updated)
	s.notifier.Updated(notify.EntityCategory, updated.ID.String(), updated)

	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	inUse, err := s.products.ExistsByCategory(ctx, item.Name)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryHasProducts
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(id)
	s.notifier.Deleted(notify.EntityCategory, id.String(), id.String())
	s.logger.WithField("category_id", id).Info("category deleted")

	return nil
}
