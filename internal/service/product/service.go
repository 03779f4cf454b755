// Package product реализует операции каталога товаров.
package product

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/notify"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

// Input — данные создания или полного обновления продукта.
type Input struct {
	Name        string
	Weight      float64
	Price       decimal.Decimal
	Image       string
	Stock       int
	Description string
	Category    string
}

// Patch — частичное обновление продукта.
type Patch struct {
	Name        *string
	Weight      *float64
	Price       *decimal.Decimal
	Image       *string
	Stock       *int
	Description *string
	Category    *string
}

// Service описывает операции над продуктами.
type Service interface {
	List(ctx context.Context, f domain.ProductFilter, page pagination.Request) (pagination.Page[domain.Product], error)
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
	Create(ctx context.Context, in Input) (domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, in Input) (domain.Product, error)
	Patch(ctx context.Context, id uuid.UUID, patch Patch) (domain.Product, error)
	UpdateImage(ctx context.Context, id uuid.UUID, image string) (domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       domain.ProductRepository
	categories domain.CategoryRepository
	cache      *cache.Cache[uuid.UUID, domain.Product]
	notifier   *notify.Notifier
	logger     *log.Entry
}

// New создаёт сервис продуктов. Кэш и notifier могут быть nil.
func New(
	repo domain.ProductRepository,
	categories domain.CategoryRepository,
	c *cache.Cache[uuid.UUID, domain.Product],
	notifier *notify.Notifier,
) Service {
	return &service{
		repo:       repo,
		categories: categories,
		cache:      c,
		notifier:   notifier,
		logger:     log.WithField("component", "product-service"),
	}
}

func (s *service) List(ctx context.Context, f domain.ProductFilter, page pagination.Request) (pagination.Page[domain.Product], error) {
	page = page.Normalize("id")
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return pagination.Page[domain.Product]{}, err
	}
	return pagination.New(items, total, page), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	s.cache.Put(id, item)

	return item, nil
}

// validate проверяет бизнес-ограничения и ссылку на категорию.
func (s *service) validate(ctx context.Context, in Input) error {
	if in.Price.IsNegative() {
		return domain.ErrProductBadPrice
	}
	if in.Stock < 0 {
		return domain.ErrProductNoStock
	}
	if in.Category != "" {
		if _, err := s.categories.GetByName(ctx, in.Category); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, in Input) (domain.Product, error) {
	if err := s.validate(ctx, in); err != nil {
		return domain.Product{}, err
	}

	if in.Image == "" {
		in.Image = domain.ProductImageDefault
	}

	now := time.Now().UTC()
	item, err := s.repo.Create(ctx, domain.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		Weight:      in.Weight,
		Price:       in.Price,
		Image:       in.Image,
		Stock:       in.Stock,
		Description: in.Description,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.Product{}, err
	}

	s.cache.Put(item.ID, item)
	s.notifier.Created(notify.EntityProduct, item.ID.String(), item)
	s.logger.WithField("product_id", item.ID).Info("product created")

	return item, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in Input) (domain.Product, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.validate(ctx, in); err != nil {
		return domain.Product{}, err
	}

	item.Name = in.Name
	item.Weight = in.Weight
	item.Price = in.Price
	if in.Image != "" {
		item.Image = in.Image
	}
	item.Stock = in.Stock
	item.Description = in.Description
	item.Category = in.Category
	item.UpdatedAt = time.Now().UTC()

	return s.store(ctx, item)
}

func (s *service) Patch(ctx context.Context, id uuid.UUID, patch Patch) (domain.Product, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Weight != nil {
		item.Weight = *patch.Weight
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return domain.Product{}, domain.ErrProductBadPrice
		}
		item.Price = *patch.Price
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return domain.Product{}, domain.ErrProductNoStock
		}
		item.Stock = *patch.Stock
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Category != nil {
		if _, err := s.categories.GetByName(ctx, *patch.Category); err != nil {
			return domain.Product{}, err
		}
		item.Category = *patch.Category
	}
	item.UpdatedAt = time.Now().UTC()

	return s.store(ctx, item)
}

func (s *service) UpdateImage(ctx context.Context, id uuid.UUID, image string) (domain.Product, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	item.Image = image
	item.UpdatedAt = time.Now().UTC()

	return s.store(ctx, item)
}

func (s *service) store(ctx context.Context, item domain.Product) (domain.Product, error) {
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.Product{}, err
	}

	s.cache.Put(updated.ID, updated)
	s.notifier.Updated(notify.EntityProduct, updated.ID.String(), updated)

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
	s.notifier.Deleted(notify.EntityProduct, id.String(), id.String())
	s.logger.WithField("product_id", id).Info("product deleted")

	return nil
}
