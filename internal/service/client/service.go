// Package client реализует операции над покупателями.
package client

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

// Input — данные создания или полного обновления клиента.
type Input struct {
	Username  string
	Name      string
	Balance   decimal.Decimal
	Email     string
	Address   string
	Phone     string
	Birthdate time.Time
	Image     string
}

// Patch — частичное обновление клиента.
type Patch struct {
	Username  *string
	Name      *string
	Balance   *decimal.Decimal
	Email     *string
	Address   *string
	Phone     *string
	Birthdate *time.Time
	Image     *string
}

// Service описывает операции над клиентами.
type Service interface {
	List(ctx context.Context, f domain.ClientFilter, page pagination.Request) (pagination.Page[domain.Client], error)
	Get(ctx context.Context, id int64) (domain.Client, error)
	GetByUsername(ctx context.Context, username string) (domain.Client, error)
	Create(ctx context.Context, in Input) (domain.Client, error)
	Update(ctx context.Context, id int64, in Input) (domain.Client, error)
	Patch(ctx context.Context, id int64, patch Patch) (domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     domain.ClientRepository
	cache    *cache.Cache[int64, domain.Client]
	notifier *notify.Notifier
	logger   *log.Entry
}

// New создаёт сервис клиентов. Кэш и notifier могут быть nil.
func New(repo domain.ClientRepository, c *cache.Cache[int64, domain.Client], notifier *notify.Notifier) Service {
	return &service{
		repo:     repo,
		cache:    c,
		notifier: notifier,
		logger:   log.WithField("component", "client-service"),
	}
}

func (s *service) List(ctx context.Context, f domain.ClientFilter, page pagination.Request) (pagination.Page[domain.Client], error) {
	page = page.Normalize("id")
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return pagination.Page[domain.Client]{}, err
	}
	return pagination.New(items, total, page), nil
}

func (s *service) Get(ctx context.Context, id int64) (domain.Client, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	s.cache.Put(id, item)

	return item, nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (domain.Client, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *service) Create(ctx context.Context, in Input) (domain.Client, error) {
	if _, err := s.repo.GetByUsername(ctx, in.Username); err == nil {
		return domain.Client{}, domain.ErrClientExists
	} else if !domain.IsNotFound(err) {
		return domain.Client{}, err
	}

	item, err := s.repo.Create(ctx, domain.Client{
		Username:  in.Username,
		Name:      in.Name,
		Balance:   in.Balance,
		Email:     in.Email,
		Address:   in.Address,
		Phone:     in.Phone,
		Birthdate: in.Birthdate,
		Image:     in.Image,
	})
	if err != nil {
		return domain.Client{}, err
	}

	s.cache.Put(item.ID, item)
	s.notifier.Created(notify.EntityClient, strconv.FormatInt(item.ID, 10), item)
	s.logger.WithField("client_id", item.ID).Info("client created")

	return item, nil
}

func (s *service) Update(ctx context.Context, id int64, in Input) (domain.Client, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	if existing, err := s.repo.GetByUsername(ctx, in.Username); err == nil && existing.ID != id {
		return domain.Client{}, domain.ErrClientExists
	} else if err != nil && !domain.IsNotFound(err) {
		return domain.Client{}, err
	}

	item.Username = in.Username
	item.Name = in.Name
	item.Balance = in.Balance
	item.Email = in.Email
	item.Address = in.Address
	item.Phone = in.Phone
	item.Birthdate = in.Birthdate
	if in.Image != "" {
		item.Image = in.Image
	}

	return s.store(ctx, item)
}

func (s *service) Patch(ctx context.Context, id int64, patch Patch) (domain.Client, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	if patch.Username != nil && *patch.Username != item.Username {
		if existing, err := s.repo.GetByUsername(ctx, *patch.Username); err == nil && existing.ID != id {
			return domain.Client{}, domain.ErrClientExists
		} else if err != nil && !domain.IsNotFound(err) {
			return domain.Client{}, err
		}
		item.Username = *patch.Username
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Balance != nil {
		item.Balance = *patch.Balance
	}
	if patch.Email != nil {
		item.Email = *patch.Email
	}
	if patch.Address != nil {
		item.Address = *patch.Address
	}
	if patch.Phone != nil {
		item.Phone = *patch.Phone
	}
	if patch.Birthdate != nil {
		item.Birthdate = *patch.Birthdate
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}

	return s.store(ctx, item)
}

func (s *service) store(ctx context.Context, item domain.Client) (domain.Client, error) {
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.Client{}, err
	}

	s.cache.Put(updated.ID, updated)
	s.notifier.Updated(notify.EntityClient, strconv.FormatInt(updated.ID, 10), updated)

	return updated, nil
}

// Delete помечает клиента удалённым, история его заказов сохраняется.
func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(id)
	s.notifier.Deleted(notify.EntityClient, strconv.FormatInt(id, 10), id)
	s.logger.WithField("client_id", id).Info("client soft deleted")

	return nil
}
