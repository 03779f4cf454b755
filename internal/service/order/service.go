// Package order реализует оформление заказов: проверку строк, резервирование
// остатков, денормализацию клиента и пересчёт итогов.
package order

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

// LineInput — строка заказа из запроса. UnitPrice обязан совпадать с
// текущей ценой продукта.
type LineInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateInput — данные создания заказа.
type CreateInput struct {
	UserID   int64
	ClientID int64
	Lines    []LineInput
}

// UpdateInput — полная замена строк заказа. Снимок клиента при
// обновлении не пересчитывается.
type UpdateInput struct {
	Lines []LineInput
}

// Service описывает операции над заказами.
type Service interface {
	List(ctx context.Context, page pagination.Request) (pagination.Page[domain.Order], error)
	ListByUser(ctx context.Context, userID int64, page pagination.Request) (pagination.Page[domain.Order], error)
	Get(ctx context.Context, id string) (domain.Order, error)
	Create(ctx context.Context, in CreateInput) (domain.Order, error)
	Update(ctx context.Context, id string, in UpdateInput) (domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	clients  domain.ClientRepository
	users    domain.UserRepository
	cache    *cache.Cache[string, domain.Order]
	notifier *notify.Notifier
	logger   *log.Entry
}

// New создаёт сервис заказов. Кэш и notifier могут быть nil.
func New(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	clients domain.ClientRepository,
	users domain.UserRepository,
	c *cache.Cache[string, domain.Order],
	notifier *notify.Notifier,
) Service {
	return &service{
		orders:   orders,
		products: products,
		clients:  clients,
		users:    users,
		cache:    c,
		notifier: notifier,
		logger:   log.WithField("component", "order-service"),
	}
}

func (s *service) List(ctx context.Context, page pagination.Request) (pagination.Page[domain.Order], error) {
	page = page.Normalize("id")
	items, total, err := s.orders.List(ctx, page)
	if err != nil {
		return pagination.Page[domain.Order]{}, err
	}
	return pagination.New(items, total, page), nil
}

func (s *service) ListByUser(ctx context.Context, userID int64, page pagination.Request) (pagination.Page[domain.Order], error) {
	page = page.Normalize("id")
	items, total, err := s.orders.ListByUser(ctx, userID, page)
	if err != nil {
		return pagination.Page[domain.Order]{}, err
	}
	return pagination.New(items, total, page), nil
}

func (s *service) Get(ctx context.Context, id string) (domain.Order, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}

	item, err := s.orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	s.cache.Put(id, item)

	return item, nil
}

// checkLines валидирует строки против каталога: продукт существует,
// остатка хватает, цена из запроса совпадает с ценой продукта.
func (s *service) checkLines(ctx context.Context, lines []LineInput) error {
	if len(lines) == 0 {
		return domain.ErrOrderNoLines
	}

	for _, line := range lines {
		p, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if p.Stock < line.Quantity {
			return domain.ErrProductNoStock
		}
		if !line.UnitPrice.Equal(p.Price) {
			return domain.ErrProductBadPrice
		}
	}

	return nil
}

// reserveStock списывает остатки под строки заказа.
func (s *service) reserveStock(ctx context.Context, lines []domain.OrderLine) error {
	for _, line := range lines {
		p, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}
		p.Stock -= line.Quantity
		p.UpdatedAt = time.Now().UTC()
		if _, err := s.products.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// returnStock возвращает остатки строк заказа на склад.
func (s *service) returnStock(ctx context.Context, lines []domain.OrderLine) error {
	for _, line := range lines {
		p, err := s.products.Get(ctx, line.ProductID)
		if err != nil {
			return err
		}
		p.Stock += line.Quantity
		p.UpdatedAt = time.Now().UTC()
		if _, err := s.products.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func toDomainLines(lines []LineInput) []domain.OrderLine {
	result := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, domain.NewOrderLine(line.ProductID, line.Quantity, line.UnitPrice))
	}
	return result
}

func (s *service) Create(ctx context.Context, in CreateInput) (domain.Order, error) {
	if _, err := s.users.Get(ctx, in.UserID); err != nil {
		return domain.Order{}, err
	}
	client, err := s.clients.Get(ctx, in.ClientID)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.checkLines(ctx, in.Lines); err != nil {
		return domain.Order{}, err
	}

	lines := toDomainLines(in.Lines)
	if err := s.reserveStock(ctx, lines); err != nil {
		return domain.Order{}, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:        domain.NewOrderID(),
		UserID:    in.UserID,
		Client:    client.Snapshot(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	order.ReplaceLines(lines)

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		// Заказ не записан, остатки возвращаем.
		if rollbackErr := s.returnStock(ctx, lines); rollbackErr != nil {
			s.logger.WithError(rollbackErr).WithField("order_id", order.ID).
				Error("failed to return stock after create failure")
		}
		return domain.Order{}, err
	}

	s.cache.Put(created.ID, created)
	s.notifier.Created(notify.EntityOrder, created.ID, created)
	s.logger.WithFields(log.Fields{
		"order_id":     created.ID,
		"user_id":      created.UserID,
		"total_amount": created.TotalAmount,
	}).Info("order created")

	return created, nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (domain.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	// Старые строки возвращаются на склад до проверки новых, иначе
	// заказ не смог бы сохранить собственные позиции.
	if err := s.returnStock(ctx, order.Lines); err != nil {
		return domain.Order{}, err
	}

	if err := s.checkLines(ctx, in.Lines); err != nil {
		if rollbackErr := s.reserveStock(ctx, order.Lines); rollbackErr != nil {
			s.logger.WithError(rollbackErr).WithField("order_id", id).
				Error("failed to re-reserve stock after update validation failure")
		}
		return domain.Order{}, err
	}

	lines := toDomainLines(in.Lines)
	if err := s.reserveStock(ctx, lines); err != nil {
		return domain.Order{}, err
	}

	order.ReplaceLines(lines)
	order.UpdatedAt = time.Now().UTC()

	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	s.cache.Put(updated.ID, updated)
	s.notifier.Updated(notify.EntityOrder, updated.ID, updated)

	return updated, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.returnStock(ctx, order.Lines); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Evict(id)
	s.notifier.Deleted(notify.EntityOrder, id, id)
	s.logger.WithField("order_id", id).Info("order deleted")

	return nil
}
