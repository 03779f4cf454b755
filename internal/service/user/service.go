// Package user реализует учётные записи бэк-офиса: CRUD и вход по паролю.
package user

import (
	"context"
	"errors"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/notify"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

// Input — данные создания или полного обновления пользователя.
// Password приходит открытым текстом и хэшируется сервисом; пустой
// Password при обновлении сохраняет прежний хеш.
type Input struct {
	Name     string
	LastName string
	Username string
	Email    string
	Password string
	Roles    []domain.Role
}

// Patch — частичное обновление пользователя.
type Patch struct {
	Name     *string
	LastName *string
	Username *string
	Email    *string
	Password *string
	Roles    *[]domain.Role
}

// Service описывает операции над пользователями.
type Service interface {
	List(ctx context.Context, f domain.UserFilter, page pagination.Request) (pagination.Page[domain.User], error)
	Get(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, in Input) (domain.User, error)
	Update(ctx context.Context, id int64, in Input) (domain.User, error)
	Patch(ctx context.Context, id int64, patch Patch) (domain.User, error)
	// Delete стирает пользователя без заказов и лишь помечает удалённым
	// пользователя, на которого ссылаются заказы.
	Delete(ctx context.Context, id int64) error
	SignIn(ctx context.Context, username, password string) (domain.User, error)
}

type service struct {
	repo     domain.UserRepository
	orders   domain.OrderRepository
	cache    *cache.Cache[int64, domain.User]
	notifier *notify.Notifier
	logger   *log.Entry
}

// New создаёт сервис пользователей. Кэш и notifier могут быть nil.
func New(
	repo domain.UserRepository,
	orders domain.OrderRepository,
	c *cache.Cache[int64, domain.User],
	notifier *notify.Notifier,
) Service {
	return &service{
		repo:     repo,
		orders:   orders,
		cache:    c,
		notifier: notifier,
		logger:   log.WithField("component", "user-service"),
	}
}

func (s *service) List(ctx context.Context, f domain.UserFilter, page pagination.Request) (pagination.Page[domain.User], error) {
	page = page.Normalize("id")
	items, total, err := s.repo.List(ctx, f, page)
	if err != nil {
		return pagination.Page[domain.User]{}, err
	}
	return pagination.New(items, total, page), nil
}

func (s *service) Get(ctx context.Context, id int64) (domain.User, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	s.cache.Put(id, item)

	return item, nil
}

// checkUnique проверяет, что username и email не заняты другим пользователем.
func (s *service) checkUnique(ctx context.Context, username, email string, selfID int64) error {
	if existing, err := s.repo.GetByUsername(ctx, username); err == nil && existing.ID != selfID {
		return domain.ErrUserExists
	} else if err != nil && !domain.IsNotFound(err) {
		return err
	}
	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing.ID != selfID {
		return domain.ErrUserExists
	} else if err != nil && !domain.IsNotFound(err) {
		return err
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *service) Create(ctx context.Context, in Input) (domain.User, error) {
	if err := s.checkUnique(ctx, in.Username, in.Email, 0); err != nil {
		return domain.User{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleUser}
	}

	now := time.Now().UTC()
	item, err := s.repo.Create(ctx, domain.User{
		Name:      in.Name,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		Roles:     roles,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.User{}, err
	}

	s.cache.Put(item.ID, item)
	s.notifier.Created(notify.EntityUser, strconv.FormatInt(item.ID, 10), item)
	s.logger.WithField("user_id", item.ID).Info("user created")

	return item, nil
}

func (s *service) Update(ctx context.Context, id int64, in Input) (domain.User, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.checkUnique(ctx, in.Username, in.Email, id); err != nil {
		return domain.User{}, err
	}

	item.Name = in.Name
	item.LastName = in.LastName
	item.Username = in.Username
	item.Email = in.Email
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return domain.User{}, err
		}
		item.Password = hash
	}
	if len(in.Roles) > 0 {
		item.Roles = in.Roles
	}
	item.UpdatedAt = time.Now().UTC()

	return s.store(ctx, item)
}

func (s *service) Patch(ctx context.Context, id int64, patch Patch) (domain.User, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	username := item.Username
	if patch.Username != nil {
		username = *patch.Username
	}
	email := item.Email
	if patch.Email != nil {
		email = *patch.Email
	}
	if err := s.checkUnique(ctx, username, email, id); err != nil {
		return domain.User{}, err
	}

	item.Username = username
	item.Email = email
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.LastName != nil {
		item.LastName = *patch.LastName
	}
	if patch.Password != nil && *patch.Password != "" {
		hash, err := hashPassword(*patch.Password)
		if err != nil {
			return domain.User{}, err
		}
		item.Password = hash
	}
	if patch.Roles != nil {
		item.Roles = *patch.Roles
	}
	item.UpdatedAt = time.Now().UTC()

	return s.store(ctx, item)
}

func (s *service) store(ctx context.Context, item domain.User) (domain.User, error) {
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return domain.User{}, err
	}

	s.cache.Put(updated.ID, updated)
	s.notifier.Updated(notify.EntityUser, strconv.FormatInt(updated.ID, 10), updated)

	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	hasOrders, err := s.orders.ExistsByUserID(ctx, id)
	if err != nil {
		return err
	}

	if hasOrders {
		// История заказов ссылается на пользователя, запись сохраняем.
		if err := s.repo.SoftDelete(ctx, id); err != nil {
			return err
		}
	} else {
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
	}

	s.cache.Evict(id)
	s.notifier.Deleted(notify.EntityUser, strconv.FormatInt(id, 10), id)
	s.logger.WithFields(log.Fields{"user_id": id, "soft": hasOrders}).Info("user deleted")

	return nil
}

func (s *service) SignIn(ctx context.Context, username, password string) (domain.User, error) {
	item, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(item.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return domain.User{}, domain.ErrPasswordMismatch
		}
		return domain.User{}, err
	}

	return item, nil
}
