package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/filter"
	"github.com/clownsinformatics/tienda/internal/pagination"
)

type userRepository struct {
	mu     sync.RWMutex
	items  map[int64]domain.User
	nextID int64
}

// NewUserRepository возвращает in-memory репозиторий пользователей.
func NewUserRepository() domain.UserRepository {
	return &userRepository{items: make(map[int64]domain.User)}
}

func (r *userRepository) List(_ context.Context, f domain.UserFilter, page pagination.Request) ([]domain.User, int, error) {
	r.mu.RLock()
	all := make([]domain.User, 0, len(r.items))
	for _, u := range r.items {
		all = append(all, u)
	}
	r.mu.RUnlock()

	matched := filter.Apply(all, f.Predicate())
	content, total := sortAndPage(matched, page, userLess(page.SortBy))
	return content, total, nil
}

func (r *userRepository) Get(_ context.Context, id int64) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *userRepository) Create(_ context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if strings.EqualFold(existing.Username, u.Username) || strings.EqualFold(existing.Email, u.Email) {
			return domain.User{}, domain.ErrUserExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	r.items[u.ID] = u
	return u, nil
}

func (r *userRepository) Update(_ context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[u.ID]; !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	for id, existing := range r.items {
		if id == u.ID {
			continue
		}
		if strings.EqualFold(existing.Username, u.Username) || strings.EqualFold(existing.Email, u.Email) {
			return domain.User{}, domain.ErrUserExists
		}
	}
	r.items[u.ID] = u
	return u, nil
}

func (r *userRepository) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsDeleted = true
	r.items[id] = u
	return nil
}

func (r *userRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.items, id)
	return nil
}

func userLess(sortBy string) func(a, b domain.User) bool {
	switch sortBy {
	case "username":
		return func(a, b domain.User) bool { return a.Username < b.Username }
	case "email":
		return func(a, b domain.User) bool { return a.Email < b.Email }
	default:
		return func(a, b domain.User) bool { return a.ID < b.ID }
	}
}

var _ domain.UserRepository = (*userRepository)(nil)
