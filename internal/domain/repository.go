package domain

import (
	"context"

	"github.com/google/uuid"

	"github.com/clownsinformatics/tienda/internal/pagination"
)

// Репозитории возвращают списки вместе с общим количеством элементов,
// удовлетворяющих фильтру — страницу из них собирает сервисный слой.

// CategoryRepository описывает хранилище категорий.
type CategoryRepository interface {
	List(ctx context.Context, f CategoryFilter, page pagination.Request) ([]Category, int, error)
	// Get возвращает категорию или ErrCategoryNotFound.
	Get(ctx context.Context, id uuid.UUID) (Category, error)
	// GetByName ищет категорию по имени без учёта регистра.
	GetByName(ctx context.Context, name string) (Category, error)
	Create(ctx context.Context, c Category) (Category, error)
	Update(ctx context.Context, c Category) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository описывает хранилище продуктов.
type ProductRepository interface {
	List(ctx context.Context, f ProductFilter, page pagination.Request) ([]Product, int, error)
	Get(ctx context.Context, id uuid.UUID) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ExistsByCategory сообщает, ссылается ли хотя бы один продукт на категорию.
	ExistsByCategory(ctx context.Context, category string) (bool, error)
}

// ClientRepository описывает хранилище клиентов.
type ClientRepository interface {
	List(ctx context.Context, f ClientFilter, page pagination.Request) ([]Client, int, error)
	Get(ctx context.Context, id int64) (Client, error)
	GetByUsername(ctx context.Context, username string) (Client, error)
	Create(ctx context.Context, c Client) (Client, error)
	Update(ctx context.Context, c Client) (Client, error)
	// SoftDelete помечает клиента удалённым, не стирая запись.
	SoftDelete(ctx context.Context, id int64) error
}

// EmployeeRepository описывает хранилище сотрудников.
type EmployeeRepository interface {
	List(ctx context.Context, f EmployeeFilter, page pagination.Request) ([]Employee, int, error)
	Get(ctx context.Context, id int) (Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id int) error
}

// SupplierRepository описывает хранилище поставщиков.
type SupplierRepository interface {
	List(ctx context.Context, f SupplierFilter, page pagination.Request) ([]Supplier, int, error)
	Get(ctx context.Context, id uuid.UUID) (Supplier, error)
	Create(ctx context.Context, s Supplier) (Supplier, error)
	Update(ctx context.Context, s Supplier) (Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository описывает документное хранилище заказов.
type OrderRepository interface {
	List(ctx context.Context, page pagination.Request) ([]Order, int, error)
	ListByUser(ctx context.Context, userID int64, page pagination.Request) ([]Order, int, error)
	Get(ctx context.Context, id string) (Order, error)
	Create(ctx context.Context, o Order) (Order, error)
	Update(ctx context.Context, o Order) (Order, error)
	Delete(ctx context.Context, id string) error
	// ExistsByUserID сообщает, есть ли у пользователя хотя бы один заказ.
	ExistsByUserID(ctx context.Context, userID int64) (bool, error)
}

// UserRepository описывает хранилище пользователей.
type UserRepository interface {
	List(ctx context.Context, f UserFilter, page pagination.Request) ([]User, int, error)
	Get(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	// SoftDelete помечает пользователя удалённым. Delete стирает запись;
	// реализация обязана выполнить проверку существования и удаление в
	// одной транзакции.
	SoftDelete(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
