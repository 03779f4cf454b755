package domain

import (
	"errors"
	"fmt"
)

// Базовые категории доменных ошибок. HTTP-слой отображает их в статусы:
// ErrNotFound -> 404, ErrConflict -> 409, ErrBadRequest -> 400,
// ErrUnauthorized -> 401. Ошибки конкретных сущностей оборачивают базовые,
// поэтому errors.Is работает и по категории, и по конкретной ошибке.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	// ErrCategoryNotFound возвращается, если категория не найдена.
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	// ErrCategoryExists — категория с таким именем уже есть.
	ErrCategoryExists = fmt.Errorf("category already exists: %w", ErrConflict)
	// ErrCategoryHasProducts блокирует удаление категории, на которую ссылаются продукты.
	ErrCategoryHasProducts = fmt.Errorf("category is referenced by products: %w", ErrConflict)

	// ErrProductNotFound возвращается, если продукт не найден.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	// ErrProductNoStock — в заказе запрошено больше, чем есть на складе.
	ErrProductNoStock = fmt.Errorf("product has not enough stock: %w", ErrBadRequest)
	// ErrProductBadPrice — цена позиции не совпадает с ценой продукта.
	ErrProductBadPrice = fmt.Errorf("product price mismatch: %w", ErrBadRequest)

	// ErrClientNotFound возвращается, если клиент не найден.
	ErrClientNotFound = fmt.Errorf("client %w", ErrNotFound)
	// ErrClientExists — клиент с таким username уже есть.
	ErrClientExists = fmt.Errorf("client username already taken: %w", ErrConflict)

	// ErrEmployeeNotFound возвращается, если сотрудник не найден.
	ErrEmployeeNotFound = fmt.Errorf("employee %w", ErrNotFound)

	// ErrSupplierNotFound возвращается, если поставщик не найден.
	ErrSupplierNotFound = fmt.Errorf("supplier %w", ErrNotFound)
	// ErrSupplierExists — поставщик с таким именем уже есть.
	ErrSupplierExists = fmt.Errorf("supplier already exists: %w", ErrConflict)

	// ErrOrderNotFound возвращается, если заказ не найден.
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
	// ErrOrderNoLines — заказ без единой позиции недопустим.
	ErrOrderNoLines = fmt.Errorf("order must contain at least one line: %w", ErrBadRequest)

	// ErrUserNotFound возвращается, если пользователь не найден.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrUserExists — username или email уже заняты.
	ErrUserExists = fmt.Errorf("user already exists: %w", ErrConflict)
	// ErrPasswordMismatch — неверные учётные данные при входе.
	ErrPasswordMismatch = fmt.Errorf("password does not match: %w", ErrUnauthorized)
)

// IsNotFound проверяет, относится ли ошибка к категории "не найдено".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict проверяет, относится ли ошибка к категории конфликтов.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
