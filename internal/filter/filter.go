// Package filter реализует композицию опциональных предикатов фильтрации
// (specification-паттерн): каждый присутствующий параметр запроса превращается
// в предикат, все предикаты соединяются логическим AND. Отсутствие фильтров
// даёт предикат, пропускающий всю коллекцию.
package filter

import (
	"cmp"
	"strings"

	"github.com/shopspring/decimal"
)

// Predicate — булев предикат над сущностью.
type Predicate[T any] func(T) bool

// All возвращает предикат, который пропускает любую сущность.
func All[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// And соединяет предикаты конъюнктивно. nil-элементы пропускаются,
// пустой список эквивалентен All. AND коммутативен, порядок аргументов
// на результат не влияет.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	present := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			present = append(present, p)
		}
	}
	return func(v T) bool {
		for _, p := range present {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// ContainsFold строит предикат подстрочного поиска без учёта регистра.
func ContainsFold[T any](get func(T) string, substr string) Predicate[T] {
	needle := strings.ToLower(substr)
	return func(v T) bool {
		return strings.Contains(strings.ToLower(get(v)), needle)
	}
}

// EqualFold строит предикат точного совпадения строки без учёта регистра.
func EqualFold[T any](get func(T) string, want string) Predicate[T] {
	return func(v T) bool {
		return strings.EqualFold(get(v), want)
	}
}

// Equal строит предикат точного равенства для категориальных полей.
func Equal[T any, V comparable](get func(T) V, want V) Predicate[T] {
	return func(v T) bool {
		return get(v) == want
	}
}

// Min строит предикат включающей нижней границы.
func Min[T any, V cmp.Ordered](get func(T) V, bound V) Predicate[T] {
	return func(v T) bool {
		return get(v) >= bound
	}
}

// Max строит предикат включающей верхней границы.
func Max[T any, V cmp.Ordered](get func(T) V, bound V) Predicate[T] {
	return func(v T) bool {
		return get(v) <= bound
	}
}

// MinDecimal и MaxDecimal — включающие границы для денежных полей.
func MinDecimal[T any](get func(T) decimal.Decimal, bound decimal.Decimal) Predicate[T] {
	return func(v T) bool {
		return get(v).GreaterThanOrEqual(bound)
	}
}

func MaxDecimal[T any](get func(T) decimal.Decimal, bound decimal.Decimal) Predicate[T] {
	return func(v T) bool {
		return get(v).LessThanOrEqual(bound)
	}
}

// Apply возвращает элементы коллекции, удовлетворяющие предикату.
// nil-предикат эквивалентен All.
func Apply[T any](items []T, p Predicate[T]) []T {
	if p == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if p(item) {
			out = append(out, item)
		}
	}
	return out
}
