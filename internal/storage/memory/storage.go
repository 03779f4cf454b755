// Package memory содержит in-memory реализации репозиториев для локальной
// разработки и тестов. Семантика ошибок и пагинации совпадает с
// postgres/mongo-реализациями.
package memory

import (
	"sort"

	"github.com/clownsinformatics/tienda/internal/pagination"
)

// sortAndPage сортирует выборку компаратором less (инвертируя его для desc)
// и вырезает запрошенную страницу. Второе значение — общий размер выборки
// до нарезки.
func sortAndPage[T any](items []T, req pagination.Request, less func(a, b T) bool) ([]T, int) {
	if less != nil {
		cmp := less
		if req.Desc() {
			cmp = func(a, b T) bool { return less(b, a) }
		}
		sort.SliceStable(items, func(i, j int) bool { return cmp(items[i], items[j]) })
	}

	total := len(items)
	start := req.Offset()
	if start >= total {
		return []T{}, total
	}
	end := start + req.Size
	if end > total {
		end = total
	}
	return items[start:end], total
}
