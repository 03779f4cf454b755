package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Links строит значение заголовка Link (RFC 5988) с навигационными
// ссылками first/prev/next/last. Неприменимые отношения опускаются:
// на первой странице нет prev, на последней нет next. Остальные
// query-параметры исходного URL (фильтры) сохраняются как есть.
func Links(base *url.URL, req Request, totalPages int) string {
	if base == nil || totalPages <= 0 {
		return ""
	}

	rels := make([]string, 0, 4)
	add := func(page int, rel string) {
		rels = append(rels, fmt.Sprintf("<%s>; rel=%q", pageURL(base, req, page), rel))
	}

	if req.Page > 0 {
		add(0, "first")
		add(req.Page-1, "prev")
	}
	if req.Page < totalPages-1 {
		add(req.Page+1, "next")
	}
	if req.Page != totalPages-1 {
		add(totalPages-1, "last")
	}

	return strings.Join(rels, ", ")
}

func pageURL(base *url.URL, req Request, page int) string {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(req.Size))
	q.Set("sortBy", req.SortBy)
	q.Set("direction", req.Direction)
	u.RawQuery = q.Encode()
	return u.String()
}
