package pagination

import "strings"

const (
	// DefaultSize — размер страницы по умолчанию для всех списочных эндпоинтов.
	DefaultSize = 10

	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// Request описывает запрошенную страницу и порядок сортировки.
type Request struct {
	Page      int
	Size      int
	SortBy    string
	Direction string
}

// Normalize приводит запрос к валидному виду: отрицательная страница
// обнуляется, некорректный размер заменяется дефолтным, направление
// сортировки сводится к asc/desc. defaultSort подставляется, если поле
// сортировки не задано.
func (r Request) Normalize(defaultSort string) Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if strings.TrimSpace(r.SortBy) == "" {
		r.SortBy = defaultSort
	}
	if strings.EqualFold(r.Direction, DirectionDesc) {
		r.Direction = DirectionDesc
	} else {
		r.Direction = DirectionAsc
	}
	return r
}

// Offset возвращает смещение первой записи страницы.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Desc сообщает, запрошена ли сортировка по убыванию.
func (r Request) Desc() bool {
	return r.Direction == DirectionDesc
}

// Page — конверт списочного ответа с метаданными пагинации.
type Page[T any] struct {
	Content       []T    `json:"content"`
	PageIndex     int    `json:"pageIndex"`
	PageSize      int    `json:"pageSize"`
	TotalElements int    `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	SortField     string `json:"sortField"`
	SortDirection string `json:"sortDirection"`
	First         bool   `json:"isFirst"`
	Last          bool   `json:"isLast"`
	Empty         bool   `json:"isEmpty"`
}

// New собирает конверт страницы из содержимого, общего количества
// элементов и исходного запроса. totalPages = ceil(total/size);
// пустая выборка (totalPages == 0) считается последней страницей.
func New[T any](content []T, total int, req Request) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = (total + req.Size - 1) / req.Size
	}
	return Page[T]{
		Content:       content,
		PageIndex:     req.Page,
		PageSize:      req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		SortField:     req.SortBy,
		SortDirection: req.Direction,
		First:         req.Page == 0,
		Last:          totalPages == 0 || req.Page == totalPages-1,
		Empty:         len(content) == 0,
	}
}

// Map превращает страницу одного типа в страницу другого, сохраняя метаданные.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	content := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return Page[U]{
		Content:       content,
		PageIndex:     p.PageIndex,
		PageSize:      p.PageSize,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		SortField:     p.SortField,
		SortDirection: p.SortDirection,
		First:         p.First,
		Last:          p.Last,
		Empty:         p.Empty,
	}
}
