package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/clownsinformatics/tienda/internal/pagination"
)

// pageRequest разбирает параметры пагинации запроса. Значения по
// умолчанию: page=0, size=10, sortBy подставляет сервис, direction=asc.
func pageRequest(c *gin.Context) pagination.Request {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(pagination.DefaultSize)))
	return pagination.Request{
		Page:      page,
		Size:      size,
		SortBy:    c.Query("sortBy"),
		Direction: c.DefaultQuery("direction", pagination.DirectionAsc),
	}
}

// writeLinkHeader выставляет заголовок Link по метаданным готовой страницы.
func writeLinkHeader[T any](c *gin.Context, p pagination.Page[T]) {
	req := pagination.Request{
		Page:      p.PageIndex,
		Size:      p.PageSize,
		SortBy:    p.SortField,
		Direction: p.SortDirection,
	}
	if links := pagination.Links(c.Request.URL, req, p.TotalPages); links != "" {
		c.Header("Link", links)
	}
}

// Опциональные query-параметры фильтров: отсутствующий параметр даёт nil,
// некорректное значение — ошибку разбора.

func stringQuery(c *gin.Context, name string) *string {
	if v, ok := c.GetQuery(name); ok {
		return &v
	}
	return nil
}

func boolQuery(c *gin.Context, name string) (*bool, error) {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func intQuery(c *gin.Context, name string) (*int, error) {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func floatQuery(c *gin.Context, name string) (*float64, error) {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func decimalQuery(c *gin.Context, name string) (*decimal.Decimal, error) {
	v, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(v)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
