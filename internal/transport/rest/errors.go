package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/clownsinformatics/tienda/internal/domain"
)

// errorResponse — тело ответа об ошибке.
type errorResponse struct {
	Error string `json:"error"`
}

// validationResponse — тело 400 при ошибках валидации: поле -> сообщение.
type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

// respondError переводит доменную ошибку в HTTP-статус. Ошибки валидации
// binding-слоя разворачиваются в карту поле -> сообщение.
func respondError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = validationMessage(fe)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, validationResponse{Errors: fields})
		return
	}

	if isMalformedBody(err) {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	switch {
	case domain.IsNotFound(err):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsConflict(err):
		c.AbortWithStatusJSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrBadRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// respondBadRequest отвечает 400 с произвольным сообщением, для ошибок
// разбора параметров пути и query до вызова сервиса.
func respondBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}

// isMalformedBody распознаёт ошибки разбора тела запроса: битый JSON,
// несовпадение типов полей, пустое или оборванное тело.
func isMalformedBody(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var timeErr *time.ParseError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &timeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}
