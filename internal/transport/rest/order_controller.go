package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/service/order"
)

// orderLineRequest — строка заказа из запроса.
type orderLineRequest struct {
	ProductID uuid.UUID       `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// orderCreateRequest — тело создания заказа.
type orderCreateRequest struct {
	UserID   int64              `json:"userId" binding:"required"`
	ClientID int64              `json:"clientId" binding:"required"`
	Lines    []orderLineRequest `json:"lines"`
}

// orderUpdateRequest — полная замена строк заказа.
type orderUpdateRequest struct {
	Lines []orderLineRequest `json:"lines"`
}

// OrderController обслуживает /api/orders.
type OrderController struct {
	svc    order.Service
	logger *log.Entry
}

// NewOrderController создаёт контроллер заказов.
func NewOrderController(svc order.Service, logger *log.Logger) *OrderController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &OrderController{
		svc:    svc,
		logger: logger.WithField("component", "rest.orders"),
	}
}

func (ct *OrderController) List(c *gin.Context) {
	page, err := ct.svc.List(c.Request.Context(), pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeLinkHeader(c, page)
	c.JSON(http.StatusOK, page)
}

// ListByUser отдаёт заказы одного пользователя.
func (ct *OrderController) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		respondBadRequest(c, "userId must be an integer")
		return
	}
	page, err := ct.svc.ListByUser(c.Request.Context(), userID, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeLinkHeader(c, page)
	c.JSON(http.StatusOK, page)
}

func (ct *OrderController) Get(c *gin.Context) {
	o, err := ct.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (ct *OrderController) Create(c *gin.Context) {
	var req orderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	o, err := ct.svc.Create(c.Request.Context(), order.CreateInput{
		UserID:   req.UserID,
		ClientID: req.ClientID,
		Lines:    orderLines(req.Lines),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (ct *OrderController) Update(c *gin.Context) {
	var req orderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	o, err := ct.svc.Update(c.Request.Context(), c.Param("id"), order.UpdateInput{
		Lines: orderLines(req.Lines),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (ct *OrderController) Delete(c *gin.Context) {
	if err := ct.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func orderLines(lines []orderLineRequest) []order.LineInput {
	out := make([]order.LineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, order.LineInput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return out
}
