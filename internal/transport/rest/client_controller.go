package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/service/client"
)

// clientRequest — тело создания и полного обновления клиента.
type clientRequest struct {
	Username  string          `json:"username" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Balance   decimal.Decimal `json:"balance"`
	Email     string          `json:"email" binding:"required,email"`
	Address   string          `json:"address"`
	Phone     string          `json:"phone"`
	Birthdate time.Time       `json:"birthdate"`
	Image     string          `json:"image"`
}

// clientPatchRequest — тело частичного обновления клиента.
type clientPatchRequest struct {
	Username  *string          `json:"username"`
	Name      *string          `json:"name"`
	Balance   *decimal.Decimal `json:"balance"`
	Email     *string          `json:"email" binding:"omitempty,email"`
	Address   *string          `json:"address"`
	Phone     *string          `json:"phone"`
	Birthdate *time.Time       `json:"birthdate"`
	Image     *string          `json:"image"`
}

// ClientController обслуживает /api/clients.
type ClientController struct {
	svc    client.Service
	logger *log.Entry
}

// NewClientController создаёт контроллер клиентов.
func NewClientController(svc client.Service, logger *log.Logger) *ClientController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &ClientController{
		svc:    svc,
		logger: logger.WithField("component", "rest.clients"),
	}
}

func clientID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}

func (ct *ClientController) List(c *gin.Context) {
	isDeleted, err := boolQuery(c, "isDeleted")
	if err != nil {
		respondBadRequest(c, "isDeleted must be a boolean")
		return
	}
	f := domain.ClientFilter{
		Username:  stringQuery(c, "username"),
		IsDeleted: isDeleted,
	}
	page, err := ct.svc.List(c.Request.Context(), f, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeLinkHeader(c, page)
	c.JSON(http.StatusOK, page)
}

func (ct *ClientController) Get(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	cl, err := ct.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (ct *ClientController) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	cl, err := ct.svc.Create(c.Request.Context(), clientInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (ct *ClientController) Update(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	cl, err := ct.svc.Update(c.Request.Context(), id, clientInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (ct *ClientController) Patch(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	var req clientPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	cl, err := ct.svc.Patch(c.Request.Context(), id, client.Patch{
		Username:  req.Username,
		Name:      req.Name,
		Balance:   req.Balance,
		Email:     req.Email,
		Address:   req.Address,
		Phone:     req.Phone,
		Birthdate: req.Birthdate,
		Image:     req.Image,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (ct *ClientController) Delete(c *gin.Context) {
	id, ok := clientID(c)
	if !ok {
		return
	}
	if err := ct.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func clientInput(req clientRequest) client.Input {
	return client.Input{
		Username:  req.Username,
		Name:      req.Name,
		Balance:   req.Balance,
		Email:     req.Email,
		Address:   req.Address,
		Phone:     req.Phone,
		Birthdate: req.Birthdate,
		Image:     req.Image,
	}
}
