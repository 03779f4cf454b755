package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/service/supplier"
)

// supplierRequest — тело создания и полного обновления поставщика.
type supplierRequest struct {
	Name       string    `json:"name" binding:"required"`
	Contact    int       `json:"contact"`
	Address    string    `json:"address"`
	DateOfHire time.Time `json:"dateOfHire"`
	Category   string    `json:"category"`
}

// supplierPatchRequest — тело частичного обновления поставщика.
type supplierPatchRequest struct {
	Name       *string    `json:"name"`
	Contact    *int       `json:"contact"`
	Address    *string    `json:"address"`
	DateOfHire *time.Time `json:"dateOfHire"`
	Category   *string    `json:"category"`
}

// SupplierController обслуживает /api/suppliers.
type SupplierController struct {
	svc    supplier.Service
	logger *log.Entry
}

// NewSupplierController создаёт контроллер поставщиков.
func NewSupplierController(svc supplier.Service, logger *log.Logger) *SupplierController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &SupplierController{
		svc:    svc,
		logger: logger.WithField("component", "rest.suppliers"),
	}
}

func (ct *SupplierController) List(c *gin.Context) {
	f := domain.SupplierFilter{
		Name:     stringQuery(c, "name"),
		Category: stringQuery(c, "category"),
	}
	page, err := ct.svc.List(c.Request.Context(), f, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeLinkHeader(c, page)
	c.JSON(http.StatusOK, page)
}

func (ct *SupplierController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	s, err := ct.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (ct *SupplierController) Create(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	s, err := ct.svc.Create(c.Request.Context(), supplierInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (ct *SupplierController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	s, err := ct.svc.Update(c.Request.Context(), id, supplierInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (ct *SupplierController) Patch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	var req supplierPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	s, err := ct.svc.Patch(c.Request.Context(), id, supplier.Patch{
		Name:       req.Name,
		Contact:    req.Contact,
		Address:    req.Address,
		DateOfHire: req.DateOfHire,
		Category:   req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (ct *SupplierController) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	if err := ct.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func supplierInput(req supplierRequest) supplier.Input {
	return supplier.Input{
		Name:       req.Name,
		Contact:    req.Contact,
		Address:    req.Address,
		DateOfHire: req.DateOfHire,
		Category:   req.Category,
	}
}
