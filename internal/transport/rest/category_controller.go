package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/service/category"
)

// categoryRequest — тело создания и полного обновления категории.
type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// categoryPatchRequest — тело частичного обновления категории.
type categoryPatchRequest struct {
	Name      *string `json:"name"`
	IsDeleted *bool   `json:"isDeleted"`
}

// CategoryController обслуживает /api/categories.
type CategoryController struct {
	svc    category.Service
	logger *log.Entry
}

// NewCategoryController создаёт контроллер категорий.
func NewCategoryController(svc category.Service, logger *log.Logger) *CategoryController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &CategoryController{
		svc:    svc,
		logger: logger.WithField("component", "rest.categories"),
	}
}

func (ct *CategoryController) List(c *gin.Context) {
	isDeleted, err := boolQuery(c, "isDeleted")
	if err != nil {
		respondBadRequest(c, "isDeleted must be a boolean")
		return
	}
	f := domain.CategoryFilter{
		Name:      stringQuery(c, "name"),
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

func (ct *CategoryController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	cat, err := ct.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (ct *CategoryController) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	cat, err := ct.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (ct *CategoryController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	cat, err := ct.svc.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (ct *CategoryController) Patch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	var req categoryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	cat, err := ct.svc.Patch(c.Request.Context(), id, category.Patch{
		Name:      req.Name,
		IsDeleted: req.IsDeleted,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (ct *CategoryController) Delete(c *gin.Context) {
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
