package rest

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/service/product"
)

// productRequest — тело создания и полного обновления продукта.
type productRequest struct {
	Name        string          `json:"name" binding:"required"`
	Weight      float64         `json:"weight" binding:"gte=0"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"img"`
	Stock       int             `json:"stock" binding:"gte=0"`
	Description string          `json:"description"`
	Category    string          `json:"category" binding:"required"`
}

// productPatchRequest — тело частичного обновления продукта.
type productPatchRequest struct {
	Name        *string          `json:"name"`
	Weight      *float64         `json:"weight"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"img"`
	Stock       *int             `json:"stock"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
}

// FileSaver сохраняет загруженный файл и возвращает имя, под которым он
// доступен в хранилище.
type FileSaver interface {
	Save(originalName string, r io.Reader) (string, error)
}

// ProductController обслуживает /api/products.
type ProductController struct {
	svc    product.Service
	files  FileSaver
	logger *log.Entry
}

// NewProductController создаёт контроллер продуктов. files может быть nil,
// тогда загрузка изображений отключена.
func NewProductController(svc product.Service, files FileSaver, logger *log.Logger) *ProductController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &ProductController{
		svc:    svc,
		files:  files,
		logger: logger.WithField("component", "rest.products"),
	}
}

func (ct *ProductController) List(c *gin.Context) {
	maxWeight, err := floatQuery(c, "maxWeight")
	if err != nil {
		respondBadRequest(c, "maxWeight must be a number")
		return
	}
	maxPrice, err := decimalQuery(c, "maxPrice")
	if err != nil {
		respondBadRequest(c, "maxPrice must be a decimal")
		return
	}
	minStock, err := intQuery(c, "minStock")
	if err != nil {
		respondBadRequest(c, "minStock must be an integer")
		return
	}
	f := domain.ProductFilter{
		Name:      stringQuery(c, "name"),
		MaxWeight: maxWeight,
		MaxPrice:  maxPrice,
		MinStock:  minStock,
		Category:  stringQuery(c, "category"),
	}
	page, err := ct.svc.List(c.Request.Context(), f, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeLinkHeader(c, page)
	c.JSON(http.StatusOK, page)
}

func (ct *ProductController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	p, err := ct.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ct *ProductController) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	p, err := ct.svc.Create(c.Request.Context(), productInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (ct *ProductController) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	p, err := ct.svc.Update(c.Request.Context(), id, productInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ct *ProductController) Patch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	var req productPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	p, err := ct.svc.Patch(c.Request.Context(), id, product.Patch{
		Name:        req.Name,
		Weight:      req.Weight,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateImage принимает multipart/form-data с полем file. Файлы с
// content-type вне image/* отклоняются до обращения к хранилищу.
func (ct *ProductController) UpdateImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be a uuid")
		return
	}
	if ct.files == nil {
		respondBadRequest(c, "image upload is not configured")
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file field is required")
		return
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		respondBadRequest(c, "only image uploads are accepted")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	stored, err := ct.files.Save(header.Filename, file)
	if err != nil {
		ct.logger.WithError(err).Error("failed to store uploaded image")
		respondError(c, err)
		return
	}

	p, err := ct.svc.UpdateImage(c.Request.Context(), id, "/storage/"+stored)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ct *ProductController) Delete(c *gin.Context) {
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

func productInput(req productRequest) product.Input {
	return product.Input{
		Name:        req.Name,
		Weight:      req.Weight,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Description: req.Description,
		Category:    req.Category,
	}
}
