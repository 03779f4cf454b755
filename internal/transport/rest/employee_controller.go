package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/service/employee"
)

// employeeRequest — тело создания и полного обновления сотрудника.
type employeeRequest struct {
	Name     string          `json:"name" binding:"required"`
	Salary   decimal.Decimal `json:"salary"`
	Position string          `json:"position" binding:"required"`
}

// employeePatchRequest — тело частичного обновления сотрудника.
type employeePatchRequest struct {
	Name     *string          `json:"name"`
	Salary   *decimal.Decimal `json:"salary"`
	Position *string          `json:"position"`
}

// EmployeeController обслуживает /api/employees.
type EmployeeController struct {
	svc    employee.Service
	logger *log.Entry
}

// NewEmployeeController создаёт контроллер сотрудников.
func NewEmployeeController(svc employee.Service, logger *log.Logger) *EmployeeController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &EmployeeController{
		svc:    svc,
		logger: logger.WithField("component", "rest.employees"),
	}
}

func employeeID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}

func (ct *EmployeeController) List(c *gin.Context) {
	minSalary, err := decimalQuery(c, "minSalary")
	if err != nil {
		respondBadRequest(c, "minSalary must be a decimal")
		return
	}
	maxSalary, err := decimalQuery(c, "maxSalary")
	if err != nil {
		respondBadRequest(c, "maxSalary must be a decimal")
		return
	}
	f := domain.EmployeeFilter{
		Name:      stringQuery(c, "name"),
		MinSalary: minSalary,
		MaxSalary: maxSalary,
		Position:  stringQuery(c, "position"),
	}
	page, err := ct.svc.List(c.Request.Context(), f, pageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	writeLinkHeader(c, page)
	c.JSON(http.StatusOK, page)
}

func (ct *EmployeeController) Get(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	e, err := ct.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (ct *EmployeeController) Create(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	e, err := ct.svc.Create(c.Request.Context(), employee.Input{
		Name:     req.Name,
		Salary:   req.Salary,
		Position: req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (ct *EmployeeController) Update(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	e, err := ct.svc.Update(c.Request.Context(), id, employee.Input{
		Name:     req.Name,
		Salary:   req.Salary,
		Position: req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (ct *EmployeeController) Patch(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	var req employeePatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	e, err := ct.svc.Patch(c.Request.Context(), id, employee.Patch{
		Name:     req.Name,
		Salary:   req.Salary,
		Position: req.Position,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (ct *EmployeeController) Delete(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}
	if err := ct.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
