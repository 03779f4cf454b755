package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/domain"
	"github.com/clownsinformatics/tienda/internal/service/user"
)

// userRequest — тело создания и полного обновления пользователя.
// Password передаётся открытым текстом и хэшируется сервисом; при
// обновлении пустой пароль сохраняет прежний хеш.
type userRequest struct {
	Name     string   `json:"name" binding:"required"`
	LastName string   `json:"lastName"`
	Username string   `json:"username" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// userPatchRequest — тело частичного обновления пользователя.
type userPatchRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"lastName"`
	Username *string `json:"username"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
}

// signInRequest — тело запроса входа.
type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserController обслуживает /api/users и /api/auth.
type UserController struct {
	svc    user.Service
	logger *log.Entry
}

// NewUserController создаёт контроллер пользователей.
func NewUserController(svc user.Service, logger *log.Logger) *UserController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &UserController{
		svc:    svc,
		logger: logger.WithField("component", "rest.users"),
	}
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}

func (ct *UserController) List(c *gin.Context) {
	isDeleted, err := boolQuery(c, "isDeleted")
	if err != nil {
		respondBadRequest(c, "isDeleted must be a boolean")
		return
	}
	f := domain.UserFilter{
		Username:  stringQuery(c, "username"),
		Email:     stringQuery(c, "email"),
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

func (ct *UserController) Get(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	u, err := ct.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ct *UserController) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	if req.Password == "" {
		respondBadRequest(c, "password is required")
		return
	}
	u, err := ct.svc.Create(c.Request.Context(), userInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ct *UserController) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	u, err := ct.svc.Update(c.Request.Context(), id, userInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ct *UserController) Patch(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req userPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	u, err := ct.svc.Patch(c.Request.Context(), id, user.Patch{
		Name:     req.Name,
		LastName: req.LastName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ct *UserController) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := ct.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SignIn проверяет учётные данные и возвращает пользователя.
func (ct *UserController) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, err)
		return
	}
	u, err := ct.svc.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Неизвестный username не раскрывается, ответ тот же 401.
		if domain.IsNotFound(err) {
			respondError(c, domain.ErrPasswordMismatch)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func userInput(req userRequest) user.Input {
	roles := make([]domain.Role, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, domain.Role(r))
	}
	return user.Input{
		Name:     req.Name,
		LastName: req.LastName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    roles,
	}
}
