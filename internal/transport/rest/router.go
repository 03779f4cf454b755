// Package rest собирает HTTP-поверхность сервиса: по контроллеру на
// семейство сущностей, общий разбор пагинации и фильтров, центральное
// отображение доменных ошибок в статусы и WebSocket-рассылку изменений.
package rest

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/metrics"
	"github.com/clownsinformatics/tienda/internal/notify"
	"github.com/clownsinformatics/tienda/internal/ws"
)

// RouterConfig — зависимости маршрутизатора. Hub, Metrics и UploadsDir
// опциональны.
type RouterConfig struct {
	Categories *CategoryController
	Products   *ProductController
	Clients    *ClientController
	Employees  *EmployeeController
	Suppliers  *SupplierController
	Orders     *OrderController
	Users      *UserController

	Hub        *ws.Hub
	Metrics    *metrics.HTTPMetrics
	UploadsDir string
	Logger     *log.Logger
}

// NewRouter строит gin-движок со всеми маршрутами сервиса.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}

	api := r.Group("/api")

	categories := api.Group("/categories")
	categories.GET("", cfg.Categories.List)
	categories.GET("/:id", cfg.Categories.Get)
	categories.POST("", cfg.Categories.Create)
	categories.PUT("/:id", cfg.Categories.Update)
	categories.PATCH("/:id", cfg.Categories.Patch)
	categories.DELETE("/:id", cfg.Categories.Delete)

	products := api.Group("/products")
	products.GET("", cfg.Products.List)
	products.GET("/:id", cfg.Products.Get)
	products.POST("", cfg.Products.Create)
	products.PUT("/:id", cfg.Products.Update)
	products.PATCH("/:id", cfg.Products.Patch)
	products.PATCH("/:id/image", cfg.Products.UpdateImage)
	products.DELETE("/:id", cfg.Products.Delete)

	clients := api.Group("/clients")
	clients.GET("", cfg.Clients.List)
	clients.GET("/:id", cfg.Clients.Get)
	clients.POST("", cfg.Clients.Create)
	clients.PUT("/:id", cfg.Clients.Update)
	clients.PATCH("/:id", cfg.Clients.Patch)
	clients.DELETE("/:id", cfg.Clients.Delete)

	employees := api.Group("/employees")
	employees.GET("", cfg.Employees.List)
	employees.GET("/:id", cfg.Employees.Get)
	employees.POST("", cfg.Employees.Create)
	employees.PUT("/:id", cfg.Employees.Update)
	employees.PATCH("/:id", cfg.Employees.Patch)
	employees.DELETE("/:id", cfg.Employees.Delete)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", cfg.Suppliers.List)
	suppliers.GET("/:id", cfg.Suppliers.Get)
	suppliers.POST("", cfg.Suppliers.Create)
	suppliers.PUT("/:id", cfg.Suppliers.Update)
	suppliers.PATCH("/:id", cfg.Suppliers.Patch)
	suppliers.DELETE("/:id", cfg.Suppliers.Delete)

	orders := api.Group("/orders")
	orders.GET("", cfg.Orders.List)
	orders.GET("/user/:userId", cfg.Orders.ListByUser)
	orders.GET("/:id", cfg.Orders.Get)
	orders.POST("", cfg.Orders.Create)
	orders.PUT("/:id", cfg.Orders.Update)
	orders.DELETE("/:id", cfg.Orders.Delete)

	users := api.Group("/users")
	users.GET("", cfg.Users.List)
	users.GET("/:id", cfg.Users.Get)
	users.POST("", cfg.Users.Create)
	users.PUT("/:id", cfg.Users.Update)
	users.PATCH("/:id", cfg.Users.Patch)
	users.DELETE("/:id", cfg.Users.Delete)

	api.POST("/auth/signin", cfg.Users.SignIn)

	if cfg.Hub != nil {
		wsGroup := r.Group("/ws")
		wsGroup.GET("/categories", cfg.Hub.Handle(notify.EntityCategory))
		wsGroup.GET("/products", cfg.Hub.Handle(notify.EntityProduct))
		wsGroup.GET("/clients", cfg.Hub.Handle(notify.EntityClient))
		wsGroup.GET("/employees", cfg.Hub.Handle(notify.EntityEmployee))
		wsGroup.GET("/suppliers", cfg.Hub.Handle(notify.EntitySupplier))
		wsGroup.GET("/orders", cfg.Hub.Handle(notify.EntityOrder))
		wsGroup.GET("/users", cfg.Hub.Handle(notify.EntityUser))
	}

	if cfg.UploadsDir != "" {
		r.Static("/storage", cfg.UploadsDir)
	}

	return r
}
