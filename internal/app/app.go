// Package app собирает сервис из конфигурации: хранилища, кэши,
// сервисы, HTTP-поверхность и сервер метрик.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/clownsinformatics/tienda/internal/cache"
	"github.com/clownsinformatics/tienda/internal/domain"
	healthcheck "github.com/clownsinformatics/tienda/internal/health"
	"github.com/clownsinformatics/tienda/internal/messaging/kafka"
	"github.com/clownsinformatics/tienda/internal/metrics"
	"github.com/clownsinformatics/tienda/internal/notify"
	"github.com/clownsinformatics/tienda/internal/service/category"
	"github.com/clownsinformatics/tienda/internal/service/client"
	"github.com/clownsinformatics/tienda/internal/service/employee"
	"github.com/clownsinformatics/tienda/internal/service/order"
	"github.com/clownsinformatics/tienda/internal/service/product"
	"github.com/clownsinformatics/tienda/internal/service/supplier"
	"github.com/clownsinformatics/tienda/internal/service/user"
	"github.com/clownsinformatics/tienda/internal/storage/files"
	"github.com/clownsinformatics/tienda/internal/storage/memory"
	"github.com/clownsinformatics/tienda/internal/storage/mongodoc"
	"github.com/clownsinformatics/tienda/internal/storage/postgres"
	"github.com/clownsinformatics/tienda/internal/transport/rest"
	"github.com/clownsinformatics/tienda/internal/version"
	"github.com/clownsinformatics/tienda/internal/ws"
)

// repositories — набор хранилищ всех семейств сущностей.
type repositories struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
	clients    domain.ClientRepository
	employees  domain.EmployeeRepository
	suppliers  domain.SupplierRepository
	orders     domain.OrderRepository
	users      domain.UserRepository
}

// Run запускает сервис и блокируется до отмены контекста или ошибки
// сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	repos := repositories{
		categories: memory.NewCategoryRepository(),
		products:   memory.NewProductRepository(),
		clients:    memory.NewClientRepository(),
		employees:  memory.NewEmployeeRepository(),
		suppliers:  memory.NewSupplierRepository(),
		orders:     memory.NewOrderRepository(),
		users:      memory.NewUserRepository(),
	}

	healthHandler := healthcheck.NewHandler(version.String())

	if cfg.PostgresDSN != "" {
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		repos.categories = postgres.NewCategoryRepository(store)
		repos.products = postgres.NewProductRepository(store)
		repos.clients = postgres.NewClientRepository(store)
		repos.employees = postgres.NewEmployeeRepository(store)
		repos.suppliers = postgres.NewSupplierRepository(store)
		repos.users = postgres.NewUserRepository(store)
		healthHandler.Register("postgres", store.Ping)
		logger.Info("postgres storage initialized")
	} else {
		logger.Info("POSTGRES_DSN is empty, using in-memory storage")
	}

	if cfg.MongoURI != "" {
		store, err := mongodoc.Open(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = store.Close(closeCtx)
		}()
		repos.orders = mongodoc.NewOrderRepository(store)
		healthHandler.Register("mongo", store.Ping)
		logger.WithField("database", cfg.MongoDB).Info("mongo order storage initialized")
	} else {
		logger.Info("MONGO_URI is empty, using in-memory order storage")
	}

	// Рассылка изменений: WebSocket всегда, Kafka при наличии брокеров.
	hub := ws.NewHub()
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			producer = p
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}
	var notifier *notify.Notifier
	if producer != nil {
		notifier = notify.New(hub, producer)
	} else {
		notifier = notify.New(hub, nil)
	}

	categoryCache, err := cache.New[uuid.UUID, domain.Category](cfg.CacheSize)
	if err != nil {
		return err
	}
	productCache, err := cache.New[uuid.UUID, domain.Product](cfg.CacheSize)
	if err != nil {
		return err
	}
	clientCache, err := cache.New[int64, domain.Client](cfg.CacheSize)
	if err != nil {
		return err
	}
	employeeCache, err := cache.New[int, domain.Employee](cfg.CacheSize)
	if err != nil {
		return err
	}
	supplierCache, err := cache.New[uuid.UUID, domain.Supplier](cfg.CacheSize)
	if err != nil {
		return err
	}
	orderCache, err := cache.New[string, domain.Order](cfg.CacheSize)
	if err != nil {
		return err
	}
	userCache, err := cache.New[int64, domain.User](cfg.CacheSize)
	if err != nil {
		return err
	}

	fileStore, err := files.New(cfg.UploadsDir)
	if err != nil {
		return err
	}

	httpMetrics := metrics.NewHTTPMetrics()
	hub.OnSubscribersChanged(httpMetrics.SetWSSubscribers)

	cacheLookup := func(entity string) func(bool) {
		return func(hit bool) {
			if hit {
				httpMetrics.RecordCacheHit(entity)
			} else {
				httpMetrics.RecordCacheMiss(entity)
			}
		}
	}
	categoryCache.OnLookup(cacheLookup(notify.EntityCategory))
	productCache.OnLookup(cacheLookup(notify.EntityProduct))
	clientCache.OnLookup(cacheLookup(notify.EntityClient))
	employeeCache.OnLookup(cacheLookup(notify.EntityEmployee))
	supplierCache.OnLookup(cacheLookup(notify.EntitySupplier))
	orderCache.OnLookup(cacheLookup(notify.EntityOrder))
	userCache.OnLookup(cacheLookup(notify.EntityUser))

	categorySvc := category.New(repos.categories, repos.products, categoryCache, notifier)
	productSvc := product.New(repos.products, repos.categories, productCache, notifier)
	clientSvc := client.New(repos.clients, clientCache, notifier)
	employeeSvc := employee.New(repos.employees, employeeCache, notifier)
	supplierSvc := supplier.New(repos.suppliers, repos.categories, supplierCache, notifier)
	orderSvc := order.New(repos.orders, repos.products, repos.clients, repos.users, orderCache, notifier)
	userSvc := user.New(repos.users, repos.orders, userCache, notifier)

	router := rest.NewRouter(rest.RouterConfig{
		Categories: rest.NewCategoryController(categorySvc, nil),
		Products:   rest.NewProductController(productSvc, fileStore, nil),
		Clients:    rest.NewClientController(clientSvc, nil),
		Employees:  rest.NewEmployeeController(employeeSvc, nil),
		Suppliers:  rest.NewSupplierController(supplierSvc, nil),
		Orders:     rest.NewOrderController(orderSvc, nil),
		Users:      rest.NewUserController(userSvc, nil),
		Hub:        hub,
		Metrics:    httpMetrics,
		UploadsDir: fileStore.Dir(),
	})

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP сервер слушает %s", cfg.HTTPAddr)
		errCh <- srv.ListenAndServe()
	}()

	closeProducer := func() {
		if producer == nil {
			return
		}
		if err := producer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			logger.Info("kafka producer closed")
		}
	}

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(srv, logger)
		shutdownHTTP(metricsSrv, logger)
		closeProducer()
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		closeProducer()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает служебный HTTP-сервер: /metrics для
// Prometheus, /healthz с проверками хранилищ, /livez.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.Liveness)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
