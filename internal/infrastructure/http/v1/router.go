// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"bagostock/internal/domain/auth"
	"bagostock/internal/domain/catalogs/client"
	"bagostock/internal/domain/catalogs/supplier"
	"bagostock/internal/domain/products"
	"bagostock/internal/domain/replacements"
	"bagostock/internal/domain/reports"
	"bagostock/internal/domain/specialorders"
	"bagostock/internal/infrastructure/http/v1/dto"
	"bagostock/internal/infrastructure/http/v1/handlers"
	"bagostock/internal/infrastructure/http/v1/middleware"
	"bagostock/internal/infrastructure/storage/postgres"
	"bagostock/internal/infrastructure/storage/postgres/auth_repo"
	"bagostock/internal/infrastructure/storage/postgres/catalog_repo"
	"bagostock/internal/infrastructure/storage/postgres/order_repo"
	"bagostock/internal/infrastructure/storage/postgres/product_repo"
	"bagostock/internal/infrastructure/storage/postgres/replacement_repo"
	"bagostock/internal/infrastructure/storage/postgres/report_repo"
	"bagostock/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// TxManager runs all repository work.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// JWTService issues and validates access tokens.
	JWTService *auth.JWTService

	// AllowedOrigins for CORS.
	AllowedOrigins []string

	// CatalogRules is the brand/model/quality whitelist for ingestion.
	CatalogRules products.CatalogRules
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.ErrorHandler())

	baseHandler := handlers.NewBaseHandler()

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories share the one TxManager; services own the transactions.
	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)
	clientRepo := catalog_repo.NewClientRepo(cfg.TxManager)
	unitRepo := product_repo.NewRepo(cfg.TxManager)
	reportRepo := report_repo.NewRepo(cfg.TxManager)
	replacementRepo := replacement_repo.NewRepo(cfg.TxManager)
	orderRepo := order_repo.NewRepo(cfg.TxManager)
	userRepo := auth_repo.NewRepo(cfg.TxManager)

	supplierService := supplier.NewService(supplierRepo, cfg.TxManager)
	clientService := client.NewService(clientRepo, cfg.TxManager)
	productService := products.NewService(unitRepo, supplierRepo, cfg.TxManager, cfg.CatalogRules)
	reportService := reports.NewService(reportRepo, cfg.TxManager)
	replacementService := replacements.NewService(replacementRepo, unitRepo, cfg.TxManager)
	orderService := specialorders.NewService(orderRepo, clientService, supplierService, cfg.TxManager)
	authService := auth.NewService(userRepo, cfg.JWTService)

	api := router.Group("/api/v1")
	{
		// Public auth endpoints
		authHandler := handlers.NewAuthHandler(baseHandler, authService)
		authHandler.RegisterRoutes(api.Group("/auth"))

		// Everything else requires a valid token.
		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTService))

		productHandler := handlers.NewProductHandler(baseHandler, productService)
		productHandler.RegisterRoutes(protected.Group("/products"))

		reportHandler := handlers.NewReportHandler(baseHandler, reportService)
		reportHandler.RegisterRoutes(protected)

		replacementHandler := handlers.NewReplacementHandler(baseHandler, replacementService)
		replacementHandler.RegisterRoutes(protected.Group("/remplacements"))

		orderHandler := handlers.NewSpecialOrderHandler(baseHandler, orderService)
		orderHandler.RegisterRoutes(protected.Group("/special-orders"))

		supplierHandler := handlers.NewCatalogHandler(
			baseHandler,
			supplierService.CatalogService,
			func(req dto.CreateCatalogRequest) *supplier.Supplier {
				return supplier.New(req.Name, req.Phone)
			},
			func(req dto.UpdateCatalogRequest, existing *supplier.Supplier) *supplier.Supplier {
				existing.Name = req.Name
				existing.Phone = req.Phone
				return existing
			},
		)
		supplierHandler.RegisterRoutes(protected.Group("/suppliers"))

		clientHandler := handlers.NewCatalogHandler(
			baseHandler,
			clientService.CatalogService,
			func(req dto.CreateCatalogRequest) *client.Client {
				return client.New(req.Name, req.Phone)
			},
			func(req dto.UpdateCatalogRequest, existing *client.Client) *client.Client {
				existing.Name = req.Name
				existing.Phone = req.Phone
				return existing
			},
		)
		clientHandler.RegisterRoutes(protected.Group("/clients"))
	}

	return router
}
