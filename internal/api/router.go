package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clickshop/shop-system/internal/api/handler"
	"github.com/clickshop/shop-system/internal/api/middleware"
	"github.com/clickshop/shop-system/internal/core/domain"
	"github.com/clickshop/shop-system/internal/core/ports"
	"github.com/clickshop/shop-system/internal/core/service"
	"github.com/clickshop/shop-system/internal/infrastructure/config"
	mongostore "github.com/clickshop/shop-system/internal/infrastructure/db/mongo"
	redisstore "github.com/clickshop/shop-system/internal/infrastructure/db/redis"
	"github.com/clickshop/shop-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, suggester ports.Suggester, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clickshop"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	productRepo := mongostore.NewProductRepository(db)
	orderRepo := mongostore.NewOrderRepository(db)
	challengeStore := redisstore.NewChallengeStore(rdb)
	revocationStore := redisstore.NewRevocationStore(rdb)

	authService := service.NewAuthService(
		userRepo,
		challengeStore,
		revocationStore,
		cfg.JWTSecret,
		cfg.TokenTTL,
		service.AccessCodes{Admin: cfg.AdminAccessCode, Employee: cfg.EmployeeAccessCode},
		logger.WithComponent("auth"),
	)
	productService := service.NewProductService(productRepo, suggester, logger.WithComponent("catalog"))
	orderService := service.NewOrderService(orderRepo, logger.WithComponent("orders"))

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	userHandler := handler.NewUserHandler(authService)

	authed := middleware.Auth(cfg.JWTSecret, revocationStore)
	// Order processing and stock adjustment belong to the employee
	// dashboard; admin sessions are rejected there like any other role.
	employeeOnly := middleware.RBAC(domain.RoleEmployee)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/staff/challenge", authHandler.StaffChallenge)
	e.POST("/auth/staff/verify", authHandler.StaffVerify)
	e.DELETE("/auth/staff/challenge/:id", authHandler.StaffCancel)
	e.POST("/auth/logout", authHandler.Logout, authed)
	e.GET("/auth/me", authHandler.Me, authed)

	// --- Catalog routes ---
	// Browsing and searching need a session but no particular role.
	products := e.Group("/v1/products", authed)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("/search", productHandler.Search)
	products.POST("", productHandler.Create, adminOnly)
	products.PUT("/:id", productHandler.Update, adminOnly)
	products.POST("/:id/stock", productHandler.AdjustStock, employeeOnly)

	// --- Order routes (employee only) ---
	orders := e.Group("/v1/orders", authed, employeeOnly)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus)

	// --- Account administration (admin only) ---
	users := e.Group("/v1/users", authed, adminOnly)
	users.GET("", userHandler.List)
	users.PATCH("/:id/role", userHandler.AssignRole)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
