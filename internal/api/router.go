package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aiqb/preorder-system/internal/api/handler"
	"github.com/aiqb/preorder-system/internal/api/middleware"
	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// RouterConfig carries the service graph the router wires handlers onto.
// Services are constructed in main so the reconciler and the session refresh
// loop can share them.
type RouterConfig struct {
	Sessions  ports.SessionService
	Orders    ports.OrderService
	Snapshots ports.SnapshotService
	Notifier  ports.Notifier
	Stock     ports.StockService
	Profiles  ports.ProfileService
	Staff     ports.StaffService

	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowCredentials: true,
		AllowOriginFunc:  func(string) (bool, error) { return true, nil },
	}))
	e.Use(echoprometheus.NewMiddleware("preorder"))
	e.Use(middleware.ClientID())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Sessions, cfg.Notifier)
	orderHandler := handler.NewOrderHandler(cfg.Orders, cfg.Sessions)
	snapshotHandler := handler.NewSnapshotHandler(cfg.Snapshots)
	notificationHandler := handler.NewNotificationHandler(cfg.Notifier)
	stockHandler := handler.NewStockHandler(cfg.Stock)
	profileHandler := handler.NewProfileHandler(cfg.Profiles)
	staffHandler := handler.NewStaffHandler(cfg.Staff)

	v1 := e.Group("/v1")

	// --- Customer auth (delegated to the remote backend) ---
	v1.POST("/auth/signup", authHandler.Signup)
	v1.POST("/auth/signin", authHandler.Signin)
	v1.POST("/auth/signout", authHandler.Signout)
	v1.POST("/auth/reset", authHandler.Reset)
	v1.GET("/auth/me", authHandler.Me)
	v1.GET("/auth/events", authHandler.Events)

	// --- Preorder form + submission ---
	v1.PUT("/form", snapshotHandler.Persist)
	v1.GET("/form", snapshotHandler.Restore)
	v1.DELETE("/form", snapshotHandler.Clear)
	v1.POST("/orders", orderHandler.Submit)
	v1.GET("/orders/:order_id", orderHandler.Get)

	// --- Toasts, stock, profile ---
	v1.GET("/notifications", notificationHandler.List)
	v1.DELETE("/notifications/:id", notificationHandler.Dismiss)
	v1.GET("/stock", stockHandler.Levels)
	v1.GET("/profile", profileHandler.Get)
	v1.PATCH("/profile", profileHandler.Update)

	// --- Staff auth ---
	v1.POST("/staff/register", staffHandler.Register)
	v1.POST("/staff/login", staffHandler.Login)

	// --- Admin (staff JWT required) ---
	admin := v1.Group("/admin",
		middleware.Auth(cfg.JWTSecret),
		middleware.RBAC(domain.RoleAdmin, domain.RoleSupport),
	)
	admin.GET("/orders", orderHandler.AdminList)
	admin.GET("/orders/:order_id", orderHandler.AdminGet)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Mongo, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
