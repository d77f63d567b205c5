package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chronolog/timetrack-system/internal/api/handler"
	"github.com/chronolog/timetrack-system/internal/api/middleware"
	"github.com/chronolog/timetrack-system/internal/core/service"
	mongodb "github.com/chronolog/timetrack-system/internal/infrastructure/db/mongo"
	redisdb "github.com/chronolog/timetrack-system/internal/infrastructure/db/redis"
)

// RouterConfig carries the runtime settings the router needs.
type RouterConfig struct {
	ServerSecret string
	TokenTTL     time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("timetrack"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	timelogRepo := mongodb.NewTimelogRepository(db)
	revocationStore := redisdb.NewRevocationStore(rdb)

	authService := service.NewAuthService(userRepo, revocationStore, cfg.ServerSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, timelogRepo, log)
	timelogService := service.NewTimelogService(timelogRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	timelogHandler := handler.NewTimelogHandler(timelogService)

	authRequired := middleware.Auth(authService)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.PUT("/auth/register", authHandler.Register)

	// --- User routes ---
	users := v1.Group("/users", authRequired)
	users.GET("", userHandler.List)
	users.GET("/user", userHandler.GetCurrent)
	users.PUT("/user", userHandler.Create)
	users.POST("/user", userHandler.UpdateSelf)
	users.GET("/user/:id", userHandler.Get)
	users.POST("/user/:id", userHandler.Update)
	users.DELETE("/user/:id", userHandler.Delete)

	// --- Timelog routes ---
	v1.GET("/timelogs.html", timelogHandler.ExportHTML, authRequired)

	timelogs := v1.Group("/timelogs", authRequired)
	timelogs.GET("", timelogHandler.List)
	timelogs.PUT("/timelog", timelogHandler.Create)
	timelogs.GET("/timelog/:id", timelogHandler.Get)
	timelogs.POST("/timelog/:id", timelogHandler.Update)
	timelogs.DELETE("/timelog/:id", timelogHandler.Delete)

	return e
}
