package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhub/task-management-api/internal/api/handler"
	"github.com/taskhub/task-management-api/internal/api/middleware"
	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
	"github.com/taskhub/task-management-api/internal/core/service"
	"github.com/taskhub/task-management-api/internal/infrastructure/config"
	mongodb "github.com/taskhub/task-management-api/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, archive ports.ObjectStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskhub"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	codec := service.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	authz := service.NewAuthorizer()
	authService := service.NewAuthService(userRepo, codec, log)
	userService := service.NewUserService(userRepo, authz, log)
	taskService := service.NewTaskService(taskRepo, authz, log)
	bulkService := service.NewBulkUploadService(taskRepo, archive, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService, bulkService)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(codec))

	tasks := v1.Group("/tasks")
	tasks.POST("", taskHandler.Create)
	tasks.POST("/bulk-upload", taskHandler.BulkUpload, echomiddleware.BodyLimit(cfg.Upload.MaxSize))
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PATCH("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	users := v1.Group("/users")
	users.GET("/profile", userHandler.Profile)

	adminUsers := users.Group("", middleware.RequireRoles(domain.RoleAdmin))
	adminUsers.GET("", userHandler.List)
	adminUsers.GET("/:id", userHandler.Get)
	adminUsers.PATCH("/:id", userHandler.Update)
	adminUsers.DELETE("/:id", userHandler.Delete)

	return e
}
