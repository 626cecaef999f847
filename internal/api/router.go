package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/freeedu/auth-service/docs"
	"github.com/freeedu/auth-service/internal/api/handler"
	"github.com/freeedu/auth-service/internal/api/middleware"
	"github.com/freeedu/auth-service/internal/core/ports"
	"github.com/freeedu/auth-service/internal/core/service"
	mongodb "github.com/freeedu/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/freeedu/auth-service/internal/infrastructure/db/redis"
	"github.com/freeedu/auth-service/internal/pkg/config"
	"github.com/freeedu/auth-service/internal/pkg/password"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The /api/auth prefix, health probes, metrics, and swagger are auth-exempt;
// everything else under /api requires an established principal.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditRecorder, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := password.New(cfg.BcryptCost, cfg.HashConcurrency)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokenService, audit, cfg.DefaultRole(), log)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler()
	loginLimiter := redisdb.NewLoginLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)

	// Identity resolution runs on every request but never rejects one;
	// the route groups below decide what requires a principal.
	e.Use(middleware.Authenticate(tokenService, userRepo))

	// --- Auth routes (exempt) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, middleware.Throttle(loginLimiter, log))

	// --- Protected routes ---
	users := e.Group("/api/users", middleware.RequireAuth())
	users.GET("/me", userHandler.Me)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
