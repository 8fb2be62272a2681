package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rewardly/cashback-system/internal/api/handler"
	"github.com/rewardly/cashback-system/internal/api/middleware"
	"github.com/rewardly/cashback-system/internal/core/domain"
	"github.com/rewardly/cashback-system/internal/core/service"
	"github.com/rewardly/cashback-system/internal/infrastructure/config"
	"github.com/rewardly/cashback-system/internal/infrastructure/db/postgres"
	redisinfra "github.com/rewardly/cashback-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cashback"))

	// --- Dependencies ---
	tokenProvider, err := service.NewJwtTokenProvider(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.TokenTTL())
	if err != nil {
		return nil, err
	}

	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	userRepo := postgres.NewUserRepository(pool)
	merchantRepo := postgres.NewMerchantRepository(pool)
	limiter := redisinfra.NewLoginLimiter(rdb, cfg.Auth.LoginMaxFailures, cfg.Auth.LoginFailureWindow)

	authService := service.NewAuthService(userRepo, tokenProvider, hasher.Verify, limiter, log)
	userService := service.NewUserService(domain.EnforcePasswordComplexity, hasher.Hash, userRepo, log)
	merchantService := service.NewMerchantService(
		func(p float64) error { return domain.EnforceCashbackPercentageValidity(p, cfg.MaxCashbackPercentage) },
		merchantRepo,
		log,
	)
	resolver := service.NewCurrentUserService(userRepo, tokenProvider, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	merchantHandler := handler.NewMerchantHandler(merchantService)

	requireAuth := middleware.Auth(resolver)
	requireAdmin := middleware.RequireAdmin(resolver)

	// --- API routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/users", userHandler.Create)
	v1.POST("/login", authHandler.Login)
	v1.POST("/merchants", merchantHandler.Create, requireAuth, requireAdmin)
	v1.GET("/merchants", merchantHandler.List, requireAuth)
	v1.PATCH("/merchants/:id/status", merchantHandler.SetStatus, requireAuth, requireAdmin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health/live", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
