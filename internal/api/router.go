package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lumapanel/admin-api/internal/api/handler"
	"github.com/lumapanel/admin-api/internal/api/middleware"
	"github.com/lumapanel/admin-api/internal/core/ports"
	"github.com/lumapanel/admin-api/internal/core/service"
	mongodb "github.com/lumapanel/admin-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lumapanel/admin-api/internal/infrastructure/db/redis"
)

// RouterConfig carries the knobs the router needs beyond its connections.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, store ports.BlobStore, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("adminapi"))

	// --- Dependencies ---
	identityRepo := mongodb.NewIdentityRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	themeRepo := mongodb.NewThemeRepository(db)
	throttle := redisdb.NewSignInThrottle(rdb)

	authService := service.NewAuthService(identityRepo, roleRepo, cfg.JWTSecret, cfg.TokenTTL)
	profileService := service.NewProfileService(identityRepo, roleRepo)
	themeService := service.NewThemeService(themeRepo)
	adminService := service.NewAdminService(identityRepo, roleRepo)

	authHandler := handler.NewAuthHandler(authService, throttle)
	profileHandler := handler.NewProfileHandler(profileService)
	themeHandler := handler.NewThemeHandler(themeService)
	adminHandler := handler.NewAdminHandler(adminService)
	uploadHandler := handler.NewUploadHandler(store)

	authenticated := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireAdmin(roleRepo)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signin", authHandler.Signin)
	e.GET("/auth/me", authHandler.Me, authenticated)

	// --- Profile routes ---
	e.GET("/profiles/me", profileHandler.Get, authenticated)
	e.PUT("/profiles/me", profileHandler.Update, authenticated)
	e.GET("/profiles/me/roles", profileHandler.Roles, authenticated)

	// --- Theme routes (read is public, write is admin-gated) ---
	e.GET("/theme", themeHandler.Get)
	e.PUT("/theme", themeHandler.Update, authenticated, adminOnly)

	// --- User management (admin only) ---
	e.GET("/admin/identities", adminHandler.ListIdentities, authenticated, adminOnly)
	e.POST("/admin/roles/assign", adminHandler.AssignRoles, authenticated, adminOnly)
	e.POST("/admin/roles/revoke", adminHandler.RevokeRoles, authenticated, adminOnly)

	// --- Uploads ---
	e.POST("/upload/avatar", uploadHandler.Avatar, authenticated)
	e.POST("/upload/file", uploadHandler.File, authenticated)
	e.DELETE("/upload/avatar/*", uploadHandler.DeleteAvatar, authenticated)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
