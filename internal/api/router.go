package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rentwheels/rental-api/internal/api/handler"
	"github.com/rentwheels/rental-api/internal/api/middleware"
	"github.com/rentwheels/rental-api/internal/core/ports"
	"github.com/rentwheels/rental-api/internal/core/service"
	mongodb "github.com/rentwheels/rental-api/internal/infrastructure/db/mongo"
	redisdb "github.com/rentwheels/rental-api/internal/infrastructure/db/redis"
)

// Config carries the knobs the router needs beyond its external collaborators.
type Config struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit trail is injected so its worker lifecycle stays owned by main.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg Config, audit ports.AuditTrail, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	vehicleRepo := mongodb.NewVehicleRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	tokenStore := redisdb.NewRefreshTokenStore(rdb)

	vehicleService := service.NewVehicleService(vehicleRepo, bookingRepo, audit, log)
	bookingService := service.NewBookingService(bookingRepo, vehicleRepo, audit, log)
	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, log)

	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	authHandler := handler.NewAuthHandler(authService)

	authMW := middleware.Auth(cfg.JWTSecret)
	staffMW := middleware.StaffOnly()

	// --- Open routes ---
	e.POST("/register/", authHandler.Register)
	e.POST("/login/", authHandler.Login)
	e.POST("/refresh/", authHandler.Refresh)

	// --- Fleet catalog (staff only; Auth runs first so the unauthenticated
	// always see 401, never 403) ---
	e.GET("/vehicles/", vehicleHandler.List, authMW, staffMW)
	e.POST("/vehicles/", vehicleHandler.Create, authMW, staffMW)
	e.GET("/vehicles/:id/", vehicleHandler.Get, authMW, staffMW)
	e.PUT("/vehicles/:id/", vehicleHandler.Update, authMW, staffMW)
	e.DELETE("/vehicles/:id/", vehicleHandler.Delete, authMW, staffMW)

	// --- Reservations (any authenticated caller) ---
	e.GET("/bookings/", bookingHandler.List, authMW)
	e.POST("/bookings/", bookingHandler.Create, authMW)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
