package main

import (
	"errors"
	"time"

	"storerating/internal/config"
	"storerating/internal/handlers"
	"storerating/internal/metrics"
	"storerating/internal/middleware"
	"storerating/internal/repositories"
	"storerating/internal/services"
	"storerating/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// appDeps are the long-lived resources the HTTP app is built from.
// Events and Redis are optional.
type appDeps struct {
	cfg          *config.Config
	db           *gorm.DB
	events       services.EventPublisher
	brokerStatus *rabbitmq.Status
	redis        *redis.Client
}

// newApp wires repositories, services and handlers into a Fiber app.
func newApp(deps appDeps) *fiber.App {
	cfg := deps.cfg
	if deps.brokerStatus == nil {
		deps.brokerStatus = rabbitmq.NewStatus()
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(deps.db)
	storeRepo := repositories.NewGORMStoreRepository(deps.db)
	ratingRepo := repositories.NewGORMRatingRepository(deps.db)
	uow := repositories.NewGORMUnitOfWork(deps.db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, deps.events)
	onboardingService := services.NewOnboardingService(uow, deps.events)
	storeService := services.NewStoreService(storeRepo, ratingRepo, userRepo, deps.events)
	ratingService := services.NewRatingService(ratingRepo, storeRepo, deps.events)
	userService := services.NewUserService(userRepo, deps.events)
	adminService := services.NewAdminService(userRepo, storeRepo, ratingRepo)

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(fiberlogger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, OPTIONS",
	}))
	app.Use(metrics.Middleware())

	// --- API Routes ---
	api := app.Group("/api")
	if deps.redis != nil {
		limiter := middleware.NewRateLimiter(deps.redis, middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			Prefix:      "ratelimit:auth",
		})
		api.Use("/auth", limiter.Middleware())
	}

	handlers.NewAuthHandler(authService, onboardingService).RegisterRoutes(api)
	handlers.NewStoreHandler(storeService, authService).RegisterRoutes(api)
	handlers.NewRatingHandler(ratingService, authService).RegisterRoutes(api)
	handlers.NewUserHandler(authService).RegisterRoutes(api)
	handlers.NewOwnerHandler(storeService, authService).RegisterRoutes(api)
	handlers.NewAdminHandler(adminService, userService, storeService, authService).RegisterRoutes(api)

	// --- Health Check Endpoint ---
	brokerStatus := deps.brokerStatus
	app.Get("/health", func(c *fiber.Ctx) error {
		broker := "disconnected"
		if brokerStatus.Connected() {
			broker = "connected"
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"broker": broker,
		})
	})

	app.Get("/metrics", metrics.Handler())

	return app
}

// errorHandler keeps Fiber's own errors (unknown routes, oversized bodies) in
// the {"message": ...} shape the API uses everywhere else.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, message = fe.Code, fe.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"message": message,
	})
}
