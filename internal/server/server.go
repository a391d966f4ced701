package server

import (
	"time"

	"vidshare/internal/config"
	"vidshare/internal/database"
	"vidshare/internal/handlers"
	"vidshare/internal/middleware"
	"vidshare/internal/repositories"
	"vidshare/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Backends are the optional infrastructure clients. A nil field disables
// the feature it backs.
type Backends struct {
	Cache     services.VideoCache
	Publisher services.EventPublisher
	Signer    services.UploadSigner
}

// App is the assembled HTTP application together with the services that
// background workers share with it.
type App struct {
	Fiber    *fiber.App
	Auth     *services.AuthService
	Counters *services.CounterService
}

// New wires repositories, services and handlers and mounts every route.
func New(cfg *config.Config, db *gorm.DB, backends Backends) *App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	videoRepo := repositories.NewGORMVideoRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)
	likeRepo := repositories.NewGORMLikeRepository(db)
	subRepo := repositories.NewGORMSubscriptionRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	counters := services.NewCounterService(videoRepo, userRepo, likeRepo, commentRepo, subRepo, backends.Cache, backends.Publisher)
	videoService := services.NewVideoService(videoRepo, userRepo, likeRepo, subRepo, backends.Cache, backends.Publisher)
	engagementService := services.NewEngagementService(videoRepo, likeRepo, commentRepo, counters, backends.Publisher)
	channelService := services.NewChannelService(userRepo, subRepo, counters, backends.Publisher)
	uploadService := services.NewUploadService(backends.Signer, cfg.UploadURLTTL)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:      "vidshare",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	guards := handlers.Guards{
		Required: middleware.AuthRequired(authService),
		Optional: middleware.AuthOptional(authService),
	}

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService).RegisterRoutes(apiV1, guards)
	handlers.NewChannelHandler(channelService).RegisterRoutes(apiV1, guards)
	handlers.NewVideoHandler(videoService).RegisterRoutes(apiV1, guards)
	handlers.NewEngagementHandler(engagementService).RegisterRoutes(apiV1, guards)
	handlers.NewUploadHandler(uploadService).RegisterRoutes(apiV1, guards)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		dbState := "up"
		if err := database.Ping(db); err != nil {
			logrus.WithError(err).Warn("health check: database ping failed")
			status, code, dbState = "unhealthy", fiber.StatusServiceUnavailable, "down"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbState,
			"cache":    backends.Cache != nil,
			"events":   backends.Publisher != nil,
			"uploads":  uploadService.Enabled(),
		})
	})

	return &App{
		Fiber:    app,
		Auth:     authService,
		Counters: counters,
	}
}

// errorHandler renders errors that escape handlers, such as unknown routes.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code == fiber.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	}
	return c.Status(code).JSON(fiber.Map{
		"message": err.Error(),
	})
}
