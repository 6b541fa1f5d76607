package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/workbridge/unified-identity/internal/config"
	"github.com/workbridge/unified-identity/internal/database"
	"github.com/workbridge/unified-identity/internal/handlers"
	"github.com/workbridge/unified-identity/internal/logging"
	"github.com/workbridge/unified-identity/internal/middleware"
	"github.com/workbridge/unified-identity/internal/platform"
	"github.com/workbridge/unified-identity/internal/platform/career"
	"github.com/workbridge/unified-identity/internal/platform/freelancer"
	"github.com/workbridge/unified-identity/internal/routes"
	"github.com/workbridge/unified-identity/internal/services"
	"github.com/workbridge/unified-identity/internal/store"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	// Three stores: master (unified identities) plus the two platform
	// account stores.
	masterDB, err := database.Connect("master", cfg.Master.DSN())
	if err != nil {
		slog.Error("master store connection failed", "error", err)
		os.Exit(1)
	}
	freelancerDB, err := database.Connect("freelancer", cfg.Freelancer.DSN())
	if err != nil {
		slog.Error("freelancer store connection failed", "error", err)
		os.Exit(1)
	}
	careerDB, err := database.Connect("career_copilot", cfg.Career.DSN())
	if err != nil {
		slog.Error("career store connection failed", "error", err)
		os.Exit(1)
	}

	masterStore := store.New(masterDB)
	if err := masterStore.Migrate(); err != nil {
		slog.Error("master store migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch, master store)
	pgLogHandler := logging.NewPGHandler(masterDB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(masterDB, cleanupDone)

	platforms := platform.Set{
		Freelancer:    freelancer.New(freelancerDB),
		CareerCopilot: career.New(careerDB),
	}

	// Services
	authService := services.NewAuthService(masterStore, platforms, cfg)
	profileService := services.NewProfileService(masterStore, platforms)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	healthHandler := handlers.NewHealthHandler(map[string]*gorm.DB{
		"master":         masterDB,
		"freelancer":     freelancerDB,
		"career_copilot": careerDB,
	})

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, authHandler, profileHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	for name, db := range map[string]*gorm.DB{
		"master":         masterDB,
		"freelancer":     freelancerDB,
		"career_copilot": careerDB,
	} {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "store", name, "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
