// @title Doc Quiz API
// @version 1.0
// @description Generates multiple-choice quizzes from documents using pluggable LLM providers.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "doc-quiz/cmd/api/docs"
	"doc-quiz/internal/adapter"
	"doc-quiz/internal/cache"
	"doc-quiz/internal/config"
	"doc-quiz/internal/database"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/handler"
	"doc-quiz/internal/logger"
	"doc-quiz/internal/middleware"
	"doc-quiz/internal/provider"
	"doc-quiz/internal/repository"
	"doc-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Cache: Redis when configured, otherwise in-process.
	var quizCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		quizCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	} else {
		quizCache = adapter.NewMemoryCache()
		appLogger.Info("Redis not configured, using in-memory cache")
	}

	var archive domain.QuizArchive
	if cfg.Archive.Driver != "" {
		db, err := database.Open(ctx, cfg.Archive)
		if err != nil {
			appLogger.Fatal("Failed to connect to archive database", zap.Error(err))
		}
		defer db.Close()
		if err := database.RunMigrations(ctx, db); err != nil {
			appLogger.Fatal("Failed to run archive migrations", zap.Error(err))
		}
		archive = repository.NewQuizArchiveAdapter(db)
	}

	registry, err := provider.NewRegistryFromConfig(ctx, cfg.LLM, cfg.Quiz.GenerateTimeout)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM providers", zap.Error(err))
	}
	for _, a := range registry.Adapters() {
		appLogger.Info("LLM provider registered",
			zap.String("provider", string(a.Type())),
			zap.Bool("available", a.IsAvailable()),
			zap.String("format", string(a.OutputFormat())),
		)
	}

	// Initialize services
	store := service.NewQuizStore(quizCache, archive, cfg.Quiz.CacheTTL)
	documentService := service.NewDocumentService(quizCache, cfg.Uploads, cfg.Quiz.CacheTTL)
	quizService := service.NewQuizService(registry, store, documentService, cfg.Quiz)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)
	uploadHandler := handler.NewUploadHandler(documentService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := quizCache.Ping(pingCtx); err != nil {
			appLogger.Warn("Health check failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok", "ai": quizService.AIStatus().Available})
	})

	handler.RegisterRoutes(app.Group("/api"), quizHandler, uploadHandler)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
