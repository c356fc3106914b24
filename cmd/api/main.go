package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/waitumusic/backend/internal/config"
	"github.com/waitumusic/backend/internal/db"
	"github.com/waitumusic/backend/internal/events"
	apphttp "github.com/waitumusic/backend/internal/http"
	"github.com/waitumusic/backend/internal/http/handlers"
	"github.com/waitumusic/backend/internal/presskit"
	"github.com/waitumusic/backend/internal/repositories"
	"github.com/waitumusic/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	artistRepo := repositories.NewArtistRepo(pool)
	objectiveRepo := repositories.NewObjectiveRepo(pool)
	developmentRepo := repositories.NewDevelopmentRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	objectiveService := services.NewObjectiveService(objectiveRepo, auditRepo, publisher, log)
	developmentService := services.NewDevelopmentService(developmentRepo, auditRepo, publisher, log)
	scanner := presskit.NewScanner(cfg.PressFetchTimeoutMS, cfg.PressFetchMaxRetries, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	userHandler := handlers.NewUserHandler(userRepo, auditRepo, log)
	artistHandler := handlers.NewArtistHandler(artistRepo, log)
	objectiveHandler := handlers.NewObjectiveHandler(objectiveService, log)
	developmentHandler := handlers.NewDevelopmentHandler(developmentService, scanner, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"success": false, "error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, userHandler, artistHandler, objectiveHandler, developmentHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
