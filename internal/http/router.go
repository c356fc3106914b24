package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/waitumusic/backend/internal/config"
	"github.com/waitumusic/backend/internal/http/handlers"
	"github.com/waitumusic/backend/internal/middleware"
	"github.com/waitumusic/backend/internal/rbac"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	artistHandler *handlers.ArtistHandler,
	objectiveHandler *handlers.ObjectiveHandler,
	developmentHandler *handlers.DevelopmentHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Auth (public)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// User
	protected.Get("/me", userHandler.GetMe)
	protected.Post("/me/ping", userHandler.Ping)

	// Admin
	protected.Patch("/admin/users/:id/role",
		middleware.RequirePermission(rbac.PermViewObjectiveReports), userHandler.UpdateRole)

	// Artists
	protected.Post("/artists",
		middleware.RequirePermission(rbac.PermViewObjectiveReports), artistHandler.Create)
	protected.Get("/artists", artistHandler.List)
	protected.Get("/artists/:id", artistHandler.Get)

	// Internal booking objectives. Templates need authentication only; the
	// rest shares the same policy the service layer checks.
	objectives := protected.Group("/internal-objectives")
	objectives.Get("/templates", objectiveHandler.Templates)
	objectives.Get("/booking/:bookingId/report",
		middleware.RequirePermission(rbac.PermViewObjectiveReports), objectiveHandler.Report)

	objectivesManage := objectives.Group("", middleware.RequirePermission(rbac.PermManageInternalObjectives))
	objectivesManage.Get("/booking/:bookingId", objectiveHandler.ListForBooking)
	objectivesManage.Post("/create", objectiveHandler.Create)
	objectivesManage.Patch("/:objectiveId/status", objectiveHandler.UpdateStatus)
	objectivesManage.Post("/auto-generate", objectiveHandler.AutoGenerate)

	// Artist development intelligence
	intelligence := protected.Group("/intelligence", middleware.RequirePermission(rbac.PermManageInternalObjectives))
	intelligence.Get("/artist-development", developmentHandler.ListAnalyses)
	intelligence.Get("/development-plans/:artistId", developmentHandler.GetPlan)
	intelligence.Post("/generate-development-plan", developmentHandler.GeneratePlan)
	intelligence.Patch("/milestones/:milestoneId", developmentHandler.UpdateMilestone)
	intelligence.Get("/development-analytics", developmentHandler.Analytics)
	intelligence.Post("/predict-trajectory", developmentHandler.PredictTrajectory)
	intelligence.Post("/press-kit/scan", developmentHandler.ScanPressKit)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
