// handlers/routes.go
package handlers

import (
	"neuroflow/middleware"
	"neuroflow/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Services bundles everything the API needs.
type Services struct {
	Calendar     services.Calendar
	Logs         *services.DailyLogService
	Gamification *services.GamificationService
	Profiles     *services.ProfileService
	Habits       *services.HabitService
	Journal      *services.JournalService
	Health       *services.HealthService
	Briefing     *services.BriefingService
	Review       *services.ReviewService
	Vision       *services.VisionService
}

// SetupRoutes mounts the API under /api/v1. Every route runs with a resolved session.
func SetupRoutes(app *fiber.App, svc Services, jwtSecret string, logger *zap.Logger) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", middleware.UserContextMiddleware(jwtSecret, logger))

	SetupDailyLogRoutes(api, svc.Calendar, svc.Logs, svc.Habits, svc.Briefing)
	SetupProgressionRoutes(api, svc.Gamification)
	SetupProfileRoutes(api, svc.Profiles)
	SetupHabitRoutes(api, svc.Habits)
	SetupInsightRoutes(api, svc.Journal, svc.Health, svc.Review, svc.Vision)
}
