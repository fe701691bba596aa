// handlers/daily_log.go
package handlers

import (
	"neuroflow/middleware"
	"neuroflow/models"
	"neuroflow/services"

	"github.com/gofiber/fiber/v2"
)

func SetupDailyLogRoutes(router fiber.Router, cal services.Calendar, logs *services.DailyLogService, habits *services.HabitService, briefing *services.BriefingService) {
	router.Get("/logs", func(c *fiber.Ctx) error {
		days := c.QueryInt("days", 7)
		if days > services.StreakWindowDays {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be at most 365"})
		}
		list, err := logs.RecentLogs(c.UserContext(), middleware.SessionFrom(c), cal.Now(), days)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})

	router.Get("/logs/:date", func(c *fiber.Ctx) error {
		log, err := logs.GetLog(c.UserContext(), middleware.SessionFrom(c), c.Params("date"))
		if err != nil {
			return respondError(c, err)
		}
		if log == nil {
			return notFound(c, "daily log")
		}
		return c.JSON(log)
	})

	// completed=true awards XP once per habit and day; false never takes XP back
	router.Put("/logs/:date/habits/:habitId", func(c *fiber.Ctx) error {
		var req struct {
			Completed *bool `json:"completed"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		if req.Completed == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "completed is required"})
		}

		sess := middleware.SessionFrom(c)
		var (
			res *services.HabitCompletion
			err error
		)
		if *req.Completed {
			res, err = habits.CompleteHabit(c.UserContext(), sess, c.Params("date"), c.Params("habitId"))
		} else {
			res, err = habits.UncompleteHabit(c.UserContext(), sess, c.Params("date"), c.Params("habitId"))
		}
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	router.Put("/logs/:date/plan", func(c *fiber.Ctx) error {
		var plan models.DailyPlan
		if err := c.BodyParser(&plan); err != nil {
			return badJSON(c, err)
		}
		log, err := logs.SetPlan(c.UserContext(), middleware.SessionFrom(c), c.Params("date"), plan)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(log)
	})

	router.Get("/logs/:date/briefing", func(c *fiber.Ctx) error {
		need, err := logs.NeedsBriefing(c.UserContext(), middleware.SessionFrom(c), c.Params("date"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"needsBriefing": need})
	})

	router.Post("/logs/:date/briefing", func(c *fiber.Ctx) error {
		var req struct {
			MIT   string   `json:"mit"`
			Top3  []string `json:"top3"`
			Quote string   `json:"quote"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		log, err := briefing.Submit(c.UserContext(), middleware.SessionFrom(c), c.Params("date"), req.MIT, req.Top3, req.Quote)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(log)
	})

	router.Get("/briefing/suggest", func(c *fiber.Ctx) error {
		sug, err := briefing.Suggest(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(sug)
	})
}
