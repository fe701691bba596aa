// handlers/insights.go
package handlers

import (
	"neuroflow/middleware"
	"neuroflow/services"

	"github.com/gofiber/fiber/v2"
)

// SetupInsightRoutes mounts the coach-backed features: journal, bio sync, reviews and the vision board.
func SetupInsightRoutes(router fiber.Router, journal *services.JournalService, health *services.HealthService, review *services.ReviewService, vision *services.VisionService) {
	router.Post("/journal/:date", func(c *fiber.Ctx) error {
		var req struct {
			Entry string `json:"entry"`
			Mood  string `json:"mood"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		res, err := journal.SaveEntry(c.UserContext(), middleware.SessionFrom(c), c.Params("date"), req.Entry, req.Mood)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	router.Get("/journal/history", func(c *fiber.Ctx) error {
		list, err := journal.History(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})

	router.Post("/health/sync", func(c *fiber.Ctx) error {
		res, err := health.Sync(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	router.Get("/health", func(c *fiber.Ctx) error {
		m, err := health.Latest(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		if m == nil {
			return notFound(c, "health metrics")
		}
		return c.JSON(m)
	})

	router.Post("/review/:period", func(c *fiber.Ctx) error {
		var req services.ReviewRequest
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		r, err := review.Submit(c.UserContext(), middleware.SessionFrom(c), c.Params("period"), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(r)
	})

	router.Get("/review/:period", func(c *fiber.Ctx) error {
		r, err := review.Last(c.UserContext(), middleware.SessionFrom(c), c.Params("period"))
		if err != nil {
			return respondError(c, err)
		}
		if r == nil {
			return notFound(c, "review")
		}
		return c.JSON(r)
	})

	router.Get("/vision", func(c *fiber.Ctx) error {
		board, err := vision.Board(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(board)
	})

	router.Post("/vision", func(c *fiber.Ctx) error {
		var req struct {
			Prompt string `json:"prompt"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		res, err := vision.Visualize(c.UserContext(), middleware.SessionFrom(c), req.Prompt)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})
}
