// handlers/habits.go
package handlers

import (
	"neuroflow/middleware"
	"neuroflow/models"
	"neuroflow/services"

	"github.com/gofiber/fiber/v2"
)

func SetupHabitRoutes(router fiber.Router, habits *services.HabitService) {
	router.Get("/habits", func(c *fiber.Ctx) error {
		list, err := habits.ListHabits(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})

	router.Post("/habits/custom", func(c *fiber.Ctx) error {
		var h models.Habit
		if err := c.BodyParser(&h); err != nil {
			return badJSON(c, err)
		}
		created, err := habits.AddCustomHabit(c.UserContext(), middleware.SessionFrom(c), h)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	router.Post("/habits/suggestions", func(c *fiber.Ctx) error {
		list, err := habits.SuggestHabits(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})

	router.Get("/shifters", func(c *fiber.Ctx) error {
		return c.JSON(models.StateShifters)
	})

	router.Post("/shifters/:id", func(c *fiber.Ctx) error {
		res, err := habits.ShiftState(c.UserContext(), middleware.SessionFrom(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})
}
