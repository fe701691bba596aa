// handlers/profile.go
package handlers

import (
	"neuroflow/middleware"
	"neuroflow/models"
	"neuroflow/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(router fiber.Router, profiles *services.ProfileService) {
	router.Get("/profile", func(c *fiber.Ctx) error {
		p, err := profiles.GetProfile(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	})

	// PUT is a full overwrite and completes onboarding
	router.Put("/profile", func(c *fiber.Ctx) error {
		var p models.Profile
		if err := c.BodyParser(&p); err != nil {
			return badJSON(c, err)
		}
		p.Onboarded = true

		sess := middleware.SessionFrom(c)
		if err := profiles.SaveProfile(c.UserContext(), sess, p); err != nil {
			return respondError(c, err)
		}
		saved, err := profiles.GetProfile(c.UserContext(), sess)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(saved)
	})
}
