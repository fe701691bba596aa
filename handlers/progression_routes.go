// handlers/progression_routes.go
package handlers

import (
	"neuroflow/middleware"
	"neuroflow/models"
	"neuroflow/services"

	"github.com/gofiber/fiber/v2"
)

type marketplaceEntry struct {
	models.MarketplaceItem
	Unlocked bool `json:"unlocked"`
}

type badgeEntry struct {
	models.Badge
	Earned bool `json:"earned"`
}

func SetupProgressionRoutes(router fiber.Router, game *services.GamificationService) {
	// read-only; the cached streak is refreshed by habit toggles, /gamification/streak/sync and the worker
	router.Get("/gamification", func(c *fiber.Ctx) error {
		state, err := game.GetState(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(state)
	})

	router.Post("/gamification/xp", func(c *fiber.Ctx) error {
		var req struct {
			Amount int `json:"amount"`
		}
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		res, err := game.AwardXP(c.UserContext(), middleware.SessionFrom(c), req.Amount)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	router.Post("/gamification/streak/sync", func(c *fiber.Ctx) error {
		res, err := game.SyncStreak(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(res)
	})

	router.Get("/streak", func(c *fiber.Ctx) error {
		streak, err := game.Streaks.ComputeStreak(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"streak": streak})
	})

	router.Get("/marketplace", func(c *fiber.Ctx) error {
		state, err := game.GetState(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		out := make([]marketplaceEntry, 0, len(models.MarketplaceCatalog))
		for _, item := range models.MarketplaceCatalog {
			out = append(out, marketplaceEntry{MarketplaceItem: item, Unlocked: state.HasItem(item.ID)})
		}
		return c.JSON(out)
	})

	router.Post("/marketplace/:itemId/unlock", func(c *fiber.Ctx) error {
		state, added, err := game.UnlockItem(c.UserContext(), middleware.SessionFrom(c), c.Params("itemId"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"state": state, "added": added})
	})

	router.Get("/badges", func(c *fiber.Ctx) error {
		state, err := game.GetState(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return respondError(c, err)
		}
		out := make([]badgeEntry, 0, len(models.BadgeCatalog))
		for _, b := range models.BadgeCatalog {
			out = append(out, badgeEntry{Badge: b, Earned: state.HasBadge(b.ID)})
		}
		return c.JSON(out)
	})
}
