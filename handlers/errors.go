// handlers/errors.go
package handlers

import (
	"errors"

	"neuroflow/services"
	"neuroflow/storage"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto the API's status codes.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidArgument),
		errors.Is(err, storage.ErrInvalidKey),
		errors.Is(err, storage.ErrInvalidSession):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request",
			"cause": err.Error(),
		})
	case errors.Is(err, services.ErrCoachUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "coach unavailable, retry by resubmitting",
			"cause": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
		"cause": err.Error(),
	})
}

func badJSON(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid JSON",
		"cause": err.Error(),
	})
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": what + " not found",
	})
}
