package handlers

import (
	"github.com/campushub/campus-hub-api/database"
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth reports liveness, including database reachability.
func HandleCheckHealth(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
