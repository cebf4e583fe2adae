package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/database"
	"github.com/sahilchouksey/studyflow/utils/response"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleDatabaseHealth reports the storage driver and whether it answers a ping
func HandleDatabaseHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database connection failed", fiber.Map{
			"driver":    store.Driver(),
			"connected": false,
		})
	}

	return response.SuccessWithMessage(c, "Database connected successfully", fiber.Map{
		"driver":    store.Driver(),
		"connected": true,
	})
}
