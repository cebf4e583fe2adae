package utils

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/database"
)

// MakeHTTPHandleFunc binds a handler that needs the storage backend to a route.
// Errors are rendered as the standard error envelope.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INTERNAL_ERROR",
					"message": err.Error(),
				},
			})
		}
		return nil
	}
}
