package middleware

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"github.com/sahilchouksey/studyflow/model"
	"github.com/sahilchouksey/studyflow/repository"
)

// AdminAuditLog creates an audit log entry for admin actions.
// It must run after RequireAdmin; the entry is written once the handler
// has succeeded so rejected mutations leave no trace.
func AdminAuditLog(audit repository.AuditLogRepository, users repository.UserRepository, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, ok := GetUser(c)
		if !ok {
			return c.Next() // Continue without logging if user not found
		}

		resourceID := c.Params("id")

		// Capture the previous state of the target for updates and deletes
		var oldValue interface{}
		if resourceID != "" && resource == "users" && (c.Method() == fiber.MethodPut || c.Method() == fiber.MethodDelete) {
			if user, err := users.Get(c.UserContext(), resourceID); err == nil {
				oldValue = user
			}
		}

		var newValue interface{}
		if c.Method() == fiber.MethodPost || c.Method() == fiber.MethodPut {
			if body := c.Body(); len(body) > 0 {
				_ = json.Unmarshal(body, &newValue)
			}
		}

		// Execute the actual handler
		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		entry := &model.AdminAuditLog{
			AdminID:     admin.ID,
			Action:      action,
			Resource:    resource,
			ResourceID:  resourceID,
			OldValue:    toJSON(oldValue),
			NewValue:    toJSON(newValue),
			IPAddress:   c.IP(),
			UserAgent:   c.Get(fiber.HeaderUserAgent),
			Description: c.Method() + " " + c.Path(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := audit.Create(ctx, entry); err != nil {
			log.Printf("[AUDIT] failed to record %s on %s: %v", action, resource, err)
		}
		return nil
	}
}

func toJSON(value interface{}) datatypes.JSON {
	if value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
