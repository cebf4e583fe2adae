package reminder

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/middleware"
	"github.com/sahilchouksey/studyflow/utils/response"
)

// ReminderHandler triggers reminder scans
type ReminderHandler struct {
	reminderService *services.ReminderService
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// SendReminders handles GET /api/v1/tasks/reminders
// A caller holding the internal secret scans every user, anyone else only
// their own tasks and events.
func (h *ReminderHandler) SendReminders(c *fiber.Ctx) error {
	var (
		result *services.ReminderResult
		err    error
	)

	if middleware.IsInternal(c) {
		result, err = h.reminderService.DispatchAll(c.UserContext())
	} else {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "")
		}
		result, err = h.reminderService.DispatchForUser(c.UserContext(), userID)
	}
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, result.Message, result)
}
