package settings

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/middleware"
	"github.com/sahilchouksey/studyflow/utils/response"
	"github.com/sahilchouksey/studyflow/utils/validation"
)

// SettingsHandler handles profile and study preference requests
type SettingsHandler struct {
	validator       *validation.Validator
	settingsService *services.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		validator:       validation.NewValidator(),
		settingsService: settingsService,
	}
}

// GetProfile handles GET /api/v1/me
func (h *SettingsHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	user, err := h.settingsService.Profile(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, user)
}

// GetSettings handles GET /api/v1/settings
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	settings, err := h.settingsService.Get(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, settings)
}

// UpdateSettings handles PUT /api/v1/settings
// Only the fields present in the body are changed.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	settings, err := h.settingsService.Update(c.UserContext(), userID, req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Settings updated successfully", settings)
}
