package timetable

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/middleware"
	"github.com/sahilchouksey/studyflow/utils/response"
	"github.com/sahilchouksey/studyflow/utils/validation"
)

// TimetableHandler handles weekly class slot requests
type TimetableHandler struct {
	validator        *validation.Validator
	timetableService *services.TimetableService
}

// NewTimetableHandler creates a new timetable handler
func NewTimetableHandler(timetableService *services.TimetableService) *TimetableHandler {
	return &TimetableHandler{
		validator:        validation.NewValidator(),
		timetableService: timetableService,
	}
}

// ListSlots handles GET /api/v1/timetable?day=
func (h *TimetableHandler) ListSlots(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	slots, err := h.timetableService.List(c.UserContext(), userID, c.Query("day"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, slots)
}

// CreateSlot handles POST /api/v1/timetable
func (h *TimetableHandler) CreateSlot(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.ClassSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	slot, err := h.timetableService.Create(c.UserContext(), userID, req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, slot)
}

// UpdateSlot handles PUT /api/v1/timetable/:id
func (h *TimetableHandler) UpdateSlot(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.UpdateClassSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	slot, err := h.timetableService.Update(c.UserContext(), userID, c.Params("id"), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Class updated successfully", slot)
}

// DeleteSlot handles DELETE /api/v1/timetable/:id
func (h *TimetableHandler) DeleteSlot(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	if err := h.timetableService.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Class deleted successfully", nil)
}
