package event

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/middleware"
	"github.com/sahilchouksey/studyflow/utils/response"
	"github.com/sahilchouksey/studyflow/utils/validation"
)

// EventHandler handles calendar event requests
type EventHandler struct {
	validator    *validation.Validator
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		validator:    validation.NewValidator(),
		eventService: eventService,
	}
}

// ListEvents handles GET /api/v1/events
// Query: upcoming=true, from=YYYY-MM-DD, to=YYYY-MM-DD
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	query := services.EventQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if raw := c.Query("upcoming"); raw != "" {
		upcoming, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "upcoming must be true or false")
		}
		query.Upcoming = upcoming
	}

	events, err := h.eventService.List(c.UserContext(), userID, query)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, events)
}

// GetEvent handles GET /api/v1/events/:id
func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	event, err := h.eventService.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, event)
}

// CreateEvent handles POST /api/v1/events
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	event, err := h.eventService.Create(c.UserContext(), userID, req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, event)
}

// UpdateEvent handles PUT /api/v1/events/:id
func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	event, err := h.eventService.Update(c.UserContext(), userID, c.Params("id"), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Event updated successfully", event)
}

// DeleteEvent handles DELETE /api/v1/events/:id
func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	if err := h.eventService.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Event deleted successfully", nil)
}
