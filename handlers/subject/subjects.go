package subject

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/middleware"
	"github.com/sahilchouksey/studyflow/utils/response"
	"github.com/sahilchouksey/studyflow/utils/validation"
)

// SubjectHandler handles subject, module and topic requests
type SubjectHandler struct {
	validator      *validation.Validator
	subjectService *services.SubjectService
	moduleService  *services.ModuleService
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(subjectService *services.SubjectService, moduleService *services.ModuleService) *SubjectHandler {
	return &SubjectHandler{
		validator:      validation.NewValidator(),
		subjectService: subjectService,
		moduleService:  moduleService,
	}
}

// ListSubjects handles GET /api/v1/schedule/subjects
func (h *SubjectHandler) ListSubjects(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	subjects, err := h.subjectService.List(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, subjects)
}

// GetSubject handles GET /api/v1/schedule/subjects/:id
// The subject is returned together with its modules.
func (h *SubjectHandler) GetSubject(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	subject, err := h.subjectService.GetDetail(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, subject)
}

// CreateSubject handles POST /api/v1/schedule/subjects
func (h *SubjectHandler) CreateSubject(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	// Parse and validate request
	var req services.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	subject, err := h.subjectService.Create(c.UserContext(), userID, req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, subject)
}

// UpdateSubject handles PUT /api/v1/schedule/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	subject, err := h.subjectService.Update(c.UserContext(), userID, c.Params("id"), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Subject updated successfully", subject)
}

// DeleteSubject handles DELETE /api/v1/schedule/subjects/:id
// Deleting a subject also deletes its modules.
func (h *SubjectHandler) DeleteSubject(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	if err := h.subjectService.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Subject deleted successfully", nil)
}
