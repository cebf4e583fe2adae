package subject

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/middleware"
	"github.com/sahilchouksey/studyflow/utils/response"
	"github.com/sahilchouksey/studyflow/utils/validation"
)

// ListModules handles GET /api/v1/schedule/modules?subjectId=
func (h *SubjectHandler) ListModules(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	subjectID := c.Query("subjectId")
	if subjectID == "" {
		subjectID = c.Query("subject_id")
	}

	modules, err := h.moduleService.List(c.UserContext(), userID, subjectID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, modules)
}

// GetModule handles GET /api/v1/schedule/modules/:id
func (h *SubjectHandler) GetModule(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	module, err := h.moduleService.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, module)
}

// CreateModule handles POST /api/v1/schedule/modules
func (h *SubjectHandler) CreateModule(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.CreateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	module, err := h.moduleService.Create(c.UserContext(), userID, req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, module)
}

// UpdateModule handles PUT /api/v1/schedule/modules/:id
func (h *SubjectHandler) UpdateModule(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.UpdateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	module, err := h.moduleService.Update(c.UserContext(), userID, c.Params("id"), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Module updated successfully", module)
}

// DeleteModule handles DELETE /api/v1/schedule/modules/:id
func (h *SubjectHandler) DeleteModule(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	if err := h.moduleService.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Module deleted successfully", nil)
}

// AddTopic handles POST /api/v1/schedule/modules/:id/topics
func (h *SubjectHandler) AddTopic(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.TopicRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	module, err := h.moduleService.AddTopic(c.UserContext(), userID, c.Params("id"), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, module)
}

// UpdateTopic handles PUT /api/v1/schedule/modules/:id/topics/:topicId
func (h *SubjectHandler) UpdateTopic(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.UpdateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	module, err := h.moduleService.UpdateTopic(c.UserContext(), userID, c.Params("id"), c.Params("topicId"), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Topic updated successfully", module)
}

// DeleteTopic handles DELETE /api/v1/schedule/modules/:id/topics/:topicId
func (h *SubjectHandler) DeleteTopic(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	module, err := h.moduleService.DeleteTopic(c.UserContext(), userID, c.Params("id"), c.Params("topicId"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Topic deleted successfully", module)
}
