package task

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/middleware"
	"github.com/sahilchouksey/studyflow/utils/response"
	"github.com/sahilchouksey/studyflow/utils/validation"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	validator   *validation.Validator
	taskService *services.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		validator:   validation.NewValidator(),
		taskService: taskService,
	}
}

// ListTasks handles GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	query := services.TaskQuery{
		Priority: c.Query("priority"),
		Type:     c.Query("type"),
	}
	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "completed must be true or false")
		}
		query.Completed = &completed
	}

	tasks, err := h.taskService.List(c.UserContext(), userID, query)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, tasks)
}

// GetTask handles GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	task, err := h.taskService.Get(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, task)
}

// CreateTask handles POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	// Parse and validate request
	var req services.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	task, err := h.taskService.Create(c.UserContext(), userID, req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, task)
}

// UpdateTask handles PUT /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	var req services.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	task, err := h.taskService.Update(c.UserContext(), userID, c.Params("id"), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Task updated successfully", task)
}

// DeleteTask handles DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "")
	}

	if err := h.taskService.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Task deleted successfully", nil)
}
