package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/response"
	"github.com/sahilchouksey/studyflow/utils/validation"
)

var validator = validation.NewValidator()

// ListUsers retrieves users with pagination and filters
// GET /admin/users
func ListUsers(c *fiber.Ctx, svc *services.AdminService) error {
	// Parse query parameters
	var req services.ListUsersQuery
	if err := c.QueryParser(&req); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}

	users, total, req, err := svc.ListUsers(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Paginated(c, users, response.CalculatePagination(req.Page, req.Limit, total))
}

// GetUser retrieves a single user by ID
// GET /admin/users/:id
func GetUser(c *fiber.Ctx, svc *services.AdminService) error {
	user, err := svc.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, user)
}

// CreateUser adds a user record. Credentials stay with the identity provider.
// POST /admin/users
func CreateUser(c *fiber.Ctx, svc *services.AdminService) error {
	var req services.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	user, err := svc.CreateUser(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, user)
}

// UpdateUser updates a non-admin user's details
// PUT /admin/users/:id
func UpdateUser(c *fiber.Ctx, svc *services.AdminService) error {
	var req services.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	user, err := svc.UpdateUser(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "User updated successfully", user)
}

// DeleteUser deletes a non-admin user and all of their data
// DELETE /admin/users/:id
func DeleteUser(c *fiber.Ctx, svc *services.AdminService) error {
	if err := svc.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "User deleted successfully", nil)
}
