package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/response"
)

// ListJobLogs returns recent background job runs
// GET /admin/jobs?job=&limit=
func ListJobLogs(c *fiber.Ctx, svc *services.AdminService) error {
	logs, err := svc.JobLogs(c.UserContext(), c.Query("job"), c.QueryInt("limit", 50))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, logs)
}
