package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/response"
)

// ListAuditLogs returns the most recent admin actions
// GET /admin/audit-logs?limit=
func ListAuditLogs(c *fiber.Ctx, svc *services.AdminService) error {
	logs, err := svc.AuditLogs(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, logs)
}
