package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/response"
)

// GetStats returns platform-wide counters together with the user list
// GET /admin/stats
func GetStats(c *fiber.Ctx, svc *services.AdminService) error {
	overview, err := svc.Overview(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, overview)
}
