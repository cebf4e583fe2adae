package analytics

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/services"
	"github.com/sahilchouksey/studyflow/utils/middleware"
	"github.com/sahilchouksey/studyflow/utils/response"
)

// AnalyticsHandler handles dashboard and analytics requests
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	// Get user from context
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	dashboard, err := h.analyticsService.Dashboard(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, dashboard)
}

// GetAnalytics handles GET /api/v1/analytics
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	summary, err := h.analyticsService.Analytics(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, summary)
}
