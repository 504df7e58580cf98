package http

import (
	"net/http"
	"time"

	"marketplace-backend/internal/application/query"
	"marketplace-backend/pkg/errors"
	"marketplace-backend/pkg/middleware"
	"marketplace-backend/pkg/response"
)

// AdminDashboardController serves the aggregated admin dashboard snapshot
type AdminDashboardController struct {
	dashboardHandler *query.AdminDashboardHandler
}

// NewAdminDashboardController creates a new admin dashboard controller
func NewAdminDashboardController(dashboardHandler *query.AdminDashboardHandler) *AdminDashboardController {
	return &AdminDashboardController{
		dashboardHandler: dashboardHandler,
	}
}

// GetDashboard handles GET /admin/dashboard
// Optional query parameter: tz (IANA name, e.g. "Asia/Ho_Chi_Minh") controls
// the month bucketing of the user growth curve; UTC otherwise.
func (c *AdminDashboardController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	q := query.GetAdminDashboard{}

	if tz := r.URL.Query().Get("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			middleware.HandleError(w, r, errors.NewValidationError("invalid tz parameter"))
			return
		}
		q.Location = loc
	}

	snapshot, err := c.dashboardHandler.Handle(r.Context(), q)
	if err != nil {
		middleware.HandleError(w, r, errors.NewInternalError("failed to load dashboard"))
		return
	}

	response.SendSuccess(w, r, snapshot)
}
