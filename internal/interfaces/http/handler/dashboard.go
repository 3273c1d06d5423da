package handler

import (
	"github.com/gin-gonic/gin"
	appdashboard "github.com/opstracker/backend/internal/application/dashboard"
)

// DashboardHandler serves the aggregated views
type DashboardHandler struct {
	BaseHandler
	dashboard *appdashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *appdashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboard returns stats for a date range plus the goal checklist
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	resp, err := h.dashboard.GetDashboard(c.Request.Context(), callerID(c), c.Query("start"), c.Query("end"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetMonthlyGrowth handles GET /dashboard/monthly-growth
func (h *DashboardHandler) GetMonthlyGrowth(c *gin.Context) {
	buckets, err := h.dashboard.GetMonthlyGrowth(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buckets)
}
