package handler

import (
	"github.com/gin-gonic/gin"
	appbusiness "github.com/opstracker/backend/internal/application/business"
)

// BusinessHandler serves the business profile, goals and tool checklist
type BusinessHandler struct {
	BaseHandler
	business *appbusiness.Service
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(business *appbusiness.Service) *BusinessHandler {
	return &BusinessHandler{business: business}
}

// GetBusinessInfo returns the business profile
func (h *BusinessHandler) GetBusinessInfo(c *gin.Context) {
	info, err := h.business.GetBusinessInfo(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// UpdateBusinessInfo creates or replaces the business profile
func (h *BusinessHandler) UpdateBusinessInfo(c *gin.Context) {
	var req appbusiness.UpdateBusinessInfoRequest
	if !h.bindJSON(c, &req) {
		return
	}
	info, err := h.business.UpdateBusinessInfo(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// ListGoals handles GET /goals
func (h *BusinessHandler) ListGoals(c *gin.Context) {
	goals, err := h.business.ListGoals(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, goals)
}

// ToggleGoal handles PATCH /goals/:id/toggle
func (h *BusinessHandler) ToggleGoal(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appbusiness.ToggleGoalRequest
	if !h.bindJSON(c, &req) {
		return
	}
	goal, err := h.business.ToggleGoal(c.Request.Context(), callerID(c), id, *req.IsAchieved)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, goal)
}

// ListTools handles GET /tools
func (h *BusinessHandler) ListTools(c *gin.Context) {
	tools, err := h.business.ListTools(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tools)
}

// ToggleTool handles PATCH /tools/:id/toggle
func (h *BusinessHandler) ToggleTool(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appbusiness.ToggleToolRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tool, err := h.business.ToggleTool(c.Request.Context(), callerID(c), id, *req.IsSetUp)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tool)
}
