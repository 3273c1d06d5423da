package handler

import (
	"github.com/gin-gonic/gin"
	appplaybook "github.com/opstracker/backend/internal/application/playbook"
)

// PlaybookHandler serves sales scripts and objection handlers
type PlaybookHandler struct {
	BaseHandler
	playbook *appplaybook.Service
}

// NewPlaybookHandler creates a new PlaybookHandler
func NewPlaybookHandler(playbook *appplaybook.Service) *PlaybookHandler {
	return &PlaybookHandler{playbook: playbook}
}

// GetPlaybook returns scripts and objection handlers with the caller's plan limits
func (h *PlaybookHandler) GetPlaybook(c *gin.Context) {
	resp, err := h.playbook.GetScriptsAndHandlers(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddScript handles POST /scripts
func (h *PlaybookHandler) AddScript(c *gin.Context) {
	var req appplaybook.ScriptRequest
	if !h.bindJSON(c, &req) {
		return
	}
	script, err := h.playbook.AddScript(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, script)
}

// UpdateScript handles PUT /scripts/:id
func (h *PlaybookHandler) UpdateScript(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appplaybook.ScriptRequest
	if !h.bindJSON(c, &req) {
		return
	}
	script, err := h.playbook.UpdateScript(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, script)
}

// DeleteScript handles DELETE /scripts/:id
func (h *PlaybookHandler) DeleteScript(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.playbook.DeleteScript(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddObjectionHandler handles POST /objection-handlers
func (h *PlaybookHandler) AddObjectionHandler(c *gin.Context) {
	var req appplaybook.ObjectionHandlerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	oh, err := h.playbook.AddObjectionHandler(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, oh)
}

// UpdateObjectionHandler handles PUT /objection-handlers/:id
func (h *PlaybookHandler) UpdateObjectionHandler(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appplaybook.ObjectionHandlerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	oh, err := h.playbook.UpdateObjectionHandler(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, oh)
}

// DeleteObjectionHandler handles DELETE /objection-handlers/:id
func (h *PlaybookHandler) DeleteObjectionHandler(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.playbook.DeleteObjectionHandler(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
