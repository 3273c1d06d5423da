package handler

import (
	"github.com/gin-gonic/gin"
	apppipeline "github.com/opstracker/backend/internal/application/pipeline"
)

// PipelineHandler serves leads, follow-ups and customers
type PipelineHandler struct {
	BaseHandler
	pipeline *apppipeline.Service
}

// NewPipelineHandler creates a new PipelineHandler
func NewPipelineHandler(pipeline *apppipeline.Service) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

// GetPipeline returns leads, follow-ups and customers in one read
func (h *PipelineHandler) GetPipeline(c *gin.Context) {
	p, err := h.pipeline.GetPipeline(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// AddLead handles POST /leads
func (h *PipelineHandler) AddLead(c *gin.Context) {
	var req apppipeline.LeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	lead, err := h.pipeline.AddLead(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, lead)
}

// UpdateLead handles PUT /leads/:id
func (h *PipelineHandler) UpdateLead(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req apppipeline.LeadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	lead, err := h.pipeline.UpdateLead(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lead)
}

// DeleteLead handles DELETE /leads/:id
func (h *PipelineHandler) DeleteLead(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.pipeline.DeleteLead(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddFollowUp handles POST /follow-ups
func (h *PipelineHandler) AddFollowUp(c *gin.Context) {
	var req apppipeline.FollowUpRequest
	if !h.bindJSON(c, &req) {
		return
	}
	f, err := h.pipeline.AddFollowUp(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, f)
}

// UpdateFollowUp handles PUT /follow-ups/:id
func (h *PipelineHandler) UpdateFollowUp(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req apppipeline.FollowUpRequest
	if !h.bindJSON(c, &req) {
		return
	}
	f, err := h.pipeline.UpdateFollowUp(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, f)
}

// DeleteFollowUp handles DELETE /follow-ups/:id
func (h *PipelineHandler) DeleteFollowUp(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.pipeline.DeleteFollowUp(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddCustomer handles POST /customers
func (h *PipelineHandler) AddCustomer(c *gin.Context) {
	var req apppipeline.CreateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.pipeline.AddCustomer(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, customer)
}

// UpdateCustomer patches a customer, including the manually kept counters
func (h *PipelineHandler) UpdateCustomer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req apppipeline.UpdateCustomerRequest
	if !h.bindJSON(c, &req) {
		return
	}
	customer, err := h.pipeline.UpdateCustomer(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// DeleteCustomer handles DELETE /customers/:id
func (h *PipelineHandler) DeleteCustomer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.pipeline.DeleteCustomer(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
