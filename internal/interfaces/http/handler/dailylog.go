package handler

import (
	"github.com/gin-gonic/gin"
	appdailylog "github.com/opstracker/backend/internal/application/dailylog"
)

// DailyLogHandler serves daily logs and their child rows
type DailyLogHandler struct {
	BaseHandler
	logs *appdailylog.Service
}

// NewDailyLogHandler creates a new DailyLogHandler
func NewDailyLogHandler(logs *appdailylog.Service) *DailyLogHandler {
	return &DailyLogHandler{logs: logs}
}

// CreateDailyLog opens the log for a date, returning the existing one if present
func (h *DailyLogHandler) CreateDailyLog(c *gin.Context) {
	var req appdailylog.CreateDailyLogRequest
	if !h.bindJSON(c, &req) {
		return
	}
	log, err := h.logs.CreateDailyLog(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, log)
}

// ListLogs returns logs with children between two dates, inclusive
func (h *DailyLogHandler) ListLogs(c *gin.Context) {
	logs, err := h.logs.ListLogs(c.Request.Context(), callerID(c), c.Query("start"), c.Query("end"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}

// GetForDate returns the log for one date with its children, or null
func (h *DailyLogHandler) GetForDate(c *gin.Context) {
	// The date shares the :id segment with the child routes
	log, err := h.logs.GetForDate(c.Request.Context(), callerID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}

// UpdateLogDetails handles PATCH /daily-logs/:id/details
func (h *DailyLogHandler) UpdateLogDetails(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appdailylog.UpdateLogDetailsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	log, err := h.logs.UpdateLogDetails(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}

// UpdateExpenses handles PUT /daily-logs/:id/expenses
func (h *DailyLogHandler) UpdateExpenses(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appdailylog.UpdateExpensesRequest
	if !h.bindJSON(c, &req) {
		return
	}
	log, err := h.logs.UpdateExpenses(c.Request.Context(), callerID(c), id, req.ExpensesToday)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}

// AddAppointment handles POST /daily-logs/:id/appointments
func (h *DailyLogHandler) AddAppointment(c *gin.Context) {
	logID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appdailylog.AddAppointmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	appt, err := h.logs.AddAppointment(c.Request.Context(), callerID(c), logID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, appt)
}

// AddOutreach handles POST /daily-logs/:id/outreach
func (h *DailyLogHandler) AddOutreach(c *gin.Context) {
	logID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appdailylog.AddOutreachRequest
	if !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.logs.AddOutreach(c.Request.Context(), callerID(c), logID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// AddCompletedJob records a job. A paid job adds its amount to the day's revenue.
func (h *DailyLogHandler) AddCompletedJob(c *gin.Context) {
	logID, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appdailylog.CompletedJobRequest
	if !h.bindJSON(c, &req) {
		return
	}
	job, err := h.logs.AddCompletedJob(c.Request.Context(), callerID(c), logID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, job)
}

// UpdateCompletedJob handles PUT /jobs/:id
func (h *DailyLogHandler) UpdateCompletedJob(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appdailylog.CompletedJobRequest
	if !h.bindJSON(c, &req) {
		return
	}
	job, err := h.logs.UpdateCompletedJob(c.Request.Context(), callerID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// DeleteAppointment handles DELETE /appointments/:id
func (h *DailyLogHandler) DeleteAppointment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.logs.DeleteAppointment(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteOutreach handles DELETE /outreach/:id
func (h *DailyLogHandler) DeleteOutreach(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.logs.DeleteOutreach(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteCompletedJob handles DELETE /jobs/:id
func (h *DailyLogHandler) DeleteCompletedJob(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.logs.DeleteCompletedJob(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
