package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	appfinance "github.com/opstracker/backend/internal/application/finance"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FinanceHandler serves revenue and expense entries
type FinanceHandler struct {
	BaseHandler
	entries *appfinance.EntryService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(entries *appfinance.EntryService) *FinanceHandler {
	return &FinanceHandler{entries: entries}
}

// GetMonthlyFinancials lists a month's entries, newest first, with totals
func (h *FinanceHandler) GetMonthlyFinancials(c *gin.Context) {
	resp, err := h.entries.GetMonthlyFinancials(c.Request.Context(), callerID(c), c.Query("month"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddEntry records revenue or an expense. Free plans stop at the entry ceiling.
func (h *FinanceHandler) AddEntry(c *gin.Context) {
	var req appfinance.AddEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.entries.AddEntry(c.Request.Context(), callerID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// DeleteEntry handles DELETE /financials/:id
func (h *FinanceHandler) DeleteEntry(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.entries.DeleteEntry(c.Request.Context(), callerID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ExportMonth sends a month's entries as a spreadsheet
func (h *FinanceHandler) ExportMonth(c *gin.Context) {
	month := c.Query("month")
	data, err := h.entries.ExportMonth(c.Request.Context(), callerID(c), month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="financials-%s.xlsx"`, month))
	c.Data(http.StatusOK, xlsxContentType, data)
}
