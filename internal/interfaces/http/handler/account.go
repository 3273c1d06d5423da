package handler

import (
	"github.com/gin-gonic/gin"
	appaccount "github.com/opstracker/backend/internal/application/account"
)

// AccountHandler serves the caller's own account
type AccountHandler struct {
	BaseHandler
	accounts *appaccount.Service
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts *appaccount.Service) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// GetSubscription returns the caller's plan with its ceilings and usage
func (h *AccountHandler) GetSubscription(c *gin.Context) {
	status, err := h.accounts.GetSubscriptionStatus(c.Request.Context(), callerID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}
