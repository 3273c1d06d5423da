package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	appwebhook "github.com/opstracker/backend/internal/application/webhook"
	"github.com/opstracker/backend/internal/interfaces/http/dto"
)

// Deliveries from both providers are a few kilobytes
const maxWebhookPayloadSize = 64 << 10

// WebhookHandler receives identity and billing provider deliveries. These
// routes are public; authenticity comes from the payload signature.
type WebhookHandler struct {
	BaseHandler
	webhooks *appwebhook.Service
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhooks *appwebhook.Service) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks}
}

// HandleClerk receives svix-signed user lifecycle events from the identity provider
func (h *WebhookHandler) HandleClerk(c *gin.Context) {
	h.receive(c, func(ctx context.Context, payload []byte) (*appwebhook.Result, error) {
		return h.webhooks.ProcessClerk(ctx, payload, c.Request.Header)
	})
}

// HandleClerkBilling receives svix-signed subscription events from the billing provider
func (h *WebhookHandler) HandleClerkBilling(c *gin.Context) {
	h.receive(c, func(ctx context.Context, payload []byte) (*appwebhook.Result, error) {
		return h.webhooks.ProcessClerkBilling(ctx, payload, c.Request.Header)
	})
}

// HandleStripe receives Stripe subscription lifecycle events
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	signature := c.GetHeader("Stripe-Signature")
	h.receive(c, func(ctx context.Context, payload []byte) (*appwebhook.Result, error) {
		return h.webhooks.ProcessStripe(ctx, payload, signature)
	})
}

// receive reads the raw body, which signature checks need byte for byte,
// and maps the outcome. A verified delivery whose processing failed gets a
// 500 so the provider redelivers it.
func (h *WebhookHandler) receive(c *gin.Context, process func(context.Context, []byte) (*appwebhook.Result, error)) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.WebhookResponse{Received: false})
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusRequestEntityTooLarge, dto.WebhookResponse{Received: false})
		return
	}

	result, err := process(c.Request.Context(), payload)
	switch {
	case errors.Is(err, appwebhook.ErrSecretNotConfigured):
		c.JSON(http.StatusInternalServerError, dto.WebhookResponse{Received: false})
		return
	case errors.Is(err, appwebhook.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, dto.WebhookResponse{Received: false})
		return
	case result == nil:
		c.JSON(http.StatusInternalServerError, dto.WebhookResponse{Received: false})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, dto.WebhookResponse{
			Received:  false,
			EventID:   result.EventID,
			EventType: result.EventType,
			Outcome:   result.Outcome,
		})
		return
	}

	c.JSON(http.StatusOK, dto.WebhookResponse{
		Received:  true,
		EventID:   result.EventID,
		EventType: result.EventType,
		Outcome:   result.Outcome,
	})
}
