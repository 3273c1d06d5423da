package deletion

import (
	"context"
	"fmt"

	"github.com/opstracker/backend/internal/domain/account"
	"github.com/opstracker/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserDeletedHandler starts the cleanup saga when an account is deleted
type UserDeletedHandler struct {
	orchestrator *Orchestrator
	logger       *zap.Logger
}

// NewUserDeletedHandler creates a new UserDeletedHandler
func NewUserDeletedHandler(orchestrator *Orchestrator, logger *zap.Logger) *UserDeletedHandler {
	return &UserDeletedHandler{orchestrator: orchestrator, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *UserDeletedHandler) EventTypes() []string {
	return []string{account.EventTypeUserDeleted}
}

// Handle starts or reuses the deletion job of the deleted user
func (h *UserDeletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	deleted, ok := event.(*account.UserDeletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			account.EventTypeUserDeleted, event.EventType())
	}

	job, err := h.orchestrator.Start(ctx, deleted.ExternalID)
	if err != nil {
		h.logger.Error("failed to start deletion",
			zap.String("external_user_id", deleted.ExternalID),
			zap.Error(err),
		)
		return err
	}
	h.logger.Info("deletion scheduled",
		zap.String("external_user_id", deleted.ExternalID),
		zap.String("job_id", job.ID.String()),
	)
	return nil
}

var _ shared.EventHandler = (*UserDeletedHandler)(nil)
