package account

import (
	"github.com/google/uuid"
	"github.com/opstracker/backend/internal/domain/shared"
)

// Event types
const (
	EventTypeUserCreated = "account.user_created"
	EventTypeUserDeleted = "account.user_deleted"
)

const aggregateTypeUser = "User"

// UserCreatedEvent is raised when a user record is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	ExternalID string `json:"external_id"`
}

// NewUserCreatedEvent creates a UserCreatedEvent
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, aggregateTypeUser, u.ID),
		ExternalID:      u.ExternalID,
	}
}

// UserDeletedEvent is raised when the identity provider deletes an account.
// The local user row may already be gone, so AggregateID can be uuid.Nil.
type UserDeletedEvent struct {
	shared.BaseDomainEvent
	ExternalID string `json:"external_id"`
}

// NewUserDeletedEvent creates a UserDeletedEvent
func NewUserDeletedEvent(userID uuid.UUID, externalID string) *UserDeletedEvent {
	return &UserDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeleted, aggregateTypeUser, userID),
		ExternalID:      externalID,
	}
}
