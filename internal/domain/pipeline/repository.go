package pipeline

import (
	"context"

	"github.com/google/uuid"
)

// LeadRepository persists leads
type LeadRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Lead, error)
	FindByUser(ctx context.Context, userID string) ([]*Lead, error)
	Save(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FollowUpRepository persists follow-ups
type FollowUpRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*FollowUp, error)
	FindByUser(ctx context.Context, userID string) ([]*FollowUp, error)
	Save(ctx context.Context, followUp *FollowUp) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CustomerRepository persists customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByUser(ctx context.Context, userID string) ([]*Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
