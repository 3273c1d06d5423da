package business

import (
	"context"

	"github.com/google/uuid"
)

// BusinessInfoRepository persists business profiles
type BusinessInfoRepository interface {
	// FindByUser returns the caller's profile or shared.ErrNotFound
	FindByUser(ctx context.Context, userID string) (*BusinessInfo, error)
	Save(ctx context.Context, info *BusinessInfo) error
}

// GoalRepository persists checklist goals
type GoalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Goal, error)
	FindByUser(ctx context.Context, userID string) ([]*Goal, error)
	Save(ctx context.Context, goal *Goal) error
}

// ToolRepository persists checklist tools
type ToolRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tool, error)
	FindByUser(ctx context.Context, userID string) ([]*Tool, error)
	Save(ctx context.Context, tool *Tool) error
}
