package playbook

import (
	"context"

	"github.com/google/uuid"
)

// ScriptRepository persists scripts
type ScriptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Script, error)
	FindByUser(ctx context.Context, userID string) ([]*Script, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Save(ctx context.Context, script *Script) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ObjectionHandlerRepository persists objection handlers
type ObjectionHandlerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ObjectionHandler, error)
	FindByUser(ctx context.Context, userID string) ([]*ObjectionHandler, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Save(ctx context.Context, handler *ObjectionHandler) error
	Delete(ctx context.Context, id uuid.UUID) error
}
