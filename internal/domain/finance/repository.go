package finance

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository persists financial entries
type EntryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindInRange returns entries with start <= date <= end
	FindInRange(ctx context.Context, userID, start, end string) ([]*Entry, error)

	// FindForMonth returns entries with monthStart <= date < nextMonthStart, newest first
	FindForMonth(ctx context.Context, userID, monthStart, nextMonthStart string) ([]*Entry, error)

	// FindAll returns every entry of the user ordered by date ascending
	FindAll(ctx context.Context, userID string) ([]*Entry, error)

	CountByUser(ctx context.Context, userID string) (int64, error)
	Save(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
}
