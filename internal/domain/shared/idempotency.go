package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed delivery ids (webhook message ids)
// so redelivered events are acknowledged without being applied twice.
type IdempotencyStore interface {
	// MarkProcessed marks an id as processed with a TTL.
	// Returns true if the id was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error)

	// Forget removes an id so a failed delivery can be retried by the sender
	Forget(ctx context.Context, id string) error

	// Close closes the store and releases resources
	Close() error
}
