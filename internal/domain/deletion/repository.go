package deletion

import (
	"context"

	"github.com/google/uuid"
)

// JobRepository persists deletion jobs and their branches
type JobRepository interface {
	// Create inserts the job and all of its branches
	Create(ctx context.Context, job *Job) error

	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)

	// FindRunningByUser returns the running job of a user or shared.ErrNotFound
	FindRunningByUser(ctx context.Context, externalUserID string) (*Job, error)

	// FindRunning returns every job that has not settled
	FindRunning(ctx context.Context) ([]*Job, error)

	// SaveBranch persists a branch's progress
	SaveBranch(ctx context.Context, branch *Branch) error

	// SaveStatus persists the job's status fields
	SaveStatus(ctx context.Context, job *Job) error
}

// Purger deletes every row one user owns in one table
type Purger interface {
	Purge(ctx context.Context, table Table, externalUserID string) (int64, error)
}
