package dailylog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository persists daily logs and their child rows
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DailyLog, error)

	// FindByDate returns the user's log for a date or shared.ErrNotFound
	FindByDate(ctx context.Context, userID, date string) (*DailyLog, error)

	// FindInRange returns logs with start <= date <= end ordered by date
	FindInRange(ctx context.Context, userID, start, end string) ([]*DailyLog, error)

	// Create inserts a log; a concurrent insert for the same (user, date)
	// returns the row that won instead of failing
	Create(ctx context.Context, log *DailyLog) (*DailyLog, error)
	Save(ctx context.Context, log *DailyLog) error

	FindAppointmentsByLogIDs(ctx context.Context, userID string, logIDs []uuid.UUID) ([]*Appointment, error)
	FindOutreachByLogIDs(ctx context.Context, userID string, logIDs []uuid.UUID) ([]*OutreachEntry, error)
	FindJobsByLogIDs(ctx context.Context, userID string, logIDs []uuid.UUID) ([]*CompletedJob, error)

	SaveAppointment(ctx context.Context, a *Appointment) error
	SaveOutreach(ctx context.Context, o *OutreachEntry) error

	// AddJob inserts the job and, in the same transaction, increments the
	// parent log's revenue by revenueDelta
	AddJob(ctx context.Context, job *CompletedJob, revenueDelta decimal.Decimal) error
	SaveJob(ctx context.Context, job *CompletedJob) error

	FindAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	FindOutreachByID(ctx context.Context, id uuid.UUID) (*OutreachEntry, error)
	FindJobByID(ctx context.Context, id uuid.UUID) (*CompletedJob, error)

	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	DeleteOutreach(ctx context.Context, id uuid.UUID) error
	DeleteJob(ctx context.Context, id uuid.UUID) error
}
