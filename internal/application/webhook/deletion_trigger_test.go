package webhook_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	appaccount "github.com/opstracker/backend/internal/application/account"
	appdeletion "github.com/opstracker/backend/internal/application/deletion"
	"github.com/opstracker/backend/internal/application/webhook"
	"github.com/opstracker/backend/internal/domain/deletion"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/opstracker/backend/internal/infrastructure/cache"
	"github.com/opstracker/backend/internal/infrastructure/event"
	"github.com/opstracker/backend/internal/infrastructure/persistence"
	"github.com/opstracker/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// unreachableJobs fails job lookups and inserts while down is set
type unreachableJobs struct {
	deletion.JobRepository
	down atomic.Bool
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:5432: connection refused")

func (j *unreachableJobs) Create(ctx context.Context, job *deletion.Job) error {
	if j.down.Load() {
		return errConnRefused
	}
	return j.JobRepository.Create(ctx, job)
}

func (j *unreachableJobs) FindRunningByUser(ctx context.Context, externalUserID string) (*deletion.Job, error) {
	if j.down.Load() {
		return nil, errConnRefused
	}
	return j.JobRepository.FindRunningByUser(ctx, externalUserID)
}

func TestProcessClerk_UserDeletedRetriesWhenDeletionCannotStart(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	users := persistence.NewGormUserRepository(db)
	jobs := &unreachableJobs{JobRepository: persistence.NewGormDeletionJobRepository(db)}
	jobs.down.Store(true)

	orchestrator := appdeletion.NewOrchestrator(appdeletion.Config{
		Jobs:           jobs,
		Purger:         persistence.NewGormPurger(db),
		Logger:         zap.NewNop(),
		MaxAttempts:    2,
		InitialBackoff: time.Millisecond,
	})
	t.Cleanup(func() { _ = orchestrator.Shutdown(context.Background()) })

	bus := event.NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(appdeletion.NewUserDeletedHandler(orchestrator, zap.NewNop()))

	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	rec := &outcomes{}
	cfg := allSecrets()
	cfg.Accounts = appaccount.NewService(users, nil, bus, zap.NewNop())
	cfg.Store = store
	cfg.Recorder = rec
	cfg.Logger = zap.NewNop()
	svc, err := webhook.NewService(cfg)
	require.NoError(t, err)

	userID := testutil.ExternalUserID()
	payload := body(t, "user.deleted", map[string]any{"id": userID, "deleted": true, "object": "user"})

	res, err := svc.ProcessClerk(ctx, payload, signed(t, clerkSecret, "msg_delete", payload))
	require.Error(t, err)
	assert.ErrorIs(t, err, errConnRefused)
	assert.Equal(t, webhook.OutcomeFailed, res.Outcome)

	// the redelivery is not swallowed as a duplicate
	jobs.down.Store(false)
	res, err = svc.ProcessClerk(ctx, payload, signed(t, clerkSecret, "msg_delete", payload))
	require.NoError(t, err)
	assert.Equal(t, webhook.OutcomeProcessed, res.Outcome)

	require.Eventually(t, func() bool {
		_, err := jobs.FindRunningByUser(ctx, userID)
		return errors.Is(err, shared.ErrNotFound)
	}, 5*time.Second, 10*time.Millisecond)

	var count int64
	require.NoError(t, db.Table("deletion_jobs").Where("external_user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, []string{
		"clerk/user.deleted/failed",
		"clerk/user.deleted/processed",
	}, rec.seen)
}
