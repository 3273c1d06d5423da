package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/opstracker/backend/internal/domain/account"
	"github.com/opstracker/backend/internal/domain/deletion"
	"github.com/opstracker/backend/internal/domain/pipeline"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/opstracker/backend/internal/infrastructure/persistence"
	"github.com/opstracker/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDeletionJobRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewGormDeletionJobRepository(testutil.NewSQLiteDB(t))

	job := deletion.NewJob(testutil.ExternalUserID())
	require.NoError(t, repo.Create(ctx, job))

	running, err := repo.FindRunningByUser(ctx, job.ExternalUserID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, running.ID)
	assert.Len(t, running.Branches, len(deletion.OwnedTables()))

	b := running.Branches[0]
	b.RecordAttempt()
	b.RecordFailure(errors.New("connection reset"))
	require.NoError(t, repo.SaveBranch(ctx, b))

	reloaded, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Branches[0].Attempts)
	assert.Equal(t, "connection reset", reloaded.Branches[0].LastError)

	for _, br := range reloaded.Branches {
		br.Succeed(0)
		require.NoError(t, repo.SaveBranch(ctx, br))
	}
	require.True(t, reloaded.Settle())
	require.NoError(t, repo.SaveStatus(ctx, reloaded))

	_, err = repo.FindRunningByUser(ctx, job.ExternalUserID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	all, err := repo.FindRunning(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	done, err := repo.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, deletion.JobStatusCompleted, done.Status)
	assert.NotNil(t, done.FinishedAt)
}

func TestGormDeletionJobRepository_OneRunningJobPerUser(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewGormDeletionJobRepository(testutil.NewSQLiteDB(t))
	userID := testutil.ExternalUserID()

	first := deletion.NewJob(userID)
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, deletion.NewJob(userID))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	require.NoError(t, repo.Create(ctx, deletion.NewJob(testutil.ExternalUserID())), "other users are unaffected")

	for _, b := range first.Branches {
		b.Succeed(0)
		require.NoError(t, repo.SaveBranch(ctx, b))
	}
	require.True(t, first.Settle())
	require.NoError(t, repo.SaveStatus(ctx, first))

	// a settled job no longer blocks a new one
	second := deletion.NewJob(userID)
	require.NoError(t, repo.Create(ctx, second))
	running, err := repo.FindRunningByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, running.ID)
}

func TestGormPurger_Purge(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	users := persistence.NewGormUserRepository(db)
	customers := persistence.NewGormCustomerRepository(db)
	purger := persistence.NewGormPurger(db)

	victim := newUser(t)
	bystander := newUser(t)
	require.NoError(t, users.CreateWithSeed(ctx, victim, account.NewSeed(victim)))
	require.NoError(t, users.CreateWithSeed(ctx, bystander, account.NewSeed(bystander)))

	c, err := pipeline.NewCustomer(victim.ExternalID, "Ann", "", "2024-01-01")
	require.NoError(t, err)
	require.NoError(t, customers.Save(ctx, c))

	for _, table := range deletion.OwnedTables() {
		_, err := purger.Purge(ctx, table, victim.ExternalID)
		require.NoError(t, err, "table %s", table)
	}

	_, err = users.FindByExternalID(ctx, victim.ExternalID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	left, err := customers.FindByUser(ctx, victim.ExternalID)
	require.NoError(t, err)
	assert.Empty(t, left)

	goals, err := persistence.NewGormGoalRepository(db).FindByUser(ctx, victim.ExternalID)
	require.NoError(t, err)
	assert.Empty(t, goals)

	kept, err := persistence.NewGormGoalRepository(db).FindByUser(ctx, bystander.ExternalID)
	require.NoError(t, err)
	assert.Len(t, kept, len(account.GoalChecklist))

	again, err := purger.Purge(ctx, deletion.TableGoals, victim.ExternalID)
	require.NoError(t, err)
	assert.Zero(t, again)

	_, err = purger.Purge(ctx, deletion.Table("nope"), victim.ExternalID)
	assert.Error(t, err)
}
