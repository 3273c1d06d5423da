package account_test

import (
	"context"
	"testing"
	"time"

	appaccount "github.com/opstracker/backend/internal/application/account"
	appbilling "github.com/opstracker/backend/internal/application/billing"
	"github.com/opstracker/backend/internal/domain/account"
	domainbilling "github.com/opstracker/backend/internal/domain/billing"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/opstracker/backend/internal/infrastructure/persistence"
	"github.com/opstracker/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc       *appaccount.Service
	users     *persistence.GormUserRepository
	goals     *persistence.GormGoalRepository
	publisher *testutil.RecordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	users := persistence.NewGormUserRepository(db)
	gate := appbilling.NewPlanGate(appbilling.PlanGateConfig{
		Users: users,
		Counters: map[domainbilling.Resource]appbilling.RowCounter{
			domainbilling.ResourceFinancialEntries:  persistence.NewGormFinancialEntryRepository(db),
			domainbilling.ResourceScripts:           persistence.NewGormScriptRepository(db),
			domainbilling.ResourceObjectionHandlers: persistence.NewGormObjectionHandlerRepository(db),
		},
		Limits: domainbilling.DefaultFreeLimits(),
	})
	publisher := testutil.NewRecordingPublisher()
	return &fixture{
		svc:       appaccount.NewService(users, gate, publisher, zap.NewNop()),
		users:     users,
		goals:     persistence.NewGormGoalRepository(db),
		publisher: publisher,
	}
}

func profile() appaccount.ProfileInput {
	first, last := testutil.PersonName()
	return appaccount.ProfileInput{
		ExternalID: testutil.ExternalUserID(),
		FirstName:  first,
		LastName:   last,
		Emails:     []string{testutil.Email(), testutil.Email()},
	}
}

func TestService_CreateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := profile()

	got, err := f.svc.CreateUser(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, in.ExternalID, got.ExternalID)
	assert.Equal(t, in.FirstName+" "+in.LastName, got.Name)
	assert.Equal(t, in.Emails[0], got.Email)
	assert.Equal(t, "free", got.Plan)

	goals, err := f.goals.FindByUser(ctx, in.ExternalID)
	require.NoError(t, err)
	assert.Len(t, goals, len(account.GoalChecklist))
	require.Len(t, f.publisher.EventsOfType(account.EventTypeUserCreated), 1)

	t.Run("repeat delivery changes nothing", func(t *testing.T) {
		again := in
		again.FirstName = "Changed"
		got, err := f.svc.CreateUser(ctx, again)
		require.NoError(t, err)
		assert.Equal(t, in.FirstName+" "+in.LastName, got.Name)

		goals, err := f.goals.FindByUser(ctx, in.ExternalID)
		require.NoError(t, err)
		assert.Len(t, goals, len(account.GoalChecklist))
		assert.Len(t, f.publisher.EventsOfType(account.EventTypeUserCreated), 1)
	})

	t.Run("missing email falls back", func(t *testing.T) {
		noEmail := profile()
		noEmail.Emails = nil
		got, err := f.svc.CreateUser(ctx, noEmail)
		require.NoError(t, err)
		assert.Equal(t, account.NoEmail, got.Email)
	})

	t.Run("empty external id", func(t *testing.T) {
		_, err := f.svc.CreateUser(ctx, appaccount.ProfileInput{})
		assert.Error(t, err)
	})
}

func TestService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := profile()
	_, err := f.svc.CreateUser(ctx, in)
	require.NoError(t, err)

	in.FirstName, in.LastName = "Katherine", "Johnson"
	in.Emails = []string{"katherine@example.com"}
	require.NoError(t, f.svc.UpdateUser(ctx, in))

	u, err := f.users.FindByExternalID(ctx, in.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, "Katherine Johnson", u.Name)
	assert.Equal(t, "katherine@example.com", u.Email)

	err = f.svc.UpdateUser(ctx, profile())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := profile()
	created, err := f.svc.CreateUser(ctx, in)
	require.NoError(t, err)
	u, err := f.users.FindByExternalID(ctx, created.ExternalID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteUser(ctx, in.ExternalID))
	events := f.publisher.EventsOfType(account.EventTypeUserDeleted)
	require.Len(t, events, 1)
	deleted := events[0].(*account.UserDeletedEvent)
	assert.Equal(t, in.ExternalID, deleted.ExternalID)
	assert.Equal(t, u.ID, deleted.AggregateID())

	// Unknown users still start a deletion so stray rows get purged
	stranger := testutil.ExternalUserID()
	require.NoError(t, f.svc.DeleteUser(ctx, stranger))
	assert.Len(t, f.publisher.EventsOfType(account.EventTypeUserDeleted), 2)

	assert.Error(t, f.svc.DeleteUser(ctx, " "))
}

func TestService_Subscription(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	in := profile()
	_, err := f.svc.CreateUser(ctx, in)
	require.NoError(t, err)

	endsAt := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.svc.UpdateSubscription(ctx, appaccount.SubscriptionInput{
		ExternalID:     in.ExternalID,
		SubscriptionID: "sub_123",
		PlanName:       "Pro Monthly",
		EndsAt:         endsAt,
	}))

	status, err := f.svc.GetSubscriptionStatus(ctx, in.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, "pro", status.Plan)
	require.NotNil(t, status.EndsAt)
	assert.True(t, endsAt.Equal(*status.EndsAt))
	assert.Equal(t, domainbilling.Unlimited, status.Limits[domainbilling.ResourceScripts])

	require.NoError(t, f.svc.CancelSubscription(ctx, "sub_123"))
	status, err = f.svc.GetSubscriptionStatus(ctx, in.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, "free", status.Plan)
	assert.Nil(t, status.EndsAt)
	assert.Equal(t, int64(3), status.Limits[domainbilling.ResourceScripts])
	assert.Equal(t, int64(0), status.Usage[domainbilling.ResourceScripts])

	t.Run("non pro plan names stay free", func(t *testing.T) {
		require.NoError(t, f.svc.UpdateSubscription(ctx, appaccount.SubscriptionInput{
			ExternalID: in.ExternalID, SubscriptionID: "sub_456", PlanName: "Starter", EndsAt: endsAt,
		}))
		u, err := f.users.FindByExternalID(ctx, in.ExternalID)
		require.NoError(t, err)
		assert.Equal(t, account.PlanFree, u.Plan)
		require.NotNil(t, u.SubscriptionID)
		assert.Equal(t, "sub_456", *u.SubscriptionID)
	})

	t.Run("unknown user and subscription are ignored", func(t *testing.T) {
		assert.NoError(t, f.svc.UpdateSubscription(ctx, appaccount.SubscriptionInput{
			ExternalID: testutil.ExternalUserID(), SubscriptionID: "sub_x", PlanName: "pro", EndsAt: endsAt,
		}))
		assert.NoError(t, f.svc.CancelSubscription(ctx, "sub_missing"))
	})

	t.Run("no caller returns nothing", func(t *testing.T) {
		status, err := f.svc.GetSubscriptionStatus(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, status)
	})
}
