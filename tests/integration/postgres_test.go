//go:build integration

package integration

import (
	"context"
	"testing"

	appaccount "github.com/opstracker/backend/internal/application/account"
	appbilling "github.com/opstracker/backend/internal/application/billing"
	appdailylog "github.com/opstracker/backend/internal/application/dailylog"
	appdeletion "github.com/opstracker/backend/internal/application/deletion"
	appfinance "github.com/opstracker/backend/internal/application/finance"
	appplaybook "github.com/opstracker/backend/internal/application/playbook"
	"github.com/opstracker/backend/internal/domain/account"
	domainbilling "github.com/opstracker/backend/internal/domain/billing"
	"github.com/opstracker/backend/internal/domain/deletion"
	"github.com/opstracker/backend/internal/infrastructure/persistence"
	"github.com/opstracker/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stack struct {
	db        *TestDB
	accounts  *appaccount.Service
	dailyLogs *appdailylog.Service
	entries   *appfinance.EntryService
	playbook  *appplaybook.Service
	jobs      *persistence.GormDeletionJobRepository
	saga      *appdeletion.Orchestrator
}

func newStack(t *testing.T) *stack {
	t.Helper()
	tdb := NewTestDB(t)
	db := tdb.DB
	log := zap.NewNop()

	users := persistence.NewGormUserRepository(db)
	entryRepo := persistence.NewGormFinancialEntryRepository(db)
	scriptRepo := persistence.NewGormScriptRepository(db)
	handlerRepo := persistence.NewGormObjectionHandlerRepository(db)
	gate := appbilling.NewPlanGate(appbilling.PlanGateConfig{
		Tx:    persistence.NewTxManager(db),
		Users: users,
		Counters: map[domainbilling.Resource]appbilling.RowCounter{
			domainbilling.ResourceFinancialEntries:  entryRepo,
			domainbilling.ResourceScripts:           scriptRepo,
			domainbilling.ResourceObjectionHandlers: handlerRepo,
		},
		Limits: domainbilling.DefaultFreeLimits(),
		Logger: log,
	})
	jobs := persistence.NewGormDeletionJobRepository(db)

	return &stack{
		db:        tdb,
		accounts:  appaccount.NewService(users, gate, testutil.NewRecordingPublisher(), log),
		dailyLogs: appdailylog.NewService(persistence.NewGormDailyLogRepository(db), log),
		entries:   appfinance.NewEntryService(entryRepo, gate, log),
		playbook:  appplaybook.NewService(scriptRepo, handlerRepo, users, gate),
		jobs:      jobs,
		saga: appdeletion.NewOrchestrator(appdeletion.Config{
			Jobs:   jobs,
			Purger: persistence.NewGormPurger(db),
			Logger: log,
		}),
	}
}

func (s *stack) signUp(t *testing.T) string {
	t.Helper()
	first, last := testutil.PersonName()
	u, err := s.accounts.CreateUser(context.Background(), appaccount.ProfileInput{
		ExternalID: testutil.ExternalUserID(),
		FirstName:  first,
		LastName:   last,
		Emails:     []string{testutil.Email()},
	})
	require.NoError(t, err)
	return u.ExternalID
}

func TestPostgres_SignUpSeedsChecklists(t *testing.T) {
	s := newStack(t)
	userID := s.signUp(t)

	assert.Equal(t, int64(1), s.db.Count(t, "users", "external_id", userID))
	assert.Equal(t, int64(len(account.GoalChecklist)), s.db.Count(t, "user_goals", "user_id", userID))
	assert.Equal(t, int64(len(account.ToolStack)), s.db.Count(t, "user_tools", "user_id", userID))
	assert.Equal(t, int64(1), s.db.Count(t, "business_info", "user_id", userID))

	// ON CONFLICT DO NOTHING keeps a redelivered sign-up from seeding twice
	_, err := s.accounts.CreateUser(context.Background(), appaccount.ProfileInput{ExternalID: userID})
	require.NoError(t, err)
	assert.Equal(t, int64(len(account.GoalChecklist)), s.db.Count(t, "user_goals", "user_id", userID))
}

func TestPostgres_MonthlyFinancials(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	userID := s.signUp(t)

	add := func(date, typ, amount string) {
		_, err := s.entries.AddEntry(ctx, userID, appfinance.AddEntryRequest{
			Date: date, Type: typ, Amount: decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
	}
	add("2024-02-29", "revenue", "999.00")
	add("2024-03-01", "revenue", "120.50")
	add("2024-03-15", "expense", "20.25")
	add("2024-03-31", "revenue", "79.75")
	add("2024-04-01", "expense", "500.00")

	got, err := s.entries.GetMonthlyFinancials(ctx, userID, "2024-03")
	require.NoError(t, err)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, "2024-03-31", got.Entries[0].Date)
	assert.Equal(t, "2024-03-01", got.Entries[2].Date)
	assert.True(t, decimal.RequireFromString("200.25").Equal(got.Totals.Revenue))
	assert.True(t, decimal.RequireFromString("180.00").Equal(got.Totals.NetProfit))
}

func TestPostgres_DeletionPurgesEveryTable(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)
	victim := s.signUp(t)
	bystander := s.signUp(t)

	for _, userID := range []string{victim, bystander} {
		log, err := s.dailyLogs.CreateDailyLog(ctx, userID, appdailylog.CreateDailyLogRequest{Date: "2024-03-04", MainGoal: "Book two jobs"})
		require.NoError(t, err)
		_, err = s.dailyLogs.AddCompletedJob(ctx, userID, log.ID, appdailylog.CompletedJobRequest{
			Customer: testutil.Company(), AmountCharged: decimal.NewFromInt(150), IsPaid: true,
		})
		require.NoError(t, err)
		_, err = s.playbook.AddScript(ctx, userID, appplaybook.ScriptRequest{Title: "Door knock", Content: testutil.Sentence()})
		require.NoError(t, err)
		_, err = s.entries.AddEntry(ctx, userID, appfinance.AddEntryRequest{Date: "2024-03-04", Type: "revenue", Amount: decimal.NewFromInt(150)})
		require.NoError(t, err)
	}

	job, err := s.saga.Start(ctx, victim)
	require.NoError(t, err)
	s.saga.Wait()

	stored, err := s.jobs.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, deletion.JobStatusCompleted, stored.Status)
	require.Len(t, stored.Branches, len(deletion.OwnedTables()))
	for _, b := range stored.Branches {
		assert.Equal(t, deletion.BranchStatusSucceeded, b.Status, string(b.Table))
	}

	assert.Zero(t, s.db.Count(t, "users", "external_id", victim))
	for _, table := range []string{"user_goals", "user_tools", "business_info", "daily_logs", "completed_jobs", "scripts", "financial_entries"} {
		assert.Zero(t, s.db.Count(t, table, "user_id", victim), table)
		assert.NotZero(t, s.db.Count(t, table, "user_id", bystander), table)
	}
}
