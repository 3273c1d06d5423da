package dailylog_test

import (
	"context"
	"testing"

	appdailylog "github.com/opstracker/backend/internal/application/dailylog"
	"github.com/opstracker/backend/internal/domain/shared"
	"github.com/opstracker/backend/internal/infrastructure/persistence"
	"github.com/opstracker/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}

func newService(t *testing.T) *appdailylog.Service {
	t.Helper()
	repo := persistence.NewGormDailyLogRepository(testutil.NewSQLiteDB(t))
	return appdailylog.NewService(repo, zap.NewNop())
}

func TestService_PaidJobsAccumulateRevenue(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := testutil.ExternalUserID()

	log, err := svc.CreateDailyLog(ctx, userID, appdailylog.CreateDailyLogRequest{Date: "2024-01-15", MainGoal: "Land 1 customer"})
	require.NoError(t, err)

	_, err = svc.AddCompletedJob(ctx, userID, log.ID, appdailylog.CompletedJobRequest{
		Customer: "Smith", Service: "Gutter clean", AmountCharged: decimal.NewFromInt(150), IsPaid: true,
	})
	require.NoError(t, err)
	_, err = svc.AddCompletedJob(ctx, userID, log.ID, appdailylog.CompletedJobRequest{
		Customer: "Jones", AmountCharged: decimal.NewFromInt(80), IsPaid: false,
	})
	require.NoError(t, err)
	_, err = svc.AddCompletedJob(ctx, userID, log.ID, appdailylog.CompletedJobRequest{
		Customer: "Brown", AmountCharged: decimal.NewFromInt(50), IsPaid: true,
	})
	require.NoError(t, err)

	got, err := svc.GetForDate(ctx, userID, "2024-01-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.RevenueToday.Equal(decimal.NewFromInt(200)), "revenue = %s", got.RevenueToday)
	assert.Len(t, got.CompletedJobs, 3)
}

func TestService_CreateDailyLogReturnsExisting(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := testutil.ExternalUserID()

	first, err := svc.CreateDailyLog(ctx, userID, appdailylog.CreateDailyLogRequest{Date: "2024-02-01", MainGoal: "first"})
	require.NoError(t, err)
	second, err := svc.CreateDailyLog(ctx, userID, appdailylog.CreateDailyLogRequest{Date: "2024-02-01", MainGoal: "second"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "first", second.MainGoal)
}

func TestService_GetForDate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := testutil.ExternalUserID()

	t.Run("no caller returns nil", func(t *testing.T) {
		got, err := svc.GetForDate(ctx, "", "2024-01-15")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing log returns nil", func(t *testing.T) {
		got, err := svc.GetForDate(ctx, userID, "2024-01-16")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := svc.GetForDate(ctx, userID, "15/01/2024")
		assertCode(t, err, "INVALID_DATE")
	})

	t.Run("children are attached", func(t *testing.T) {
		log, err := svc.CreateDailyLog(ctx, userID, appdailylog.CreateDailyLogRequest{Date: "2024-01-17"})
		require.NoError(t, err)
		_, err = svc.AddAppointment(ctx, userID, log.ID, appdailylog.AddAppointmentRequest{Time: "09:00", Customer: "Ann", Service: "Quote"})
		require.NoError(t, err)
		_, err = svc.AddOutreach(ctx, userID, log.ID, appdailylog.AddOutreachRequest{Method: "door", Person: "Bob", Response: "Y", FollowUpNeeded: true})
		require.NoError(t, err)

		got, err := svc.GetForDate(ctx, userID, "2024-01-17")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Appointments, 1)
		require.Len(t, got.Outreach, 1)
		assert.Equal(t, "Ann", got.Appointments[0].Customer)
		assert.Equal(t, "Y", got.Outreach[0].Response)
		assert.Empty(t, got.CompletedJobs)
	})
}

func TestService_ListLogsOrderedByDate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := testutil.ExternalUserID()

	for _, d := range []string{"2024-03-03", "2024-03-01", "2024-03-10"} {
		_, err := svc.CreateDailyLog(ctx, userID, appdailylog.CreateDailyLogRequest{Date: d})
		require.NoError(t, err)
	}
	_, err := svc.CreateDailyLog(ctx, testutil.ExternalUserID(), appdailylog.CreateDailyLogRequest{Date: "2024-03-02"})
	require.NoError(t, err)

	logs, err := svc.ListLogs(ctx, userID, "2024-03-01", "2024-03-05")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2024-03-01", logs[0].Date)
	assert.Equal(t, "2024-03-03", logs[1].Date)
}

func TestService_CrossUserAccessIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	owner := testutil.ExternalUserID()
	intruder := testutil.ExternalUserID()

	log, err := svc.CreateDailyLog(ctx, owner, appdailylog.CreateDailyLogRequest{Date: "2024-01-15"})
	require.NoError(t, err)
	job, err := svc.AddCompletedJob(ctx, owner, log.ID, appdailylog.CompletedJobRequest{Customer: "Smith", AmountCharged: decimal.NewFromInt(10)})
	require.NoError(t, err)

	_, err = svc.AddAppointment(ctx, intruder, log.ID, appdailylog.AddAppointmentRequest{Customer: "x"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.UpdateExpenses(ctx, intruder, log.ID, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = svc.DeleteCompletedJob(ctx, intruder, job.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.UpdateExpenses(ctx, "", log.ID, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, shared.ErrUnauthenticated)
}

func TestService_UpdateLogDetails(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := testutil.ExternalUserID()

	log, err := svc.CreateDailyLog(ctx, userID, appdailylog.CreateDailyLogRequest{Date: "2024-01-15", MainGoal: "keep"})
	require.NoError(t, err)

	updated, err := svc.UpdateLogDetails(ctx, userID, log.ID, appdailylog.UpdateLogDetailsRequest{
		Failure:            &appdailylog.FailureRequest{What: "missed calls", Why: "late start", Adjust: "start at 8"},
		TomorrowPriorities: []string{"calls"},
	})
	require.NoError(t, err)
	assert.Equal(t, "keep", updated.MainGoal)
	assert.Equal(t, "missed calls", updated.Failure.What)
	assert.Equal(t, []string{"calls", "", ""}, updated.TomorrowPriorities)

	expenses, err := svc.UpdateExpenses(ctx, userID, log.ID, decimal.RequireFromString("42.50"))
	require.NoError(t, err)
	assert.True(t, expenses.ExpensesToday.Equal(decimal.RequireFromString("42.5")))

	_, err = svc.UpdateExpenses(ctx, userID, log.ID, decimal.NewFromInt(-1))
	assertCode(t, err, "INVALID_AMOUNT")
}

func TestService_UpdateCompletedJobKeepsRevenue(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := testutil.ExternalUserID()

	log, err := svc.CreateDailyLog(ctx, userID, appdailylog.CreateDailyLogRequest{Date: "2024-01-15"})
	require.NoError(t, err)
	job, err := svc.AddCompletedJob(ctx, userID, log.ID, appdailylog.CompletedJobRequest{
		Customer: "Smith", AmountCharged: decimal.NewFromInt(100), IsPaid: true,
	})
	require.NoError(t, err)

	edited, err := svc.UpdateCompletedJob(ctx, userID, job.ID, appdailylog.CompletedJobRequest{
		Customer: "Smith", AmountCharged: decimal.NewFromInt(300), IsPaid: true, ReferralAsked: true,
	})
	require.NoError(t, err)
	assert.True(t, edited.ReferralAsked)

	got, err := svc.GetForDate(ctx, userID, "2024-01-15")
	require.NoError(t, err)
	assert.True(t, got.RevenueToday.Equal(decimal.NewFromInt(100)))
	require.Len(t, got.CompletedJobs, 1)
	assert.True(t, got.CompletedJobs[0].AmountCharged.Equal(decimal.NewFromInt(300)))
}
