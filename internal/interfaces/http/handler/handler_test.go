package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	appaccount "github.com/opstracker/backend/internal/application/account"
	appbusiness "github.com/opstracker/backend/internal/application/business"
	appdailylog "github.com/opstracker/backend/internal/application/dailylog"
	appdashboard "github.com/opstracker/backend/internal/application/dashboard"
	appfinance "github.com/opstracker/backend/internal/application/finance"
	appplaybook "github.com/opstracker/backend/internal/application/playbook"
	"github.com/opstracker/backend/internal/domain/account"
	domainbilling "github.com/opstracker/backend/internal/domain/billing"
	"github.com/opstracker/backend/internal/interfaces/http/dto"
	"github.com/opstracker/backend/internal/interfaces/http/handler"
	"github.com/opstracker/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Run("database reachable", func(t *testing.T) {
		s := newServer(t)
		w := testutil.DoJSON(t, s.engine, http.MethodGet, "/health", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		var body handler.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "ok", body.Status)
		assert.Equal(t, "ok", body.Database)
		assert.Equal(t, "opstracker-test", body.Name)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("database unreachable", func(t *testing.T) {
		s := newServer(t, withPinger(stubPinger{err: errDBDown}))
		w := testutil.DoJSON(t, s.engine, http.MethodGet, "/health", nil, "")

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body handler.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "unreachable", body.Database)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t)
	testutil.DoJSON(t, s.engine, http.MethodGet, "/health", nil, "")

	w := testutil.DoJSON(t, s.engine, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestAPI_RequiresSession(t *testing.T) {
	s := newServer(t)
	paths := []string{"/api/v1/playbook", "/api/v1/business-info", "/api/v1/me/subscription", "/api/v1/pipeline"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := testutil.DoJSON(t, s.engine, http.MethodGet, path, nil, "")
			testutil.AssertErrorCode(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthenticated)
		})
	}

	w := testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/playbook", nil, "not-a-jwt")
	testutil.AssertErrorCode(t, w, http.StatusUnauthorized, dto.ErrCodeInvalidToken)
}

func TestBusiness_SeededChecklists(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t)

	w := testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/goals", nil, token)
	goals := testutil.DecodeData[[]appbusiness.GoalResponse](t, w)
	require.Len(t, goals, len(account.GoalChecklist))
	assert.Equal(t, account.GoalChecklist[0], goals[0].Title)
	assert.False(t, goals[0].IsAchieved)

	w = testutil.DoJSON(t, s.engine, http.MethodPatch,
		fmt.Sprintf("/api/v1/goals/%s/toggle", goals[0].ID), map[string]any{"is_achieved": true}, token)
	toggled := testutil.DecodeData[appbusiness.GoalResponse](t, w)
	assert.True(t, toggled.IsAchieved)
	assert.NotNil(t, toggled.AchievedAt)

	w = testutil.DoJSON(t, s.engine, http.MethodPatch,
		fmt.Sprintf("/api/v1/goals/%s/toggle", goals[0].ID), map[string]any{}, token)
	testutil.AssertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestBusiness_UpdateInfo(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t)

	w := testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/business-info", nil, token)
	info := testutil.DecodeData[appbusiness.BusinessInfoResponse](t, w)
	assert.Equal(t, account.DefaultBusinessName, info.BusinessName)

	name := testutil.Company()
	w = testutil.DoJSON(t, s.engine, http.MethodPut, "/api/v1/business-info", map[string]any{
		"business_name":         name,
		"dba_registration_date": "2024-02-01",
	}, token)
	info = testutil.DecodeData[appbusiness.BusinessInfoResponse](t, w)
	assert.Equal(t, name, info.BusinessName)
	assert.Equal(t, "2024-02-01", info.DBARegistrationDate)
}

func TestValidation_ReportsFieldDetails(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t)

	w := testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/financials", map[string]any{
		"date": "03/01/2024",
		"type": "refund",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)

	fields := map[string]string{}
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "Must be a YYYY-MM-DD date", fields["date"])
	assert.Equal(t, "Must be one of: revenue expense", fields["type"])
}

func TestValidation_MalformedBody(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t)

	w := testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/scripts", "just a string", token)
	testutil.AssertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestPlaybook_OwnershipAndPlanLimit(t *testing.T) {
	s := newServer(t)
	_, alice := s.signUp(t)
	_, bob := s.signUp(t)

	var scripts []appplaybook.ScriptResponse
	for i := 1; i <= 3; i++ {
		w := testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/scripts",
			map[string]any{"title": fmt.Sprintf("Script %d", i), "content": testutil.Sentence()}, alice)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		scripts = append(scripts, testutil.DecodeData[appplaybook.ScriptResponse](t, w))
	}

	w := testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/scripts", map[string]any{"title": "Script 4"}, alice)
	testutil.AssertErrorCode(t, w, http.StatusPaymentRequired, dto.ErrCodePlanLimitExceeded)
	assert.Contains(t, w.Body.String(), "Upgrade to Pro")

	path := "/api/v1/scripts/" + scripts[0].ID.String()
	w = testutil.DoJSON(t, s.engine, http.MethodPut, path, map[string]any{"title": "Stolen"}, bob)
	testutil.AssertErrorCode(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	w = testutil.DoJSON(t, s.engine, http.MethodDelete, path, nil, bob)
	testutil.AssertErrorCode(t, w, http.StatusNotFound, dto.ErrCodeNotFound)

	w = testutil.DoJSON(t, s.engine, http.MethodDelete, "/api/v1/scripts/not-a-uuid", nil, alice)
	testutil.AssertErrorCode(t, w, http.StatusNotFound, dto.ErrCodeNotFound)

	w = testutil.DoJSON(t, s.engine, http.MethodDelete, path, nil, alice)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/playbook", nil, alice)
	book := testutil.DecodeData[appplaybook.PlaybookResponse](t, w)
	assert.Len(t, book.Scripts, 2)
	assert.Equal(t, "free", book.Plan)
	assert.Equal(t, int64(3), book.Limits.Scripts)

	w = testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/playbook", nil, bob)
	assert.Empty(t, testutil.DecodeData[appplaybook.PlaybookResponse](t, w).Scripts)
}

func TestDailyLog_CreateAndFetchByDate(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t)
	date := testutil.Day(3, 5)

	w := testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/daily-logs",
		map[string]any{"date": date, "main_goal": "Close two jobs"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := testutil.DecodeData[appdailylog.DailyLogResponse](t, w)

	// Creating a second log for the same date returns the first one
	w = testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/daily-logs", map[string]any{"date": date}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, created.ID, testutil.DecodeData[appdailylog.DailyLogResponse](t, w).ID)

	w = testutil.DoJSON(t, s.engine, http.MethodPost,
		fmt.Sprintf("/api/v1/daily-logs/%s/appointments", created.ID),
		map[string]any{"time": "9:00 AM", "customer": "Dana", "service": "Lawn"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/daily-logs/"+date, nil, token)
	detail := testutil.DecodeData[appdailylog.DailyLogDetailResponse](t, w)
	assert.Equal(t, created.ID, detail.ID)
	assert.Equal(t, "Close two jobs", detail.MainGoal)
	require.Len(t, detail.Appointments, 1)
	assert.Equal(t, "Dana", detail.Appointments[0].Customer)

	w = testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/daily-logs/"+testutil.Day(3, 6), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "null", string(testutil.DecodeEnvelope(t, w).Data))
}

func TestFinance_MonthAndExport(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t)

	for _, e := range []map[string]any{
		{"date": testutil.Day(3, 2), "type": "revenue", "amount": "200.00", "category": "Lawn"},
		{"date": testutil.Day(3, 9), "type": "expense", "amount": "50.00", "category": "Fuel"},
		{"date": testutil.Day(4, 1), "type": "revenue", "amount": "999.00"},
	} {
		w := testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/financials", e, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/financials?month=2024-03", nil, token)
	month := testutil.DecodeData[appfinance.MonthlyFinancialsResponse](t, w)
	require.Len(t, month.Entries, 2)
	assert.Equal(t, testutil.Day(3, 9), month.Entries[0].Date)
	assert.True(t, decimal.NewFromInt(150).Equal(month.Totals.NetProfit), month.Totals.NetProfit.String())
	assert.True(t, decimal.NewFromInt(75).Equal(month.Totals.Margin), month.Totals.Margin.String())

	w = testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/financials/export?month=2024-03", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="financials-2024-03.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", w.Body.String()[:2])

	w = testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/financials/export?month=March", nil, token)
	testutil.AssertErrorCode(t, w, http.StatusBadRequest, "INVALID_MONTH")
}

func TestDashboard_WeekTotals(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t)

	for _, e := range []map[string]any{
		{"date": testutil.Day(3, 4), "type": "revenue", "amount": "300"},
		{"date": testutil.Day(3, 5), "type": "expense", "amount": "75"},
		{"date": testutil.Day(2, 28), "type": "revenue", "amount": "1000"},
	} {
		w := testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/financials", e, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := testutil.DoJSON(t, s.engine, http.MethodGet,
		"/api/v1/dashboard?start="+testutil.Day(3, 4)+"&end="+testutil.Day(3, 10), nil, token)
	dash := testutil.DecodeData[appdashboard.DashboardResponse](t, w)
	assert.True(t, decimal.NewFromInt(300).Equal(dash.WeeklyStats.TotalRevenue))
	assert.True(t, decimal.NewFromInt(225).Equal(dash.WeeklyStats.NetProfit))
	assert.Len(t, dash.Goals, len(account.GoalChecklist))

	w = testutil.DoJSON(t, s.engine, http.MethodGet,
		"/api/v1/dashboard?start="+testutil.Day(3, 10)+"&end="+testutil.Day(3, 4), nil, token)
	testutil.AssertErrorCode(t, w, http.StatusBadRequest, "INVALID_DATE_RANGE")
}

func TestFinance_AmountMustFitMoneyColumn(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t)

	for _, amount := range []string{"10000000000", "0.001", "12.345"} {
		t.Run(amount, func(t *testing.T) {
			w := testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/financials",
				map[string]any{"date": testutil.Day(3, 1), "type": "revenue", "amount": amount}, token)
			testutil.AssertErrorCode(t, w, http.StatusBadRequest, "INVALID_AMOUNT")
		})
	}

	w := testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/financials?month="+testutil.Day(3, 1)[:7], nil, token)
	month := testutil.DecodeData[appfinance.MonthlyFinancialsResponse](t, w)
	assert.Empty(t, month.Entries)
}

func TestAccount_SubscriptionStatus(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t)

	w := testutil.DoJSON(t, s.engine, http.MethodPost, "/api/v1/financials",
		map[string]any{"date": testutil.Day(1, 15), "type": "revenue", "amount": "10"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/me/subscription", nil, token)
	status := testutil.DecodeData[appaccount.SubscriptionStatus](t, w)
	assert.Equal(t, "free", status.Plan)
	assert.Nil(t, status.EndsAt)
	assert.Equal(t, int64(50), status.Limits[domainbilling.ResourceFinancialEntries])
	assert.Equal(t, int64(1), status.Usage[domainbilling.ResourceFinancialEntries])
	assert.Equal(t, int64(0), status.Usage[domainbilling.ResourceScripts])
}

func TestAccount_UnknownCallerIsNotFound(t *testing.T) {
	s := newServer(t)
	token := s.token(t, testutil.ExternalUserID())

	w := testutil.DoJSON(t, s.engine, http.MethodGet, "/api/v1/me/subscription", nil, token)
	testutil.AssertErrorCode(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
}
