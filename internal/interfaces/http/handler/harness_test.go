package handler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appaccount "github.com/opstracker/backend/internal/application/account"
	appbilling "github.com/opstracker/backend/internal/application/billing"
	appbusiness "github.com/opstracker/backend/internal/application/business"
	appdailylog "github.com/opstracker/backend/internal/application/dailylog"
	appdashboard "github.com/opstracker/backend/internal/application/dashboard"
	appfinance "github.com/opstracker/backend/internal/application/finance"
	apppipeline "github.com/opstracker/backend/internal/application/pipeline"
	appplaybook "github.com/opstracker/backend/internal/application/playbook"
	appwebhook "github.com/opstracker/backend/internal/application/webhook"
	domainbilling "github.com/opstracker/backend/internal/domain/billing"
	"github.com/opstracker/backend/internal/infrastructure/auth"
	"github.com/opstracker/backend/internal/infrastructure/cache"
	"github.com/opstracker/backend/internal/infrastructure/config"
	"github.com/opstracker/backend/internal/infrastructure/persistence"
	"github.com/opstracker/backend/internal/infrastructure/telemetry"
	"github.com/opstracker/backend/internal/interfaces/http/handler"
	"github.com/opstracker/backend/internal/interfaces/http/middleware"
	"github.com/opstracker/backend/internal/interfaces/http/router"
	"github.com/opstracker/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testClerkSecret  = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"
	testStripeSecret = "whsec_stripe_test_secret"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type server struct {
	engine   *gin.Engine
	jwt      *auth.JWTService
	accounts  *appaccount.Service
	users     *persistence.GormUserRepository
	publisher *testutil.RecordingPublisher
}

type serverOption func(*serverOptions)

type serverOptions struct {
	pinger     handler.Pinger
	webhookCfg appwebhook.Config
}

func withPinger(p handler.Pinger) serverOption {
	return func(o *serverOptions) { o.pinger = p }
}

func withoutWebhookSecrets() serverOption {
	return func(o *serverOptions) { o.webhookCfg = appwebhook.Config{} }
}

// newServer wires the full HTTP stack over an in-memory database
func newServer(t *testing.T, opts ...serverOption) *server {
	t.Helper()
	o := &serverOptions{
		pinger:     stubPinger{},
		webhookCfg: appwebhook.Config{ClerkSecret: testClerkSecret, StripeSecret: testStripeSecret},
	}
	for _, opt := range opts {
		opt(o)
	}

	db := testutil.NewSQLiteDB(t)
	log := zap.NewNop()
	metrics := telemetry.NewMetrics()

	users := persistence.NewGormUserRepository(db)
	infos := persistence.NewGormBusinessInfoRepository(db)
	goals := persistence.NewGormGoalRepository(db)
	tools := persistence.NewGormToolRepository(db)
	logs := persistence.NewGormDailyLogRepository(db)
	entries := persistence.NewGormFinancialEntryRepository(db)
	scripts := persistence.NewGormScriptRepository(db)
	objections := persistence.NewGormObjectionHandlerRepository(db)

	gate := appbilling.NewPlanGate(appbilling.PlanGateConfig{
		Tx:    persistence.NewTxManager(db),
		Users: users,
		Counters: map[domainbilling.Resource]appbilling.RowCounter{
			domainbilling.ResourceFinancialEntries:  entries,
			domainbilling.ResourceScripts:           scripts,
			domainbilling.ResourceObjectionHandlers: objections,
		},
		Limits:   domainbilling.DefaultFreeLimits(),
		Recorder: metrics,
		Logger:   log,
	})
	publisher := testutil.NewRecordingPublisher()
	accounts := appaccount.NewService(users, gate, publisher, log)

	store := cache.NewInMemoryIdempotencyStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	webhookCfg := o.webhookCfg
	webhookCfg.Accounts = accounts
	webhookCfg.Store = store
	webhookCfg.Recorder = metrics
	webhookCfg.Logger = log
	webhooks, err := appwebhook.NewService(webhookCfg)
	require.NoError(t, err)

	jwt := auth.NewJWTService(config.JWTConfig{
		Secret:                "handler-test-secret-at-least-32-bytes",
		Issuer:                "opstracker-test",
		AccessTokenExpiration: time.Hour,
	})

	engine, err := router.NewEngine(router.Dependencies{
		ServiceName:    "opstracker-test",
		HTTP:           config.HTTPConfig{MaxBodySize: 1 << 20},
		Logger:         log,
		Verifier:       jwt,
		Metrics:        metrics,
		WebhookLimiter: middleware.NewRateLimiter(1000, 1000),
		Handlers: router.Handlers{
			System:    handler.NewSystemHandler(o.pinger, "opstracker-test"),
			Account:   handler.NewAccountHandler(accounts),
			Business:  handler.NewBusinessHandler(appbusiness.NewService(infos, goals, tools)),
			DailyLog:  handler.NewDailyLogHandler(appdailylog.NewService(logs, log)),
			Pipeline:  handler.NewPipelineHandler(apppipeline.NewService(persistence.NewGormLeadRepository(db), persistence.NewGormFollowUpRepository(db), persistence.NewGormCustomerRepository(db))),
			Finance:   handler.NewFinanceHandler(appfinance.NewEntryService(entries, gate, log)),
			Dashboard: handler.NewDashboardHandler(appdashboard.NewService(entries, logs, goals)),
			Playbook:  handler.NewPlaybookHandler(appplaybook.NewService(scripts, objections, users, gate)),
			Webhook:   handler.NewWebhookHandler(webhooks),
		},
	})
	require.NoError(t, err)

	return &server{engine: engine, jwt: jwt, accounts: accounts, users: users, publisher: publisher}
}

// signUp creates a seeded user and returns a session token for them
func (s *server) signUp(t *testing.T) (userID, token string) {
	t.Helper()
	first, last := testutil.PersonName()
	userID = testutil.ExternalUserID()
	_, err := s.accounts.CreateUser(context.Background(), appaccount.ProfileInput{
		ExternalID: userID,
		FirstName:  first,
		LastName:   last,
		Emails:     []string{testutil.Email()},
	})
	require.NoError(t, err)
	return userID, s.token(t, userID)
}

func (s *server) token(t *testing.T, userID string) string {
	t.Helper()
	token, _, err := s.jwt.Issue(auth.IssueInput{UserID: userID})
	require.NoError(t, err)
	return token
}

var errDBDown = errors.New("connection refused")
