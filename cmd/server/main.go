package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	accountapp "github.com/opstracker/backend/internal/application/account"
	billingapp "github.com/opstracker/backend/internal/application/billing"
	businessapp "github.com/opstracker/backend/internal/application/business"
	dailylogapp "github.com/opstracker/backend/internal/application/dailylog"
	dashboardapp "github.com/opstracker/backend/internal/application/dashboard"
	"github.com/opstracker/backend/internal/application/deletion"
	financeapp "github.com/opstracker/backend/internal/application/finance"
	pipelineapp "github.com/opstracker/backend/internal/application/pipeline"
	playbookapp "github.com/opstracker/backend/internal/application/playbook"
	webhookapp "github.com/opstracker/backend/internal/application/webhook"
	"github.com/opstracker/backend/internal/domain/billing"
	"github.com/opstracker/backend/internal/infrastructure/auth"
	"github.com/opstracker/backend/internal/infrastructure/cache"
	"github.com/opstracker/backend/internal/infrastructure/config"
	"github.com/opstracker/backend/internal/infrastructure/event"
	"github.com/opstracker/backend/internal/infrastructure/logger"
	"github.com/opstracker/backend/internal/infrastructure/persistence"
	"github.com/opstracker/backend/internal/infrastructure/telemetry"
	"github.com/opstracker/backend/internal/interfaces/http/handler"
	"github.com/opstracker/backend/internal/interfaces/http/middleware"
	"github.com/opstracker/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Ops Tracker API
//	@version		1.0
//	@description	Daily operations tracker for small service businesses

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Identity provider session token. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Ops Tracker backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing is a no-op provider unless enabled
	tracer, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	// Mirror log records to the collector when enabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if level, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		log = logProvider.Attach(log, level)
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracer.EnableSpanProfiles()
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled,
		LogFullSQL: !cfg.IsProduction(),
		DBName:     cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Webhook deduplication falls back to memory outside production
	idempotency, err := cache.NewIdempotencyStore(ctx, cfg.Redis, !cfg.IsProduction(), log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotency.Close()
	}()

	metrics := telemetry.NewMetrics()

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.OnHandlerFailure(metrics.EventHandlerFailed)

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	businessInfoRepo := persistence.NewGormBusinessInfoRepository(db.DB)
	goalRepo := persistence.NewGormGoalRepository(db.DB)
	toolRepo := persistence.NewGormToolRepository(db.DB)
	dailyLogRepo := persistence.NewGormDailyLogRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	followUpRepo := persistence.NewGormFollowUpRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	entryRepo := persistence.NewGormFinancialEntryRepository(db.DB)
	scriptRepo := persistence.NewGormScriptRepository(db.DB)
	objectionRepo := persistence.NewGormObjectionHandlerRepository(db.DB)
	deletionJobRepo := persistence.NewGormDeletionJobRepository(db.DB)

	// Plan ceilings
	planGate := billingapp.NewPlanGate(billingapp.PlanGateConfig{
		Tx:    persistence.NewTxManager(db.DB),
		Users: userRepo,
		Counters: map[billing.Resource]billingapp.RowCounter{
			billing.ResourceFinancialEntries:  entryRepo,
			billing.ResourceScripts:           scriptRepo,
			billing.ResourceObjectionHandlers: objectionRepo,
		},
		Limits: billing.Limits{
			FinancialEntries:  int64(cfg.Plan.FreeFinancialEntries),
			Scripts:           int64(cfg.Plan.FreeScripts),
			ObjectionHandlers: int64(cfg.Plan.FreeObjectionHandlers),
		},
		Recorder: metrics,
		Logger:   log,
	})

	// Initialize application services
	accountService := accountapp.NewService(userRepo, planGate, eventBus, log)
	businessService := businessapp.NewService(businessInfoRepo, goalRepo, toolRepo)
	dailyLogService := dailylogapp.NewService(dailyLogRepo, log)
	pipelineService := pipelineapp.NewService(leadRepo, followUpRepo, customerRepo)
	entryService := financeapp.NewEntryService(entryRepo, planGate, log)
	dashboardService := dashboardapp.NewService(entryRepo, dailyLogRepo, goalRepo)
	playbookService := playbookapp.NewService(scriptRepo, objectionRepo, userRepo, planGate)

	// Account deletion saga
	orchestrator := deletion.NewOrchestrator(deletion.Config{
		Jobs:           deletionJobRepo,
		Purger:         persistence.NewGormPurger(db.DB),
		Recorder:       metrics,
		Logger:         log,
		MaxAttempts:    cfg.Deletion.MaxAttempts,
		InitialBackoff: cfg.Deletion.InitialBackoff,
		MaxBackoff:     cfg.Deletion.MaxBackoff,
		AttemptTimeout: cfg.Deletion.AttemptTimeout,
	})
	eventBus.Subscribe(deletion.NewUserDeletedHandler(orchestrator, log))

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	if cfg.Deletion.ResumeOnStart {
		resumed, err := orchestrator.Resume(ctx)
		if err != nil {
			log.Error("Failed to resume deletion jobs", zap.Error(err))
		} else if resumed > 0 {
			log.Info("Resumed unfinished deletion jobs", zap.Int("count", resumed))
		}
	}

	webhookService, err := webhookapp.NewService(webhookapp.Config{
		ClerkSecret:        cfg.Webhook.ClerkSecret,
		ClerkBillingSecret: cfg.Webhook.ClerkBillingSecret,
		StripeSecret:       cfg.Webhook.StripeSecret,
		IdempotencyTTL:     cfg.Webhook.IdempotencyTTL,
		Accounts:           accountService,
		Store:              idempotency,
		Recorder:           metrics,
		Logger:             log,
	})
	if err != nil {
		log.Fatal("Failed to initialize webhook service", zap.Error(err))
	}

	webhookLimiter := middleware.NewRateLimiter(cfg.HTTP.WebhookRateLimit, cfg.HTTP.WebhookRateBurst)
	go webhookLimiter.Run(ctx.Done())

	engine, err := router.NewEngine(router.Dependencies{
		ServiceName:    cfg.Telemetry.ServiceName,
		HTTP:           cfg.HTTP,
		Logger:         log,
		Verifier:       auth.NewJWTService(cfg.JWT),
		Metrics:        metrics,
		WebhookLimiter: webhookLimiter,
		Handlers: router.Handlers{
			System:    handler.NewSystemHandler(db, cfg.App.Name),
			Account:   handler.NewAccountHandler(accountService),
			Business:  handler.NewBusinessHandler(businessService),
			DailyLog:  handler.NewDailyLogHandler(dailyLogService),
			Pipeline:  handler.NewPipelineHandler(pipelineService),
			Finance:   handler.NewFinanceHandler(entryService),
			Dashboard: handler.NewDashboardHandler(dashboardService),
			Playbook:  handler.NewPlaybookHandler(playbookService),
			Webhook:   handler.NewWebhookHandler(webhookService),
		},
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	stop()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	// Jobs still running are left pending and picked up by Resume
	if err := orchestrator.Shutdown(shutdownCtx); err != nil {
		log.Warn("Deletion jobs still running at shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Error stopping event bus", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error flushing traces", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error flushing logs", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
