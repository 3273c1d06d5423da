package router

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/opstracker/backend/internal/infrastructure/auth"
	"github.com/opstracker/backend/internal/infrastructure/config"
	"github.com/opstracker/backend/internal/infrastructure/logger"
	"github.com/opstracker/backend/internal/infrastructure/telemetry"
	"github.com/opstracker/backend/internal/interfaces/http/handler"
	"github.com/opstracker/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups the route handlers
type Handlers struct {
	System    *handler.SystemHandler
	Account   *handler.AccountHandler
	Business  *handler.BusinessHandler
	DailyLog  *handler.DailyLogHandler
	Pipeline  *handler.PipelineHandler
	Finance   *handler.FinanceHandler
	Dashboard *handler.DashboardHandler
	Playbook  *handler.PlaybookHandler
	Webhook   *handler.WebhookHandler
}

// Dependencies are everything NewEngine wires together
type Dependencies struct {
	ServiceName    string
	HTTP           config.HTTPConfig
	Logger         *zap.Logger
	Verifier       auth.TokenVerifier
	Metrics        *telemetry.Metrics
	WebhookLimiter *middleware.RateLimiter
	Handlers       Handlers
}

// NewEngine builds the gin engine with every route mounted
func NewEngine(d Dependencies) (*gin.Engine, error) {
	if d.Verifier == nil || d.Metrics == nil || d.WebhookLimiter == nil {
		return nil, errors.New("router: verifier, metrics and webhook limiter are required")
	}
	if err := middleware.SetupValidator(); err != nil {
		return nil, err
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(d.ServiceName),
		logger.GinMiddleware(log),
		middleware.Metrics(d.Metrics),
		middleware.Secure(),
		middleware.CORS(corsConfig(d.HTTP)),
	)
	if d.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(d.HTTP.MaxBodySize))
	}

	h := d.Handlers
	engine.GET("/health", h.System.Health)
	engine.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	hooks := engine.Group("/webhooks", middleware.RateLimit(d.WebhookLimiter))
	hooks.POST("/clerk", h.Webhook.HandleClerk)
	hooks.POST("/clerk-billing", h.Webhook.HandleClerkBilling)
	hooks.POST("/stripe", h.Webhook.HandleStripe)

	NewRouter(engine, WithGroupMiddleware(
		middleware.JWTAuth(middleware.JWTMiddlewareConfig{Verifier: d.Verifier, Logger: log}),
		middleware.SpanEnricher(),
	)).Register(
		accountRoutes(h.Account),
		businessRoutes(h.Business),
		dailyLogRoutes(h.DailyLog),
		pipelineRoutes(h.Pipeline),
		financeRoutes(h.Finance),
		dashboardRoutes(h.Dashboard),
		playbookRoutes(h.Playbook),
	).Setup()

	return engine, nil
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	c.AllowOrigins = cfg.CORSAllowOrigins
	return c
}

func accountRoutes(h *handler.AccountHandler) *DomainGroup {
	return NewDomainGroup("account", "/me").
		GET("/subscription", h.GetSubscription)
}

func businessRoutes(h *handler.BusinessHandler) *DomainGroup {
	return NewDomainGroup("business", "").
		GET("/business-info", h.GetBusinessInfo).
		PUT("/business-info", h.UpdateBusinessInfo).
		GET("/goals", h.ListGoals).
		PATCH("/goals/:id/toggle", h.ToggleGoal).
		GET("/tools", h.ListTools).
		PATCH("/tools/:id/toggle", h.ToggleTool)
}

func dailyLogRoutes(h *handler.DailyLogHandler) *DomainGroup {
	return NewDomainGroup("dailylog", "").
		POST("/daily-logs", h.CreateDailyLog).
		GET("/daily-logs", h.ListLogs).
		GET("/daily-logs/:id", h.GetForDate).
		PATCH("/daily-logs/:id/details", h.UpdateLogDetails).
		PUT("/daily-logs/:id/expenses", h.UpdateExpenses).
		POST("/daily-logs/:id/appointments", h.AddAppointment).
		POST("/daily-logs/:id/outreach", h.AddOutreach).
		POST("/daily-logs/:id/jobs", h.AddCompletedJob).
		DELETE("/appointments/:id", h.DeleteAppointment).
		DELETE("/outreach/:id", h.DeleteOutreach).
		PUT("/jobs/:id", h.UpdateCompletedJob).
		DELETE("/jobs/:id", h.DeleteCompletedJob)
}

func pipelineRoutes(h *handler.PipelineHandler) *DomainGroup {
	return NewDomainGroup("pipeline", "").
		GET("/pipeline", h.GetPipeline).
		POST("/leads", h.AddLead).
		PUT("/leads/:id", h.UpdateLead).
		DELETE("/leads/:id", h.DeleteLead).
		POST("/follow-ups", h.AddFollowUp).
		PUT("/follow-ups/:id", h.UpdateFollowUp).
		DELETE("/follow-ups/:id", h.DeleteFollowUp).
		POST("/customers", h.AddCustomer).
		PATCH("/customers/:id", h.UpdateCustomer).
		DELETE("/customers/:id", h.DeleteCustomer)
}

func financeRoutes(h *handler.FinanceHandler) *DomainGroup {
	return NewDomainGroup("finance", "/financials").
		GET("", h.GetMonthlyFinancials).
		POST("", h.AddEntry).
		GET("/export", h.ExportMonth).
		DELETE("/:id", h.DeleteEntry)
}

func dashboardRoutes(h *handler.DashboardHandler) *DomainGroup {
	return NewDomainGroup("dashboard", "/dashboard").
		GET("", h.GetDashboard).
		GET("/monthly-growth", h.GetMonthlyGrowth)
}

func playbookRoutes(h *handler.PlaybookHandler) *DomainGroup {
	return NewDomainGroup("playbook", "").
		GET("/playbook", h.GetPlaybook).
		POST("/scripts", h.AddScript).
		PUT("/scripts/:id", h.UpdateScript).
		DELETE("/scripts/:id", h.DeleteScript).
		POST("/objection-handlers", h.AddObjectionHandler).
		PUT("/objection-handlers/:id", h.UpdateObjectionHandler).
		DELETE("/objection-handlers/:id", h.DeleteObjectionHandler)
}
