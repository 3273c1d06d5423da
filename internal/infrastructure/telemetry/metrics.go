package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "opstracker"

// Metrics holds the application's Prometheus collectors. Each instance owns
// its own registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	webhookEvents       *prometheus.CounterVec
	planGateRejections  *prometheus.CounterVec
	deletionBranches    *prometheus.CounterVec
	deletionJobs        *prometheus.CounterVec
	eventHandlerFailure *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Inbound webhook deliveries by source, event type and outcome.",
		}, []string{"source", "event_type", "outcome"}),
		planGateRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_gate_rejections_total",
			Help:      "Inserts rejected by a free plan ceiling.",
		}, []string{"resource"}),
		deletionBranches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletion_branch_outcomes_total",
			Help:      "Settled account deletion branches by table and status.",
		}, []string{"table", "status"}),
		deletionJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletion_jobs_total",
			Help:      "Settled account deletion jobs by terminal status.",
		}, []string{"status"}),
		eventHandlerFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_handler_failures_total",
			Help:      "Domain event handlers that returned an error or panicked.",
		}, []string{"event_type"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.webhookEvents,
		m.planGateRejections,
		m.deletionBranches,
		m.deletionJobs,
		m.eventHandlerFailure,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, route, status string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// WebhookEvent counts a webhook delivery
func (m *Metrics) WebhookEvent(source, eventType, outcome string) {
	m.webhookEvents.WithLabelValues(source, eventType, outcome).Inc()
}

// PlanGateRejected counts an insert blocked by a plan ceiling
func (m *Metrics) PlanGateRejected(resource string) {
	m.planGateRejections.WithLabelValues(resource).Inc()
}

// DeletionBranchSettled counts a branch that succeeded or exhausted its retries
func (m *Metrics) DeletionBranchSettled(table, status string) {
	m.deletionBranches.WithLabelValues(table, status).Inc()
}

// DeletionJobSettled counts a job reaching a terminal status
func (m *Metrics) DeletionJobSettled(status string) {
	m.deletionJobs.WithLabelValues(status).Inc()
}

// EventHandlerFailed counts a failed domain event handler
func (m *Metrics) EventHandlerFailed(eventType string) {
	m.eventHandlerFailure.WithLabelValues(eventType).Inc()
}
