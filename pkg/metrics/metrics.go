// Package metrics provides Prometheus metrics for the pool bot service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pool bot.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// Core Business Metrics - What really matters for a pool
	weeksSynced        prometheus.Counter
	membersScored      prometheus.Counter
	scoringLatency     prometheus.Histogram
	leaderboardUpdates prometheus.Counter
	scoreDiscrepancies prometheus.Counter

	// Surface Metrics
	webhookEvents prometheus.CounterVec
	httpRequests  prometheus.CounterVec

	// Business Quality Metrics
	pipelineErrors prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(customRegistry)
}

// NewManager creates a new metrics manager registered on the given registry.
func NewManager(registry prometheus.Registerer) *Manager {
	m := &Manager{
		namespace: "poolbot",
		registry:  registry,
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.weeksSynced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "weeks_synced_total",
		Help:      "Total number of week syncs pulled from the results provider",
	})

	m.membersScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "members_scored_total",
		Help:      "Total number of member weekly scores calculated",
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "pipeline_latency_milliseconds",
		Help:      "Histogram of full weekly pipeline latency in milliseconds",
		Buckets:   prometheus.DefBuckets,
	})

	m.leaderboardUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "leaderboard_updates_total",
		Help:      "Total number of leaderboard regenerations",
	})

	m.scoreDiscrepancies = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "score_discrepancies_total",
		Help:      "Total number of games whose winner field disagreed with the scores",
	})

	m.webhookEvents = *auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "webhook_events_total",
			Help:      "Total number of provider webhook events received by outcome",
		},
		[]string{"outcome"},
	)

	m.httpRequests = *auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.pipelineErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "pipeline_errors_total",
		Help:      "Total number of weekly pipeline failures",
	})
}

// RecordWeekSynced increments the week sync counter.
func RecordWeekSynced() {
	globalManager.weeksSynced.Inc()
}

// RecordMembersScored adds the number of members scored in one run.
func RecordMembersScored(count int) {
	globalManager.membersScored.Add(float64(count))
}

// RecordPipelineLatency records one pipeline run's latency in milliseconds.
func RecordPipelineLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordLeaderboardUpdate increments the leaderboard update counter.
func RecordLeaderboardUpdate() {
	globalManager.leaderboardUpdates.Inc()
}

// RecordScoreDiscrepancies adds the number of flagged games in one run.
func RecordScoreDiscrepancies(count int) {
	globalManager.scoreDiscrepancies.Add(float64(count))
}

// RecordWebhookEvent increments the webhook counter for one outcome
// ("accepted", "ignored" or "rejected").
func RecordWebhookEvent(outcome string) {
	globalManager.webhookEvents.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordPipelineError increments the pipeline error counter.
func RecordPipelineError() {
	globalManager.pipelineErrors.Inc()
}

// GetRegistry returns the custom registry for exposing via an HTTP handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
