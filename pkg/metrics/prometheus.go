// Package metrics provides Prometheus metrics for the planner sync engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the planner service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Sync Metrics - the snapshot pipeline
	snapshotsApplied  prometheus.Counter
	snapshotSize      prometheus.Histogram
	eventsTracked     prometheus.Gauge
	subscriptionFails prometheus.Counter

	// Projection Metrics - derivation per tick
	projectionLatency prometheus.Histogram
	upcomingEvents    prometheus.Gauge
	activeEvents      prometheus.Gauge

	// Mutation Metrics - intents and their outcomes
	createRequests    prometheus.Counter
	deleteRequests    prometheus.Counter
	validationErrors  prometheus.Counter
	remoteWriteErrors prometheus.Counter
	intentQueueSize   prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "planner",
		subsystem:        "sync",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Register metrics on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.snapshotsApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshots_applied_total",
		Help:      "Total number of remote snapshots applied to the cache",
	})

	m.snapshotSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_size_events",
		Help:      "Number of events per applied snapshot",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})

	m.eventsTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_tracked",
		Help:      "Number of events currently cached",
	})

	m.subscriptionFails = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subscription_failures_total",
		Help:      "Total number of snapshot subscription failures",
	})

	m.projectionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projection_latency_milliseconds",
		Help:      "View projection latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.upcomingEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upcoming_events",
		Help:      "Number of projected events still ahead of now",
	})

	m.activeEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_events",
		Help:      "Number of projected events whose target instant is reached",
	})

	m.createRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "create_requests_total",
		Help:      "Total number of create intents accepted",
	})

	m.deleteRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "delete_requests_total",
		Help:      "Total number of delete intents accepted",
	})

	m.validationErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_errors_total",
		Help:      "Total number of drafts rejected by validation",
	})

	m.remoteWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "remote_write_errors_total",
		Help:      "Total number of failed remote create/delete calls",
	})

	m.intentQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "intent_queue_size",
		Help:      "Current number of queued mutation intents",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordSnapshotApplied counts an applied snapshot of the given size.
func RecordSnapshotApplied(size int) {
	globalManager.snapshotsApplied.Inc()
	globalManager.snapshotSize.Observe(float64(size))
}

// UpdateEventsTracked sets the cached event count.
func UpdateEventsTracked(count int) {
	globalManager.eventsTracked.Set(float64(count))
}

// RecordSubscriptionError increments the subscription failure counter.
func RecordSubscriptionError() {
	globalManager.subscriptionFails.Inc()
}

// RecordProjectionLatency records projection latency in milliseconds.
func RecordProjectionLatency(latencyMs float64) {
	globalManager.projectionLatency.Observe(latencyMs)
}

// UpdateUpcomingEvents sets the upcoming event gauge.
func UpdateUpcomingEvents(count int) {
	globalManager.upcomingEvents.Set(float64(count))
}

// UpdateActiveEvents sets the active event gauge.
func UpdateActiveEvents(count int) {
	globalManager.activeEvents.Set(float64(count))
}

// RecordCreateRequest increments the create intent counter.
func RecordCreateRequest() {
	globalManager.createRequests.Inc()
}

// RecordDeleteRequest increments the delete intent counter.
func RecordDeleteRequest() {
	globalManager.deleteRequests.Inc()
}

// RecordValidationError increments the validation error counter.
func RecordValidationError() {
	globalManager.validationErrors.Inc()
}

// RecordRemoteWriteError increments the remote write error counter.
func RecordRemoteWriteError() {
	globalManager.remoteWriteErrors.Inc()
}

// UpdateIntentQueueSize sets the current intent queue size.
func UpdateIntentQueueSize(size int) {
	globalManager.intentQueueSize.Set(float64(size))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
