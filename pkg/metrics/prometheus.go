// Package metrics provides Prometheus metrics for the persona engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Batch pipeline metrics
	batchesProcessed prometheus.Counter
	batchLatency     prometheus.Histogram
	recordsScored    prometheus.Counter
	recordsSkipped   prometheus.Counter
	scoringLatency   prometheus.Histogram
	configErrors     prometheus.Counter

	// Persona distribution of the most recent batch
	personaCount *prometheus.GaugeVec

	// Result store metrics
	storedRecords prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "persona",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.register()
	return m
}

func (m *Manager) register() {
	auto := promauto.With(m.registry)

	m.batchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_processed_total",
		Help:      "Total number of batches run through the pipeline",
	})

	m.batchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_latency_milliseconds",
		Help:      "End-to-end batch processing latency",
		Buckets:   m.histogramBuckets,
	})

	m.recordsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_scored_total",
		Help:      "Total number of records scored and labeled",
	})

	m.recordsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_skipped_total",
		Help:      "Total number of records excluded by validation",
	})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Per-record score calculation latency",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	m.configErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "config_errors_total",
		Help:      "Total number of rejected weight or threshold configurations",
	})

	m.personaCount = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "persona_count",
			Help:      "Record count per persona in the most recent batch",
		},
		[]string{"persona"},
	)

	m.storedRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stored_records",
		Help:      "Number of labeled records held by the result store",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordBatchProcessed increments the batches processed counter.
func RecordBatchProcessed() {
	globalManager.batchesProcessed.Inc()
}

// RecordBatchLatency records end-to-end batch latency in milliseconds.
func RecordBatchLatency(latencyMs float64) {
	globalManager.batchLatency.Observe(latencyMs)
}

// RecordRecordsScored adds n to the scored records counter.
func RecordRecordsScored(n int) {
	globalManager.recordsScored.Add(float64(n))
}

// RecordRecordsSkipped adds n to the skipped records counter.
func RecordRecordsSkipped(n int) {
	globalManager.recordsSkipped.Add(float64(n))
}

// RecordScoringLatency records per-record scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordConfigError increments the rejected configuration counter.
func RecordConfigError() {
	globalManager.configErrors.Inc()
}

// UpdatePersonaCount sets the record count for one persona bucket.
func UpdatePersonaCount(persona string, count int) {
	globalManager.personaCount.WithLabelValues(persona).Set(float64(count))
}

// UpdateStoredRecords sets the number of records in the result store.
func UpdateStoredRecords(count int) {
	globalManager.storedRecords.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
