// Package metrics provides Prometheus metrics for the networth valuation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the networth service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Valuation metrics
	valuationsTotal   *prometheus.CounterVec
	valuationDuration prometheus.Histogram
	handlerApplied    *prometheus.CounterVec
	handlerRecovered  *prometheus.CounterVec

	// Price catalog metrics
	catalogSize            prometheus.Gauge
	catalogGeneration      prometheus.Gauge
	catalogRefreshDuration prometheus.Histogram
	catalogRefreshLastUnix prometheus.Gauge
	catalogRefreshErrors   *prometheus.CounterVec

	// Batch and worker metrics
	batchSize         prometheus.Histogram
	batchDuration     prometheus.Histogram
	workerCount       prometheus.Gauge
	workerActiveCount prometheus.Gauge

	// Job queue metrics
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	queueRejected *prometheus.CounterVec

	// Result cache metrics
	resultCacheHits   prometheus.Counter
	resultCacheMisses prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
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
		namespace:        "networth",
		subsystem:        "valuation",
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
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.valuationsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "valuations_total",
		Help:      "Total number of item valuations by mode (single, batch, cli)",
	}, []string{"mode"})

	m.valuationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "valuation_duration_milliseconds",
		Help:      "Duration of a single item valuation in milliseconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	m.handlerApplied = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "handler_applied_total",
		Help:      "Number of times a modifier handler contributed value",
	}, []string{"handler"})

	m.handlerRecovered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "handler_recovered_total",
		Help:      "Number of handler failures that were rolled back",
	}, []string{"handler"})

	m.catalogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "entries",
		Help:      "Number of priced keys in the published catalog snapshot",
	})

	m.catalogGeneration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "generation",
		Help:      "Generation number of the published catalog snapshot",
	})

	m.catalogRefreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "refresh_duration_milliseconds",
		Help:      "Catalog reload and publish duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.catalogRefreshLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "refresh_last_unix",
		Help:      "Unix timestamp of the last successful catalog publish",
	})

	m.catalogRefreshErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "refresh_errors_total",
		Help:      "Catalog reload failures by source",
	}, []string{"source"})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "batch",
		Name:      "items",
		Help:      "Number of items per batch valuation",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "batch",
		Name:      "duration_milliseconds",
		Help:      "Batch valuation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "batch",
		Name:      "worker_count",
		Help:      "Configured number of batch workers",
	})

	m.workerActiveCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "batch",
		Name:      "worker_active_count",
		Help:      "Number of workers currently valuing an item",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "queue",
		Name:      "size",
		Help:      "Number of valuation jobs waiting for a worker",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "queue",
		Name:      "capacity",
		Help:      "Maximum number of queued valuation jobs",
	})

	m.queueRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "queue",
		Name:      "rejected_total",
		Help:      "Valuation jobs refused by the queue by reason",
	}, []string{"reason"})

	m.resultCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "result_cache",
		Name:      "hits_total",
		Help:      "Valuations served from the result cache",
	})

	m.resultCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "result_cache",
		Name:      "misses_total",
		Help:      "Valuations that missed the result cache",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)
}

// RecordValuation counts one valuation and its duration.
func RecordValuation(mode string, durationMs float64) {
	globalManager.valuationsTotal.WithLabelValues(mode).Inc()
	globalManager.valuationDuration.Observe(durationMs)
}

// RecordHandlerApplied counts a handler that contributed value.
func RecordHandlerApplied(handler string) {
	globalManager.handlerApplied.WithLabelValues(handler).Inc()
}

// RecordHandlerRecovered counts a handler failure that was rolled back.
func RecordHandlerRecovered(handler string) {
	globalManager.handlerRecovered.WithLabelValues(handler).Inc()
}

// Catalog Metrics Functions.

// UpdateCatalog sets the size and generation of the published snapshot.
func UpdateCatalog(entries int, generation uint64) {
	globalManager.catalogSize.Set(float64(entries))
	globalManager.catalogGeneration.Set(float64(generation))
}

// RecordCatalogRefresh records a successful reload and publish.
func RecordCatalogRefresh(durationMs float64, unix int64) {
	globalManager.catalogRefreshDuration.Observe(durationMs)
	globalManager.catalogRefreshLastUnix.Set(float64(unix))
}

// RecordCatalogRefreshError counts a failed reload.
func RecordCatalogRefreshError(source string) {
	globalManager.catalogRefreshErrors.WithLabelValues(source).Inc()
}

// Batch Metrics Functions.

// RecordBatch records the size and duration of a batch valuation.
func RecordBatch(items int, durationMs float64) {
	globalManager.batchSize.Observe(float64(items))
	globalManager.batchDuration.Observe(durationMs)
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// IncWorkerActive marks a worker busy.
func IncWorkerActive() {
	globalManager.workerActiveCount.Inc()
}

// DecWorkerActive marks a worker idle.
func DecWorkerActive() {
	globalManager.workerActiveCount.Dec()
}

// Queue Metrics Functions.

// UpdateQueueSize sets the number of queued jobs.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueRejected counts a job the queue refused.
func RecordQueueRejected(reason string) {
	globalManager.queueRejected.WithLabelValues(reason).Inc()
}

// Result Cache Metrics Functions.

// RecordResultCacheHit counts a cache hit.
func RecordResultCacheHit() {
	globalManager.resultCacheHits.Inc()
}

// RecordResultCacheMiss counts a cache miss.
func RecordResultCacheMiss() {
	globalManager.resultCacheMisses.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
