// Package metrics provides Prometheus metrics for the archetype
// assessment service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric the service exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Assessment lifecycle
	sessionsStarted  prometheus.Counter
	sessionsResumed  prometheus.Counter
	sessionsExpired  prometheus.Counter
	answersRecorded  prometheus.Counter
	skipsRecorded    prometheus.Counter
	questionsServed  prometheus.Counter
	matchLatency     prometheus.Histogram
	resultsComputed  *prometheus.CounterVec
	calibrationFired *prometheus.CounterVec

	// Submission pipeline
	submissionsAccepted  prometheus.Counter
	submissionsDuplicate prometheus.Counter
	submissionsArchived  prometheus.Counter
	archiveLatency       prometheus.Histogram
	workerErrors         prometheus.Counter
	workerCount          prometheus.Gauge
	queueSize            prometheus.Gauge
	queueCapacity        prometheus.Gauge
	queueEnqueues        prometheus.Counter
	queueEnqueueErrors   prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global manager on a custom registry, so default Go collectors don't
// pollute the scrape.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "archetype",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	factory := promauto.With(m.registry)

	m.sessionsStarted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "sessions_started_total",
		Help: "Assessment sessions created.",
	})
	m.sessionsResumed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "sessions_resumed_total",
		Help: "Sessions restored from the resumable store.",
	})
	m.sessionsExpired = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "sessions_expired_total",
		Help: "Stale session records discarded on load.",
	})
	m.answersRecorded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "answers_recorded_total",
		Help: "Answers accepted into sessions.",
	})
	m.skipsRecorded = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "skips_recorded_total",
		Help: "Question skips consumed.",
	})
	m.questionsServed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "questions_served_total",
		Help: "Questions handed to clients.",
	})
	m.matchLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "match_latency_ms",
		Help:    "Time to rank the catalog, in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.resultsComputed = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "results_computed_total",
		Help: "Result computations by decisiveness.",
	}, []string{"decisive"})
	m.calibrationFired = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "calibration_triggered_total",
		Help: "Calibration activations by family.",
	}, []string{"family"})

	m.submissionsAccepted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "submissions_accepted_total",
		Help: "Submissions accepted for archiving.",
	})
	m.submissionsDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "submissions_duplicate_total",
		Help: "Submissions acknowledged as duplicates.",
	})
	m.submissionsArchived = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "submissions_archived_total",
		Help: "Submissions written to the archive.",
	})
	m.archiveLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "archive_latency_ms",
		Help:    "Time to archive a submission, in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.workerErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Archiver worker failures.",
	})
	m.workerCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Running archiver workers.",
	})
	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Buffered submissions.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Submission queue capacity.",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueues_total",
		Help: "Successful submission enqueues.",
	})
	m.queueEnqueueErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total",
		Help: "Submission enqueues rejected by backpressure.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration, in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_bytes",
		Help: "Allocated heap bytes.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutines",
		Help: "Running goroutines.",
	})
}

// Package-level helpers against the global manager.

func RecordSessionStarted() { globalManager.sessionsStarted.Inc() }
func RecordSessionResumed() { globalManager.sessionsResumed.Inc() }
func RecordSessionExpired() { globalManager.sessionsExpired.Inc() }
func RecordAnswerRecorded() { globalManager.answersRecorded.Inc() }
func RecordSkip() { globalManager.skipsRecorded.Inc() }
func RecordQuestionServed() { globalManager.questionsServed.Inc() }

func RecordMatchLatency(ms float64) { globalManager.matchLatency.Observe(ms) }

func RecordResultComputed(decisive bool) {
	label := "false"
	if decisive {
		label = "true"
	}
	globalManager.resultsComputed.WithLabelValues(label).Inc()
}

func RecordCalibrationTriggered(family string) {
	globalManager.calibrationFired.WithLabelValues(family).Inc()
}

func RecordSubmissionAccepted() { globalManager.submissionsAccepted.Inc() }
func RecordSubmissionDuplicate() { globalManager.submissionsDuplicate.Inc() }
func RecordSubmissionArchived() { globalManager.submissionsArchived.Inc() }

func RecordArchiveLatency(ms float64) { globalManager.archiveLatency.Observe(ms) }
func RecordWorkerError() { globalManager.workerErrors.Inc() }

func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }
func UpdateQueueSize(n int) { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }
func RecordQueueEnqueue() { globalManager.queueEnqueues.Inc() }
func RecordQueueEnqueueError() { globalManager.queueEnqueueErrors.Inc() }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

// GetRegistry returns the custom registry served at the health endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
