// Package metrics provides Prometheus metrics for the quiz merge pipeline.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the pipeline metrics.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Resolution
	sessionsProcessed prometheus.Counter
	rowsRead          prometheus.Counter
	rowsDropped       prometheus.Counter
	rowsUnresolved    prometheus.Counter
	reconnectMerges   prometheus.Counter
	sessionLatency    prometheus.Histogram

	// Roster
	rosterIdentities prometheus.Gauge
	rosterCollisions prometheus.Counter

	// Grading
	identitiesGraded prometheus.Gauge
	runDuration      prometheus.Histogram

	// Errors
	errorsByStage *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "quizmerge",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.sessionsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_processed_total",
		Help:      "Total number of sessions resolved",
	})
	m.rowsRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_read_total",
		Help:      "Total number of raw session rows read",
	})
	m.rowsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_dropped_total",
		Help:      "Rows dropped for an empty name, score or correct-answer cell",
	})
	m.rowsUnresolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_unresolved_total",
		Help:      "Rows whose name did not match any roster identity",
	})
	m.reconnectMerges = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconnect_merges_total",
		Help:      "Rows summed into an earlier appearance of the same key",
	})
	m.sessionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_resolve_seconds",
		Help:      "Time spent loading and resolving one session",
		Buckets:   m.histogramBuckets,
	})
	m.rosterIdentities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_identities",
		Help:      "Identities in the loaded roster",
	})
	m.rosterCollisions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_key_collisions_total",
		Help:      "Roster name keys reassigned to a different id",
	})
	m.identitiesGraded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "identities_graded",
		Help:      "Rows in the final grade sheet",
	})
	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "End-to-end pipeline duration",
		Buckets:   m.histogramBuckets,
	})
	m.errorsByStage = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Pipeline errors by stage",
	}, []string{"stage"})
}

// RecordSessionProcessed counts one resolved session.
func RecordSessionProcessed() { globalManager.sessionsProcessed.Inc() }

// RecordRowsRead adds n raw rows.
func RecordRowsRead(n int) { globalManager.rowsRead.Add(float64(n)) }

// RecordRowsDropped adds n dropped rows.
func RecordRowsDropped(n int) { globalManager.rowsDropped.Add(float64(n)) }

// RecordRowsUnresolved adds n unresolved rows.
func RecordRowsUnresolved(n int) { globalManager.rowsUnresolved.Add(float64(n)) }

// RecordReconnectMerges adds n reconnect merges.
func RecordReconnectMerges(n int) { globalManager.reconnectMerges.Add(float64(n)) }

// RecordSessionLatency observes the time to resolve one session.
func RecordSessionLatency(seconds float64) { globalManager.sessionLatency.Observe(seconds) }

// UpdateRosterIdentities sets the roster size.
func UpdateRosterIdentities(count int) { globalManager.rosterIdentities.Set(float64(count)) }

// RecordRosterCollisions adds n roster key collisions.
func RecordRosterCollisions(n int) { globalManager.rosterCollisions.Add(float64(n)) }

// UpdateIdentitiesGraded sets the number of graded rows.
func UpdateIdentitiesGraded(count int) { globalManager.identitiesGraded.Set(float64(count)) }

// RecordRunDuration observes one pipeline run.
func RecordRunDuration(seconds float64) { globalManager.runDuration.Observe(seconds) }

// RecordError counts an error in the named stage.
func RecordError(stage string) { globalManager.errorsByStage.WithLabelValues(stage).Inc() }

// GetRegistry returns the registry backing the global metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the global metrics in the text exposition format, for
// the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteTextfile, err)
	}
	return nil
}
