package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics records outcomes of spreadsheet import runs.
type ImportMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	rows     *prometheus.CounterVec
}

// NewImportMetrics registers the import metrics on the provided registerer.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	if reg == nil {
		return &ImportMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "import_duration_seconds",
		Help:    "Duration of import runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"format"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_runs_total",
		Help: "Import runs by outcome.",
	}, []string{"outcome"})
	rows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_total",
		Help: "Processed rows by result.",
	}, []string{"result"})
	reg.MustRegister(duration, outcomes, rows)
	return &ImportMetrics{
		duration: duration,
		outcomes: outcomes,
		rows:     rows,
	}
}

// ObserveDuration records the duration for a run of the given file format.
func (m *ImportMetrics) ObserveDuration(format string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(format)).Observe(duration.Seconds())
}

// IncRun increments the run counter for the given outcome (success/failure).
func (m *ImportMetrics) IncRun(outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// AddRows adds to the row counter for the given result
// (created/updated/skipped/failed).
func (m *ImportMetrics) AddRows(result string, n int) {
	if m == nil || m.rows == nil || n <= 0 {
		return
	}
	m.rows.WithLabelValues(normalizeLabel(result)).Add(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
