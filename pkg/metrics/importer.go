package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics records spreadsheet import outcomes.
type ImportMetrics struct {
	rowsImported prometheus.Counter
	rowsFailed   prometheus.Counter
	files        *prometheus.CounterVec
	duration     prometheus.Histogram
}

// NewImportMetrics registers the import metrics on the provided registerer.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	if reg == nil {
		return &ImportMetrics{}
	}
	rowsImported := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "excel_import_rows_total",
		Help: "Spreadsheet rows imported successfully.",
	})
	rowsFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "excel_import_row_errors_total",
		Help: "Spreadsheet rows rejected during import.",
	})
	files := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "excel_import_files_total",
		Help: "Spreadsheet files processed by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "excel_import_duration_seconds",
		Help:    "Duration of spreadsheet imports in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(rowsImported, rowsFailed, files, duration)
	return &ImportMetrics{
		rowsImported: rowsImported,
		rowsFailed:   rowsFailed,
		files:        files,
		duration:     duration,
	}
}

// AddRows records imported and failed row counts for one file.
func (m *ImportMetrics) AddRows(imported, failed int) {
	if m == nil || m.rowsImported == nil {
		return
	}
	m.rowsImported.Add(float64(imported))
	m.rowsFailed.Add(float64(failed))
}

// IncFile increments the processed-file counter for the outcome.
func (m *ImportMetrics) IncFile(outcome string) {
	if m == nil || m.files == nil {
		return
	}
	m.files.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveDuration records how long one file took to process.
func (m *ImportMetrics) ObserveDuration(duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(duration.Seconds())
}
