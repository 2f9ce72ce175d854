package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters for employee API calls, form submissions and validation
// failures, and histograms for API call and database query latency.
type Metrics struct {
	APIRequests        *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	FormSubmissions    *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	RecordsDeleted     prometheus.Counter
	PageRenders        *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		APIRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffconsole_api_requests_total",
			Help: "Total calls made to the employee API, by operation and outcome.",
		}, []string{"operation", "outcome"}), // outcome: 'ok', 'api_error', 'network_error'
		APIRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffconsole_api_request_duration_seconds",
			Help:    "Duration of calls to the employee API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		FormSubmissions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffconsole_form_submissions_total",
			Help: "Form submit attempts, by form and result.",
		}, []string{"form", "result"}), // result: 'saved', 'invalid', 'failed'
		ValidationFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffconsole_validation_failures_total",
			Help: "Field-level validation failures that blocked a submission.",
		}, []string{"field"}),
		RecordsDeleted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "staffconsole_records_deleted_total",
			Help: "Total number of confirmed employee deletions.",
		}),
		PageRenders: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffconsole_page_renders_total",
			Help: "Rendered pages, by view.",
		}, []string{"view"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffconsole_db_query_duration_seconds",
			Help:    "Duration of database queries in the reference API server.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}),
	}

	metrics.FormSubmissions.WithLabelValues("create", "saved")
	metrics.FormSubmissions.WithLabelValues("edit", "saved")

	return metrics
}
