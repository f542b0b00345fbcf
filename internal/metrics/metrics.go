package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters for API requests, login attempts and store actions,
// and histograms for API round-trip and database query duration.
type Metrics struct {
	APIRequests     *prometheus.CounterVec
	APIDuration     *prometheus.HistogramVec
	LoginAttempts   *prometheus.CounterVec
	StoreActions    *prometheus.CounterVec
	Employees       prometheus.Gauge
	MockAPIRequests *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
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
			Name: "staffdesk_api_requests_total",
			Help: "Total requests sent to the employee API, by operation and outcome.",
		}, []string{"operation", "status"}),
		APIDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffdesk_api_request_duration_seconds",
			Help:    "Round-trip duration of employee API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		LoginAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffdesk_login_attempts_total",
			Help: "Total login attempts, by outcome.",
		}, []string{"status"}),
		StoreActions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffdesk_store_actions_total",
			Help: "Total actions dispatched to the employee store.",
		}, []string{"action"}),
		Employees: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "staffdesk_store_employees",
			Help: "Number of employees currently held by the store.",
		}),
		MockAPIRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffdesk_mockapi_requests_total",
			Help: "Total requests served by the mock API.",
		}, []string{"method", "route", "code"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffdesk_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'list_employees', 'update_employee'
	}

	metrics.LoginAttempts.WithLabelValues("success")
	metrics.LoginAttempts.WithLabelValues("failure")

	return metrics
}
