// Package metrics registers the Prometheus collectors of the server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission and notification outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeUploadError     = "upload_error"
	OutcomeDatabaseError   = "database_error"
	OutcomeFailure         = "failure"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devconsult_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "devconsult_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SubmissionsTotal counts submission attempts by kind (contact, career) and outcome.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devconsult_submissions_total",
			Help: "Submission attempts by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// NotificationsTotal counts operator notifications by kind and outcome.
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devconsult_notifications_total",
			Help: "Operator notifications by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// GateDecisionsTotal counts admin gate outcomes by final state.
	GateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devconsult_admin_gate_decisions_total",
			Help: "Admin gate decisions by state",
		},
		[]string{"state"},
	)

	// FetchErrorsTotal counts failed dashboard table reads.
	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devconsult_dashboard_fetch_errors_total",
			Help: "Failed dashboard table reads by table",
		},
		[]string{"table"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and duration per matched route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		// Route patterns keep path parameters (tokens, bucket names) out of the label set.
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
