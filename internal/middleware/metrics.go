package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewMetrics returns a middleware that records a request counter and a
// duration histogram for every request, labelled by path and status bucket.
// Metrics are registered on reg; pass prometheus.DefaultRegisterer in main
// and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) func(http.Handler) http.Handler {
	requests := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "expedition_api_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"endpoint", "status"})

	duration := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "expedition_api_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			endpoint := r.URL.Path
			requests.WithLabelValues(endpoint, httpStatusBucket(ww.Status())).Inc()
			duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		})
	}
}

// httpStatusBucket collapses status codes into class buckets to keep the
// label cardinality low.
func httpStatusBucket(code int) string {
	if code < 100 || code > 599 {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code/100) + "xx"
}
