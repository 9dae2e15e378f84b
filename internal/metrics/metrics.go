package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// HTTPRequestsTotal counts served requests by chi route pattern and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "whatis",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests served, labeled by route and status.",
	}, []string{"route", "status"})

	// HTTPRequestDurationSeconds is handler time per request, including the backend call.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "whatis",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time to serve an HTTP request.",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"route"})

	// BackendRequestsTotal counts generation calls by provider and outcome.
	BackendRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "whatis",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Total number of generation backend calls, labeled by provider and result.",
	}, []string{"provider", "result"})

	BackendDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "whatis",
		Subsystem: "backend",
		Name:      "duration_seconds",
		Help:      "Time spent waiting on the generation backend.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider"})
)

// Backend call results.
const (
	ResultOK          = "ok"
	ResultUnavailable = "unavailable"
	ResultUpstream    = "upstream_error"
	ResultError       = "error"
)

// Register registers gateway metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			BackendRequestsTotal,
			BackendDurationSeconds,
		)
	})
}
