package helpers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Tracks the number of HTTP requests.",
	})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Tracks the latencies for HTTP requests.",
		Buckets: prometheus.DefBuckets,
	})

	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_api_requests_total",
		Help: "Tracks the requests sent to the feed API, by resource, method and status.",
	}, []string{"resource", "method", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feed_api_request_duration_seconds",
		Help:    "Tracks the latencies of the feed API.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method"})

	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_loads_total",
		Help: "Tracks feed loads by resource and outcome.",
	}, []string{"resource", "outcome"})
)

// GetRegistry returns a registry holding Go, process and feed metrics
func GetRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		requestsTotal,
		requestDuration,
		apiRequestsTotal,
		apiRequestDuration,
		loadsTotal,
	)

	return registry
}

func IncrementRequests() {
	requestsTotal.Inc()
}

func ObserveRequestDuration(time float64) {
	requestDuration.Observe(time)
}

// ObserveAPIRequest records a call to the feed API.
// A status of 0 means no response was received.
func ObserveAPIRequest(resource, method string, status int, elapsed time.Duration) {
	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}

	apiRequestsTotal.WithLabelValues(resource, method, label).Inc()
	apiRequestDuration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
}

// CountLoad records the outcome of a users or posts load
func CountLoad(resource, outcome string) {
	loadsTotal.WithLabelValues(resource, outcome).Inc()
}

// Middleware counts requests and their duration, except for /metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		IncrementRequests()

		next.ServeHTTP(w, r)

		ObserveRequestDuration(time.Since(start).Seconds())
	})
}
