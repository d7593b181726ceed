// Package metrics exposes Prometheus instrumentation for the web client.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the client's collectors on a private registry so tests can
// create throwaway instances without collisions.
type Metrics struct {
	registry *prometheus.Registry

	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec
}

// New creates a registry with the backend-call collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Backend API calls by operation and outcome.",
	}, []string{"operation", "status"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Backend API call latency by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	reg.MustRegister(requests, latency)

	return &Metrics{
		registry:        reg,
		BackendRequests: requests,
		BackendLatency:  latency,
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
