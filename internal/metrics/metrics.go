// Package metrics holds the Prometheus collectors of the service and the
// ops handler that exposes them.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups request collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inflight        *prometheus.GaugeVec
}

func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "userdesk",
			Name:      "requests_total",
			Help:      "Requests handled, by adapter, method, route and status.",
		}, []string{"adapter", "method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "userdesk",
			Name:      "request_duration_seconds",
			Help:      "Request latency, by adapter, method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"adapter", "method", "route"}),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "userdesk",
			Name:      "inflight_requests",
			Help:      "Requests in flight, by adapter.",
		}, []string{"adapter"}),
	}

	for _, c := range []prometheus.Collector{
		m.requestsTotal,
		m.requestDuration,
		m.inflight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return nil, err
		}
	}

	return m, nil
}

// Registry exposes the registry for scraping and tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Begin marks a request in flight and returns the function that records it.
func (m *Metrics) Begin(adapter string) func(method, route string, status int) {
	start := time.Now()
	m.inflight.WithLabelValues(adapter).Inc()

	return func(method, route string, status int) {
		m.inflight.WithLabelValues(adapter).Dec()
		m.requestDuration.WithLabelValues(adapter, method, route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(adapter, method, route, strconv.Itoa(status)).Inc()
	}
}
