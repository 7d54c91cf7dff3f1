package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the gateway collectors on reg. A nil registerer gives
// metrics that are collected but never exported, which is what tests use.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashboard",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Backend calls issued by the gateway, by outcome.",
		}, []string{"endpoint", "action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dashboard",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Latency of backend calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "action"}),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}

	return m
}

func (m *Metrics) observe(endpoint, action, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(endpoint, action, outcome).Inc()
	m.duration.WithLabelValues(endpoint, action).Observe(elapsed.Seconds())
}
