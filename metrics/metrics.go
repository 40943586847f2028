// Package metrics provides Prometheus metrics for client operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for client operations.
type Metrics struct {
	enabled bool

	// API request metrics
	apiRequestsTotal   *prometheus.CounterVec
	apiRequestDuration prometheus.Histogram

	// Login metrics
	loginTotal         prometheus.Counter
	loginFailuresTotal *prometheus.CounterVec

	// Page view tracker metrics
	trackerEventsTotal *prometheus.CounterVec
}

// New creates and registers Prometheus metrics.
// If enabled is false, returns a no-op Metrics instance.
func New(enabled bool) *Metrics {
	m := &Metrics{enabled: enabled}

	if !enabled {
		return m
	}

	// API request metrics
	m.apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_api_requests_total",
		Help: "Total API requests by service and result",
	}, []string{"service", "result"})

	m.apiRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "portal_api_request_duration_seconds",
		Help:    "API request duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// Login metrics
	m.loginTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_logins_total",
		Help: "Total successful logins",
	})

	m.loginFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_login_failures_total",
		Help: "Total failed logins",
	}, []string{"reason"})

	// Page view tracker metrics
	m.trackerEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_tracker_events_total",
		Help: "Page view tracker events by outcome",
	}, []string{"result"})

	return m
}

// RecordRequest records an API call outcome.
func (m *Metrics) RecordRequest(service, result string, durationSeconds float64) {
	if !m.enabled {
		return
	}
	m.apiRequestsTotal.WithLabelValues(service, result).Inc()
	m.apiRequestDuration.Observe(durationSeconds)
}

// RecordLogin records a successful login.
func (m *Metrics) RecordLogin() {
	if !m.enabled {
		return
	}
	m.loginTotal.Inc()
}

// RecordLoginFailure records a failed login.
func (m *Metrics) RecordLoginFailure(reason string) {
	if !m.enabled {
		return
	}
	m.loginFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordTrackerEvent records a page view tracker outcome (sent, failed, dropped).
func (m *Metrics) RecordTrackerEvent(result string) {
	if !m.enabled {
		return
	}
	m.trackerEventsTotal.WithLabelValues(result).Inc()
}
