// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors used by the HTTP middleware and the booking
// usecases.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	BookingDecision *prometheus.CounterVec
}

// New registers the service collectors on the default registry.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Count of HTTP requests by method, route and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		BookingDecision: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_decisions_total",
			Help:        "Outcomes of availability checks (accepted or the reject reason).",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
	}
}

// ObserveBookingDecision records one resolver outcome, e.g. ("create", "slot_conflict").
func (m *Metrics) ObserveBookingDecision(operation, outcome string) {
	if m == nil {
		return
	}
	m.BookingDecision.WithLabelValues(operation, outcome).Inc()
}
