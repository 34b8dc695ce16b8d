// Package metrics exposes portal counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hospital_portal"

// Booking outcome label values.
const (
	OutcomeCommitted         = "committed"
	OutcomeFallbackCommitted = "fallback_committed"
	OutcomeConflict          = "conflict"
	OutcomeFailed            = "failed"
)

// Prescription result label values.
const (
	ResultPrescribed = "prescribed"
	ResultOutOfStock = "out_of_stock"
	ResultFailed     = "failed"
)

// Metrics holds the portal's collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry      *prometheus.Registry
	bookings      *prometheus.CounterVec
	prescriptions *prometheus.CounterVec
	seeded        *prometheus.CounterVec
	sourceErrors  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_bookings_total",
			Help:      "Appointment booking attempts by outcome.",
		}, []string{"outcome"}),
		prescriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prescriptions_total",
			Help:      "Prescription attempts by result.",
		}, []string{"result"}),
		seeded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seeded_records_total",
			Help:      "Records inserted by the seed loader per collection.",
		}, []string{"collection"}),
		sourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_source_errors_total",
			Help:      "Appointment source reads that failed and were treated as empty.",
		}, []string{"source"}),
	}
	m.registry.MustRegister(
		m.bookings,
		m.prescriptions,
		m.seeded,
		m.sourceErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Booking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Prescription(result string) {
	if m == nil {
		return
	}
	m.prescriptions.WithLabelValues(result).Inc()
}

func (m *Metrics) Seeded(collection string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.seeded.WithLabelValues(collection).Add(float64(n))
}

func (m *Metrics) SourceError(source string) {
	if m == nil {
		return
	}
	m.sourceErrors.WithLabelValues(source).Inc()
}

// Handler serves the registry at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
