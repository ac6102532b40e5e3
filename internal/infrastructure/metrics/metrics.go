package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the console's counters and histograms.
type Metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	verifications     *prometheus.CounterVec
	appointmentsSwept prometheus.Counter
	bookingConflicts  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meetocure",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meetocure",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meetocure",
			Name:      "verification_transitions_total",
			Help:      "Doctor verification status transitions by target status",
		}, []string{"to"}),
		appointmentsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meetocure",
			Name:      "appointments_expired_total",
			Help:      "Appointments soft-deleted by the expiry sweep",
		}),
		bookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meetocure",
			Name:      "booking_conflicts_total",
			Help:      "Booking attempts refused because the slot was taken",
		}, []string{"stage"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration, m.verifications, m.appointmentsSwept, m.bookingConflicts)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) ObserveVerification(to string) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(to).Inc()
}

func (m *Metrics) ObserveExpired(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.appointmentsSwept.Add(float64(n))
}

// ObserveBookingConflict records where a double booking was caught: lock, precheck or constraint.
func (m *Metrics) ObserveBookingConflict(stage string) {
	if m == nil {
		return
	}
	m.bookingConflicts.WithLabelValues(stage).Inc()
}
