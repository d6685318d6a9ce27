package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the rate limiter.
type Metrics struct {
	Checks       *prometheus.CounterVec
	StoreErrors  prometheus.Counter
	CircuitState prometheus.Gauge
}

// New creates a Metrics instance with all rate limit metrics registered.
func New() *Metrics {
	return &Metrics{
		Checks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nurture_ratelimit_checks_total",
			Help: "Total rate limit checks by outcome and store",
		}, []string{"outcome", "store"}), // outcome: "allowed", "rejected"; store: "primary", "fallback"

		StoreErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nurture_ratelimit_store_errors_total",
			Help: "Total errors returned by the primary rate limit store",
		}),

		CircuitState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "nurture_ratelimit_circuit_open",
			Help: "1 while the rate limiter is using its in-memory fallback",
		}),
	}
}

// IncrementCheck records one check outcome.
func (m *Metrics) IncrementCheck(allowed bool, store string) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if allowed {
		outcome = "allowed"
	}
	m.Checks.WithLabelValues(outcome, store).Inc()
}

// IncrementStoreError records a primary store failure.
func (m *Metrics) IncrementStoreError() {
	if m != nil {
		m.StoreErrors.Inc()
	}
}

// SetCircuitOpen records the breaker position.
func (m *Metrics) SetCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitState.Set(1)
		return
	}
	m.CircuitState.Set(0)
}
