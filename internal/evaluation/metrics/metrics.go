package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the evaluation module.
type Metrics struct {
	// Evaluation outcomes by status
	Outcomes *prometheus.CounterVec

	// Engine latency, excluding request decoding
	EvaluateLatency prometheus.Histogram

	// Expected-milestone counts per evaluation
	ExpectedMilestones prometheus.Histogram
}

// New creates a Metrics instance with all evaluation metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nurture_evaluation_outcomes_total",
			Help: "Total evaluations by resulting status",
		}, []string{"status"}), // status: "On Track", "Needs Support", "Referral Needed", "No Data"

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "nurture_evaluation_duration_seconds",
			Help:    "Duration of milestone evaluations",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),

		ExpectedMilestones: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "nurture_evaluation_expected_milestones",
			Help:    "Number of milestones expected at the evaluated age",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
	}
}

// IncrementOutcome records one evaluation status.
func (m *Metrics) IncrementOutcome(status string) {
	if m != nil {
		m.Outcomes.WithLabelValues(status).Inc()
	}
}

// ObserveEvaluateLatency records the engine duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// ObserveExpected records how many milestones were in scope.
func (m *Metrics) ObserveExpected(n int) {
	if m != nil {
		m.ExpectedMilestones.Observe(float64(n))
	}
}
