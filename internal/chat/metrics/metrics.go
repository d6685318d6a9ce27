package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the chat module.
type Metrics struct {
	// Replies by conversational state and severity
	Replies *prometheus.CounterVec

	// Concerns resolved per domain
	Concerns *prometheus.CounterVec

	// Referrals suggested by chat replies
	Referrals prometheus.Counter
}

// New creates a Metrics instance with all chat metrics registered.
func New() *Metrics {
	return &Metrics{
		Replies: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nurture_chat_replies_total",
			Help: "Total chat replies by state and response type",
		}, []string{"state", "response_type"}),

		Concerns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nurture_chat_concerns_total",
			Help: "Total chat concerns resolved by domain; general means no keyword matched",
		}, []string{"domain"}),

		Referrals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nurture_chat_referrals_total",
			Help: "Total chat replies that recommended a referral",
		}),
	}
}

// IncrementReply records one reply.
func (m *Metrics) IncrementReply(state, responseType string) {
	if m != nil {
		m.Replies.WithLabelValues(state, responseType).Inc()
	}
}

// IncrementConcern records the domain a message resolved to.
func (m *Metrics) IncrementConcern(domain string) {
	if m != nil {
		m.Concerns.WithLabelValues(domain).Inc()
	}
}

// IncrementReferral records a referral recommendation.
func (m *Metrics) IncrementReferral() {
	if m != nil {
		m.Referrals.Inc()
	}
}
