package tutor

import prom "github.com/prometheus/client_golang/prometheus"

const (
	SourceProvider = "provider"
	SourceFallback = "fallback"
	SourceEmpty    = "empty"
)

// Metrics is safe to use as a nil pointer.
type Metrics struct {
	attempts *prom.CounterVec
	replies  *prom.CounterVec
}

func NewMetrics(reg prom.Registerer) *Metrics {
	m := &Metrics{
		attempts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tutor",
			Name:      "provider_attempts_total",
			Help:      "Completion provider attempts by outcome.",
		}, []string{"provider", "outcome"}),
		replies: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "tutor",
			Name:      "replies_total",
			Help:      "Chat replies by category and where the text came from.",
		}, []string{"category", "source"}),
	}
	if reg != nil {
		reg.MustRegister(m.attempts, m.replies)
	}
	return m
}

func (m *Metrics) ObserveAttempt(provider, outcome string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveReply(category Category, source string) {
	if m == nil {
		return
	}
	m.replies.WithLabelValues(string(category), source).Inc()
}
