package auth

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts gate decisions by outcome and reason. A nil *Metrics
// records nothing.
type Metrics struct {
	decisions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notekeeper",
			Subsystem: "auth",
			Name:      "gate_decisions_total",
			Help:      "Authorization gate decisions by outcome and reason.",
		}, []string{"outcome", "reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.decisions)
	}
	return m
}

func (m *Metrics) observe(err error) {
	if m == nil {
		return
	}
	outcome := "allowed"
	if err != nil {
		outcome = KindOf(err).String()
	}
	m.decisions.WithLabelValues(outcome, Reason(err)).Inc()
}
