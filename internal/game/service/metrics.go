package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts mutations and save outcomes.
type Metrics struct {
	mutations *prometheus.CounterVec
	saves     *prometheus.CounterVec
	pending   prometheus.Gauge
}

// NewMetrics registers the tournament collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "mutations_total",
			Help:      "Tournament state mutations by operation.",
		}, []string{"op"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Name:      "saves_total",
			Help:      "Persisted save units by kind and result.",
		}, []string{"kind", "result"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scoreboard",
			Name:      "pending_saves",
			Help:      "Save units changed in memory and not yet persisted.",
		}),
	}
	reg.MustRegister(m.mutations, m.saves, m.pending)
	return m
}
