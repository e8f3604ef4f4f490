package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/turing/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by run hooks.
type Metrics struct {
	Steps *prometheus.CounterVec
	Runs  *prometheus.CounterVec
	Cells *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_steps_total",
				Help: "Total number of transitions applied",
			},
			[]string{"machine"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of halted runs by result",
			},
			[]string{"machine", "result"},
		),
		Cells: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_tape_cells",
				Help:    "Touched tape span at halt",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"machine"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Runs, m.Cells)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m under the given machine label.
func (m *Metrics) Hooks(machine string) domain.LifecycleHooks {
	steps := m.Steps.WithLabelValues(machine)
	cells := m.Cells.WithLabelValues(machine)
	return domain.LifecycleHooks{
		OnStep: func(*domain.StepEvent) {
			steps.Inc()
		},
		OnHalt: func(e *domain.HaltEvent) {
			m.Runs.WithLabelValues(machine, ResultLabel(e.Accepted)).Inc()
			cells.Observe(float64(e.Cells))
		},
	}
}

// ResultLabel maps acceptance to the "result" label value.
func ResultLabel(accepted bool) string {
	if accepted {
		return "accept"
	}
	return "reject"
}
