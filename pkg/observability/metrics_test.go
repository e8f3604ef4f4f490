package observability_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks("swap")

	for i := 0; i < 5; i++ {
		hooks.OnStep(&domain.StepEvent{Step: i + 1})
	}
	hooks.OnHalt(&domain.HaltEvent{Accepted: true, Steps: 5, Cells: 4})
	hooks.OnHalt(&domain.HaltEvent{Accepted: false, Cells: 3})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.Steps.WithLabelValues("swap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("swap", "accept")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("swap", "reject")))

	expected := `
# HELP turing_runs_total Total number of halted runs by result
# TYPE turing_runs_total counter
turing_runs_total{machine="swap",result="accept"} 1
turing_runs_total{machine="swap",result="reject"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "turing_runs_total"))

	count, err := testutil.GatherAndCount(reg, "turing_tape_cells")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_NilRegisterer(t *testing.T) {
	m := observability.NewMetrics(nil)
	m.Hooks("x").OnStep(&domain.StepEvent{})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps.WithLabelValues("x")))
}
