package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewCallMetrics(reg, "forkapi")
	require.NoError(t, err)

	m.Observe("ping", OutcomeSuccess, 20*time.Millisecond)
	m.Observe("ping", OutcomeSuccess, 30*time.Millisecond)
	m.Observe("ping", "domain_error", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.calls.WithLabelValues("ping", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("ping", "domain_error")))

	expected := `
# HELP forkapi_calls_total Number of API calls by method and outcome.
# TYPE forkapi_calls_total counter
forkapi_calls_total{method="ping",outcome="domain_error"} 1
forkapi_calls_total{method="ping",outcome="success"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "forkapi_calls_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestCallMetricsRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	m1, err := NewCallMetrics(reg, "forkapi")
	require.NoError(t, err)
	m2, err := NewCallMetrics(reg, "forkapi")
	require.NoError(t, err)

	m1.Observe("ping", OutcomeSuccess, time.Millisecond)
	m2.Observe("ping", OutcomeSuccess, time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(m1.calls.WithLabelValues("ping", OutcomeSuccess)))
}

func TestNilCallMetrics(t *testing.T) {
	var m *CallMetrics
	assert.NotPanics(t, func() { m.Observe("ping", OutcomeSuccess, time.Millisecond) })
}

func TestPrometheus(t *testing.T) {
	p := New()
	p.WithBuildInfoCollector()
	n, err := testutil.GatherAndCount(p.Registry(), "go_build_info")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
