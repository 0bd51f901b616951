package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/featuretoggle/pkg/feature"
	"github.com/dmitrymomot/featuretoggle/pkg/metrics"
)

var _ feature.Recorder = (*metrics.Collector)(nil)

func TestCollector(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	c := metrics.NewCollector("test", registry)

	c.RecordDecision("exact", true)
	c.RecordDecision("exact", true)
	c.RecordDecision("default", false)
	c.RecordViolation("required")

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{"test_decisions_total", "test_rule_violations_total"}, names)

	for _, f := range families {
		if f.GetName() == "test_decisions_total" {
			assert.Len(t, f.GetMetric(), 2, "one series per source and outcome")
		}
	}
}

func TestCollectorWithEngine(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	c := metrics.NewCollector("", registry)

	e, err := feature.New(map[string]any{
		"beta":  true,
		"gamma": func(any, string, string) any { return "yes" },
	}, feature.WithRecorder(c))
	require.NoError(t, err)

	for range 3 {
		_, err = e.IsVisible("beta", "", nil)
		require.NoError(t, err)
	}
	_, err = e.IsVisible("gamma", "", nil)
	require.NoError(t, err)
	_, err = e.IsVisible("delta", "", nil)
	require.NoError(t, err)

	families, err := registry.Gather()
	require.NoError(t, err)

	counts := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			key := f.GetName()
			for _, l := range m.GetLabel() {
				key += "," + l.GetName() + "=" + l.GetValue()
			}
			counts[key] = m.GetCounter().GetValue()
		}
	}

	assert.Equal(t, 3.0, counts["featuretoggle_decisions_total,source=exact,visible=true"])
	assert.Equal(t, 1.0, counts["featuretoggle_decisions_total,source=exact,visible=false"])
	assert.Equal(t, 1.0, counts["featuretoggle_decisions_total,source=none,visible=false"])
	assert.Equal(t, 1.0, counts["featuretoggle_rule_violations_total,category=exact"])
}

func TestNewCollectorNilRegistry(t *testing.T) {
	t.Parallel()
	c := metrics.NewCollector("", nil)
	require.NotNil(t, c)
	assert.NotPanics(t, func() { c.RecordDecision("none", false) })
}
