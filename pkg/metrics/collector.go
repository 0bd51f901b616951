package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace is used when NewCollector is given an empty namespace.
const DefaultNamespace = "featuretoggle"

// Collector counts visibility decisions and rule contract violations.
type Collector struct {
	decisionsTotal  *prometheus.CounterVec
	violationsTotal *prometheus.CounterVec
}

// NewCollector creates and registers the collector metrics with registry.
// A nil registry gets a fresh prometheus.Registry.
func NewCollector(namespace string, registry prometheus.Registerer) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decisions_total",
				Help:      "Total number of visibility decisions by deciding rule and outcome",
			},
			[]string{"source", "visible"},
		),
		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_violations_total",
				Help:      "Total number of rules that returned a non-boolean result",
			},
			[]string{"category"},
		),
	}

	registry.MustRegister(c.decisionsTotal, c.violationsTotal)

	return c
}

// RecordDecision counts a resolved query.
func (c *Collector) RecordDecision(source string, visible bool) {
	c.decisionsTotal.WithLabelValues(source, strconv.FormatBool(visible)).Inc()
}

// RecordViolation counts a rule that returned a non-boolean result.
func (c *Collector) RecordViolation(category string) {
	c.violationsTotal.WithLabelValues(category).Inc()
}
