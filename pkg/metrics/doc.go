// Package metrics exports feature toggle resolution outcomes to Prometheus.
//
// A Collector implements feature.Recorder:
//
//	registry := prometheus.NewRegistry()
//	collector := metrics.NewCollector("checkout", registry)
//	engine, err := feature.New(nil, feature.WithRecorder(collector))
//
// Metrics:
//   - <namespace>_decisions_total{source, visible}: resolved queries by deciding rule
//   - <namespace>_rule_violations_total{category}: rules that returned a non-boolean result
package metrics
