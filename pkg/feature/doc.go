// Package feature decides whether a feature, optionally qualified by a
// variant, should be shown.
//
// Callers register visibility rules on an Engine and later query it. A rule is
// a function of the caller's data, the feature name and the variant; a plain
// bool can be registered wherever a rule is expected.
//
// # Rules
//
// Four categories of rule exist:
//
//  1. Required rule (RequiredVisibility): a global veto. When it returns false
//     nothing is visible.
//  2. Exact rule (Visibility with a variant, or without one for name queries):
//     decides a specific name and variant.
//  3. Name-only rule (Visibility without a variant): also decides queries for
//     any variant of that name that has no exact rule.
//  4. Default rule (DefaultVisibility): the last resort.
//
// When nothing matches, a feature is visible only if a required rule exists
// (and passed). Keys are case-insensitive.
//
// # Usage
//
//	engine, err := feature.New(map[string]any{
//		"new-ui":     true,
//		"checkout#b": false,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_ = engine.RequiredVisibility(func(data any, name, variant string) bool {
//		u, _ := data.(*User)
//		return u != nil && !u.Banned
//	})
//	_ = engine.Visibility("beta", func(data any, name, variant string) bool {
//		u, _ := data.(*User)
//		return u != nil && u.Beta
//	})
//
//	visible, err := engine.IsVisible("beta", "", currentUser)
//
// # Rule results
//
// Rules must return a bool. Any other result does not fail the query: it is
// reported as a Warn diagnostic and counted as false.
//
// # Listeners
//
// On("visibilityrule", l) subscribes a listener to rule registrations. The
// listener is first called once per stored rule, unless IgnorePreviousRules
// is passed, and then once per Visibility call. These notifications call the
// rule as rule(name, variant), with the feature name in the data position.
// This shape is kept for compatibility with existing listeners.
//
// # Diagnostics
//
// ShowLogs enables a structured trace of each query. By default it is written
// to the engine logger (WithLogger); WithDiagnosticHandler lets the host
// render it differently.
//
// # Rule builders
//
// Always, Targeted, EnvironmentRule, All, Any and Not build common rules:
//
//	pct := 25
//	rollout, err := feature.Targeted(
//		feature.TargetCriteria{Percentage: &pct},
//		feature.WithUserIDExtractor(func(data any) string {
//			if u, ok := data.(*User); ok {
//				return u.ID
//			}
//			return ""
//		}),
//	)
package feature
