package feature

import (
	"fmt"
	"log/slog"
)

// Source names the rule that decided a query.
type Source string

const (
	// SourceRequired: the required rule returned false.
	SourceRequired Source = "required"
	// SourceExact: a rule registered for the exact name and variant.
	SourceExact Source = "exact"
	// SourceName: the name-only rule, consulted for variant queries.
	SourceName Source = "name"
	// SourceDefault: the default rule.
	SourceDefault Source = "default"
	// SourceRequiredOnly: only the required rule matched and it passed.
	SourceRequiredOnly Source = "required-only"
	// SourceNone: no rule matched.
	SourceNone Source = "none"
)

// Decision is the outcome of a visibility query.
type Decision struct {
	Visible bool
	Source  Source
}

// IsVisible reports whether the feature name, optionally qualified by
// variant, is visible. data is passed to every rule that is evaluated.
//
// Rules are consulted in this order, each only if the previous ones did not
// decide:
//
//  1. the required rule; false hides the feature, true only lets resolution continue
//  2. the rule for the exact name and variant
//  3. the name-only rule, when a variant was given
//  4. the default rule
//
// If none decides, the feature is visible only when a required rule exists.
// A rule returning anything but a bool counts as false.
func (e *Engine) IsVisible(name, variant string, data any) (bool, error) {
	d, err := e.Explain(name, variant, data)
	return d.Visible, err
}

// Explain resolves a query like IsVisible and also reports which rule decided.
func (e *Engine) Explain(name, variant string, data any) (Decision, error) {
	if name == "" {
		return Decision{}, configError(ErrMissingName)
	}

	exactKey := EncodeKey(name, variant)
	nameKey := EncodeKey(name, "")

	e.mu.RLock()
	required, hasRequired := e.rules.get(RequiredKey)
	exact, hasExact := e.rules.get(exactKey)
	named, hasNamed := e.rules.get(nameKey)
	def, hasDefault := e.rules.get(DefaultKey)
	e.mu.RUnlock()

	t := trace{e: e, name: name, variant: variant}
	t.emit(slog.LevelDebug, CategoryCheck, "checking visibility", exactKey, data)

	switch {
	case !hasRequired:
		t.debug(string(SourceRequired), "no required rule specified")
	case !e.evaluate(t, required, SourceRequired, RequiredKey, data):
		return e.decide(t, false, SourceRequired, RequiredKey, "required rule returned false"), nil
	default:
		t.debug(string(SourceRequired), "required rule returned true, feature is shown unless another rule rejects it")
	}

	if hasExact {
		visible := e.evaluate(t, exact, SourceExact, exactKey, data)
		return e.decide(t, visible, SourceExact, exactKey, "visibility rule decided"), nil
	}
	t.debug(string(SourceExact), "no rule matches name and variant")

	if variant != "" {
		if hasNamed {
			visible := e.evaluate(t, named, SourceName, nameKey, data)
			return e.decide(t, visible, SourceName, nameKey, "rule without variant decided"), nil
		}
		t.debug(string(SourceName), "no rule for name without variant")
	}

	if hasDefault {
		visible := e.evaluate(t, def, SourceDefault, DefaultKey, data)
		return e.decide(t, visible, SourceDefault, DefaultKey, "default rule decided"), nil
	}
	t.debug(string(SourceDefault), "no default rule")

	if hasRequired {
		return e.decide(t, true, SourceRequiredOnly, RequiredKey, "only the required rule matched"), nil
	}
	return e.decide(t, false, SourceNone, "", "no rules matched"), nil
}

// evaluate calls rule in the resolution shape. A non-boolean result is
// reported and treated as false.
func (e *Engine) evaluate(t trace, rule Rule, source Source, key Key, data any) bool {
	result := rule(data, t.name, t.variant)
	if visible, ok := result.(bool); ok {
		return visible
	}

	t.emit(slog.LevelWarn, string(source),
		fmt.Sprintf("%s rule returned %v, rules must return true or false; treating it as false", source, result),
		key, result)
	if e.recorder != nil {
		e.recorder.RecordViolation(string(source))
	}
	return false
}

func (e *Engine) decide(t trace, visible bool, source Source, key Key, msg string) Decision {
	state := "hidden"
	if visible {
		state = "visible"
	}
	t.emit(slog.LevelInfo, string(source), msg+", feature "+state, key, visible)
	if e.recorder != nil {
		e.recorder.RecordDecision(string(source), visible)
	}
	return Decision{Visible: visible, Source: source}
}
