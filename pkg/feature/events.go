package feature

import (
	"fmt"
	"strings"
)

// EventVisibilityRule is the only event type an Engine emits.
const EventVisibilityRule = "visibilityrule"

// Listener observes rule registrations. visible is the raw rule result, which
// is not coerced to a bool.
type Listener func(visible any, name, variant string, rule Rule)

// On subscribes l to eventType, which must be "visibilityrule" in any case.
//
// Unless IgnorePreviousRules is given, l is immediately called once for every
// stored rule in registration order, including the required and default rules
// (reported under the names "_required" and "_default"). Replayed names and
// variants are the lowercased stored forms.
//
// Both replay and live notifications call the rule as rule(name, variant):
// the feature name is passed in the data position and the variant in the name
// position. Rules that need to report sensibly to listeners must account for
// that shape; resolution always uses rule(data, name, variant).
func (e *Engine) On(eventType string, l Listener, opts ...SubscribeOption) error {
	if t := strings.ToLower(eventType); t != EventVisibilityRule {
		return configError(ErrUnknownEventType,
			fmt.Errorf("event type %q does not exist, only %q is valid", t, EventVisibilityRule))
	}
	if l == nil {
		return configError(ErrNilListener)
	}

	var sub subscription
	for _, opt := range opts {
		opt(&sub)
	}

	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	var entries []entry
	if !sub.ignorePreviousRules {
		entries = e.rules.snapshot()
	}
	e.mu.Unlock()

	for _, en := range entries {
		name, variant := DecodeKey(en.key)
		l(en.rule.replay(name, variant), name, variant, en.rule)
	}
	return nil
}
