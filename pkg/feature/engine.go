package feature

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Engine stores visibility rules and resolves visibility queries against them.
// Each Engine owns its rules and listeners. All methods are safe for
// concurrent use; rules and listeners run outside the engine lock and may
// call back into the engine. As a consequence a listener subscribed with On
// can receive a live notification for a rule registered concurrently before
// its own replay of earlier rules has finished.
type Engine struct {
	id        string
	mu        sync.RWMutex
	rules     *store
	listeners []Listener

	showLogs    atomic.Bool
	logger      *slog.Logger
	diagnostics DiagnosticHandler
	recorder    Recorder
}

// New creates an engine seeded with initial rules. Keys are feature names,
// optionally followed by "#variant", or one of RequiredKey and DefaultKey.
// Values are bools or rules as accepted by Normalize. Seeding does not notify
// listeners. Keys are inserted in sorted order.
func New(initial map[string]any, opts ...Option) (*Engine, error) {
	e := &Engine{
		id:     uuid.NewString(),
		rules:  newStore(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	keys := make([]string, 0, len(initial))
	for k := range initial {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name, variant := DecodeKey(Key(k))
		if name == "" {
			return nil, configError(ErrMissingName, fmt.Errorf("initial rule key %q", k))
		}
		rule, ok := Normalize(initial[k])
		if !ok {
			return nil, configError(ErrInvalidRule, fmt.Errorf("initial rule %q has unsupported type %T", k, initial[k]))
		}
		e.rules.set(EncodeKey(name, variant), rule)
	}

	return e, nil
}

// ID returns the engine identifier attached to its diagnostics.
func (e *Engine) ID() string {
	return e.id
}

// ShowLogs toggles the diagnostic channel. Called without arguments it enables it.
func (e *Engine) ShowLogs(enabled ...bool) {
	on := true
	if len(enabled) > 0 {
		on = enabled[0]
	}
	e.showLogs.Store(on)
}

// Visibility registers a rule for a feature.
//
//	e.Visibility("beta", true)                // name-only rule
//	e.Visibility("beta", "b", rule)           // rule for variant "b"
//
// When variantOrRule is a string it is the variant and rule must hold the
// rule. Otherwise variantOrRule is the rule, unless a rule argument is also
// given, which then takes its place. An existing rule at the same key is
// replaced. Every listener is then notified with the rule's result in the
// two-argument call shape (see On).
func (e *Engine) Visibility(name string, variantOrRule any, rule ...any) error {
	if name == "" {
		return configError(ErrMissingName)
	}
	if variantOrRule == nil {
		return configError(ErrMissingVariantOrRule)
	}

	var variant string
	value := variantOrRule
	if v, ok := variantOrRule.(string); ok {
		if len(rule) == 0 || rule[0] == nil {
			return configError(ErrMissingRule, fmt.Errorf("variant %q of %q needs a rule", v, name))
		}
		variant = v
	}
	if len(rule) > 0 && rule[0] != nil {
		value = rule[0]
	}

	r, ok := Normalize(value)
	if !ok {
		return configError(ErrMissingRule, fmt.Errorf("unsupported rule type %T", value))
	}

	e.mu.Lock()
	e.rules.set(EncodeKey(name, variant), r)
	listeners := slices.Clone(e.listeners)
	e.mu.Unlock()

	for _, l := range listeners {
		l(r.replay(name, variant), name, variant, r)
	}
	return nil
}

// RequiredVisibility registers the global veto rule. If it returns false no
// feature is visible. Bare bools are rejected.
func (e *Engine) RequiredVisibility(rule any) error {
	return e.setSpecial(RequiredKey, rule)
}

// DefaultVisibility registers the global fallback rule, used when no rule
// matches the queried feature. Bare bools are rejected.
func (e *Engine) DefaultVisibility(rule any) error {
	return e.setSpecial(DefaultKey, rule)
}

func (e *Engine) setSpecial(key Key, value any) error {
	r, ok := normalizeFunc(value)
	if !ok {
		return configError(ErrNotAFunction, fmt.Errorf("%s rule is %T", key, value))
	}

	e.mu.Lock()
	e.rules.set(key, r)
	e.mu.Unlock()
	return nil
}

// Keys returns the keys of all stored rules in registration order.
func (e *Engine) Keys() []Key {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]Key, 0, e.rules.len())
	for _, en := range e.rules.entries {
		keys = append(keys, en.key)
	}
	return keys
}
