package ruleset

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/featuretoggle/pkg/feature"
)

// ErrInvalidRuleSet is joined into every parse and validation error.
var ErrInvalidRuleSet = errors.New("invalid rule set")

// Set is a parsed rule set.
type Set struct {
	Rules   map[string]bool `yaml:"rules"`
	Default *bool           `yaml:"default,omitempty"`
}

// Parse decodes a YAML rule set from r. An empty document yields an empty set.
func Parse(r io.Reader) (*Set, error) {
	s := &Set{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidRuleSet, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile parses the rule set stored at path.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule set: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Set) validate() error {
	for _, key := range slices.Sorted(maps.Keys(s.Rules)) {
		if err := validateKey(key); err != nil {
			return errors.Join(ErrInvalidRuleSet, err)
		}
	}
	return nil
}

func validateKey(key string) error {
	if strings.HasPrefix(key, "_") {
		return fmt.Errorf("key %q: reserved prefix \"_\"", key)
	}
	if strings.Count(key, "#") > 1 {
		return fmt.Errorf("key %q: at most one variant separator allowed", key)
	}
	name, variant, hasVariant := strings.Cut(key, "#")
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("key %q: missing feature name", key)
	}
	if hasVariant && strings.TrimSpace(variant) == "" {
		return fmt.Errorf("key %q: empty variant", key)
	}
	return nil
}

// Merge adds rules to the set, overriding existing keys.
func (s *Set) Merge(rules map[string]bool) error {
	for _, key := range slices.Sorted(maps.Keys(rules)) {
		if err := validateKey(key); err != nil {
			return errors.Join(ErrInvalidRuleSet, err)
		}
	}
	if s.Rules == nil {
		s.Rules = make(map[string]bool, len(rules))
	}
	maps.Copy(s.Rules, rules)
	return nil
}

// Initial returns the rules in the form accepted by feature.New.
func (s *Set) Initial() map[string]any {
	out := make(map[string]any, len(s.Rules))
	for k, v := range s.Rules {
		out[k] = v
	}
	return out
}

// Apply registers the set's default rule on e, if it has one.
func (s *Set) Apply(e *feature.Engine) error {
	if s.Default == nil {
		return nil
	}
	v := *s.Default
	return e.DefaultVisibility(func() bool { return v })
}
