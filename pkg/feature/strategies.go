package feature

import (
	"context"
	"errors"
	"hash/fnv"
	"slices"

	"github.com/dmitrymomot/featuretoggle/pkg/environment"
)

// Extractor function types for retrieving targeting data from the data
// argument passed to IsVisible. They keep rule builders decoupled from the
// caller's data model.
type (
	UserIDExtractor      func(data any) string
	UserGroupsExtractor  func(data any) []string
	EnvironmentExtractor func(data any) environment.Environment
)

// TargetCriteria defines targeting criteria for a rule.
type TargetCriteria struct {
	UserIDs    []string `json:"user_ids,omitempty" yaml:"user_ids,omitempty"`
	Groups     []string `json:"groups,omitempty" yaml:"groups,omitempty"`
	Percentage *int     `json:"percentage,omitempty" yaml:"percentage,omitempty"`
	// AllowList always takes precedence over other criteria except DenyList
	AllowList []string `json:"allow_list,omitempty" yaml:"allow_list,omitempty"`
	// DenyList always takes precedence over all other criteria
	DenyList []string `json:"deny_list,omitempty" yaml:"deny_list,omitempty"`
}

func (c TargetCriteria) empty() bool {
	return c.UserIDs == nil && c.Groups == nil && c.Percentage == nil &&
		c.AllowList == nil && c.DenyList == nil
}

// Always returns a rule that ignores its arguments and returns v.
func Always(v bool) Rule {
	return constant(v)
}

// TargetedOption configures a targeted rule.
type TargetedOption func(*targeted)

// WithUserIDExtractor sets the user ID extractor.
func WithUserIDExtractor(extractor UserIDExtractor) TargetedOption {
	return func(t *targeted) {
		t.userID = extractor
	}
}

// WithUserGroupsExtractor sets the user groups extractor.
func WithUserGroupsExtractor(extractor UserGroupsExtractor) TargetedOption {
	return func(t *targeted) {
		t.userGroups = extractor
	}
}

type targeted struct {
	criteria   TargetCriteria
	userID     UserIDExtractor
	userGroups UserGroupsExtractor
}

// Targeted returns a rule that shows a feature to specific users, groups or a
// percentage of users. The deny list wins over everything, then the allow
// list, user IDs, groups and finally the percentage rollout, which hashes the
// user ID with FNV-1a so a user always lands in the same bucket.
func Targeted(criteria TargetCriteria, opts ...TargetedOption) (Rule, error) {
	if criteria.empty() {
		return nil, ErrInvalidStrategy
	}
	if p := criteria.Percentage; p != nil && (*p < 0 || *p > 100) {
		return nil, errors.Join(ErrInvalidStrategy, errors.New("percentage must be between 0 and 100"))
	}

	t := &targeted{criteria: criteria}
	for _, opt := range opts {
		opt(t)
	}
	return t.evaluate, nil
}

func (t *targeted) evaluate(data any, _, _ string) any {
	var userID string
	if t.userID != nil {
		userID = t.userID(data)
	}

	c := t.criteria
	if len(c.DenyList) > 0 && (userID == "" || slices.Contains(c.DenyList, userID)) {
		// Unknown users are denied when a deny list exists.
		return false
	}
	if userID != "" && (slices.Contains(c.AllowList, userID) || slices.Contains(c.UserIDs, userID)) {
		return true
	}
	if t.inGroup(data) {
		return true
	}
	if c.Percentage != nil {
		return inPercentage(userID, *c.Percentage)
	}
	return false
}

func (t *targeted) inGroup(data any) bool {
	if len(t.criteria.Groups) == 0 || t.userGroups == nil {
		return false
	}
	for _, g := range t.userGroups(data) {
		if slices.Contains(t.criteria.Groups, g) {
			return true
		}
	}
	return false
}

func inPercentage(userID string, percentage int) bool {
	switch {
	case percentage == 0:
		return false
	case percentage == 100:
		return true
	case userID == "":
		return false
	}

	h := fnv.New32a()
	h.Write([]byte(userID))
	return int(h.Sum32()%100) < percentage
}

// EnvironmentRule returns a rule that shows a feature only in the given
// environments. A nil extractor reads the environment from data when it is an
// environment.Environment, a string or a context.Context carrying one.
func EnvironmentRule(envs []environment.Environment, extractor EnvironmentExtractor) (Rule, error) {
	if len(envs) == 0 {
		return nil, ErrInvalidStrategy
	}
	if extractor == nil {
		extractor = environmentFromData
	}
	return func(data any, _, _ string) any {
		env := extractor(data)
		return env != "" && slices.Contains(envs, env)
	}, nil
}

func environmentFromData(data any) environment.Environment {
	switch v := data.(type) {
	case environment.Environment:
		return v
	case string:
		return environment.Parse(v)
	case context.Context:
		return environment.FromContext(v)
	default:
		return ""
	}
}

// All returns a rule that is true when every rule is true. Evaluation stops at
// the first false result. A non-boolean child result counts as false.
func All(rules ...Rule) Rule {
	return combine(rules, false)
}

// Any returns a rule that is true when at least one rule is true. Evaluation
// stops at the first true result. A non-boolean child result counts as false.
func Any(rules ...Rule) Rule {
	return combine(rules, true)
}

// combine evaluates rules until one returns stopAt.
func combine(rules []Rule, stopAt bool) Rule {
	rules = slices.DeleteFunc(slices.Clone(rules), func(r Rule) bool { return r == nil })
	return func(data any, name, variant string) any {
		if len(rules) == 0 {
			return false
		}
		for _, r := range rules {
			v, _ := r(data, name, variant).(bool)
			if v == stopAt {
				return stopAt
			}
		}
		return !stopAt
	}
}

// Not negates rule. A non-boolean result is returned unchanged.
func Not(rule Rule) Rule {
	return func(data any, name, variant string) any {
		res := rule(data, name, variant)
		if v, ok := res.(bool); ok {
			return !v
		}
		return res
	}
}
