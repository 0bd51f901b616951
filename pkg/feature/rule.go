package feature

// Rule decides whether a feature is visible.
//
// During resolution a rule is called as rule(data, name, variant) and must
// return a bool; any other result is treated as false. Listener notifications
// use the older two-argument shape instead, see Engine.On.
type Rule func(data any, name, variant string) any

// Normalize converts a registered value into a Rule. It accepts a bool
// (wrapped as a constant rule), a Rule, or one of the plain function shapes
// func(any, string, string) any, func(any, string, string) bool and
// func() bool. The second result is false for anything else.
func Normalize(value any) (Rule, bool) {
	switch v := value.(type) {
	case bool:
		return constant(v), true
	case Rule:
		return v, v != nil
	case func(any, string, string) any:
		return Rule(v), v != nil
	case func(any, string, string) bool:
		if v == nil {
			return nil, false
		}
		return func(data any, name, variant string) any { return v(data, name, variant) }, true
	case func() bool:
		if v == nil {
			return nil, false
		}
		return func(any, string, string) any { return v() }, true
	default:
		return nil, false
	}
}

// normalizeFunc is Normalize restricted to callables.
func normalizeFunc(value any) (Rule, bool) {
	if _, isBool := value.(bool); isBool {
		return nil, false
	}
	return Normalize(value)
}

func constant(v bool) Rule {
	return func(any, string, string) any { return v }
}

// replay calls the rule in its historical two-argument form rule(name, variant):
// the name lands in the data slot and the variant in the name slot.
func (r Rule) replay(name, variant string) any {
	return r(name, variant, "")
}
