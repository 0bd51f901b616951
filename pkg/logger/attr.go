package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// EngineID records the engine instance identifier under the key "engine_id".
func EngineID(id string) slog.Attr {
	return slog.String("engine_id", id)
}

// Feature records the feature name under the key "feature".
func Feature(name string) slog.Attr {
	return slog.String("feature", name)
}

// Variant records the feature variant under the key "variant".
// If variant is empty, it returns an empty Attr.
func Variant(variant string) slog.Attr {
	if variant == "" {
		return slog.Attr{}
	}
	return slog.String("variant", variant)
}

// RuleKey records a rule store key under the key "rule_key".
// If key is empty, it returns an empty Attr.
func RuleKey(key string) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.String("rule_key", key)
}

// RuleCategory records which rule category produced a record under the key "rule".
func RuleCategory(category string) slog.Attr {
	return slog.String("rule", category)
}

// Result records a rule result under the key "result".
// If v is nil, it returns an empty Attr.
func Result(v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any("result", v)
}
