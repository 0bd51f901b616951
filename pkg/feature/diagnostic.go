package feature

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/featuretoggle/pkg/logger"
)

// Diagnostic is a structured trace record emitted while resolving a query,
// when logs are enabled with Engine.ShowLogs.
type Diagnostic struct {
	Level    slog.Level
	Category string
	Message  string
	Feature  string
	Variant  string
	Key      Key
	Result   any
	EngineID string
}

// DiagnosticHandler renders diagnostics.
type DiagnosticHandler func(Diagnostic)

// CategoryCheck marks the record that opens a resolution trace.
const CategoryCheck = "check"

// LogDiagnostics returns a handler that writes diagnostics to l.
func LogDiagnostics(l *slog.Logger) DiagnosticHandler {
	return func(d Diagnostic) {
		l.LogAttrs(context.Background(), d.Level, d.Message,
			logger.EngineID(d.EngineID),
			logger.RuleCategory(d.Category),
			logger.Feature(d.Feature),
			logger.Variant(d.Variant),
			logger.RuleKey(d.Key.String()),
			logger.Result(d.Result),
		)
	}
}

// trace emits the diagnostics of a single query.
type trace struct {
	e       *Engine
	name    string
	variant string
}

func (t trace) emit(level slog.Level, category, msg string, key Key, result any) {
	if !t.e.showLogs.Load() {
		return
	}
	h := t.e.diagnostics
	if h == nil {
		h = LogDiagnostics(t.e.logger)
	}
	h(Diagnostic{
		Level:    level,
		Category: category,
		Message:  msg,
		Feature:  t.name,
		Variant:  t.variant,
		Key:      key,
		Result:   result,
		EngineID: t.e.id,
	})
}

func (t trace) debug(category, msg string) {
	t.emit(slog.LevelDebug, category, msg, "", nil)
}
