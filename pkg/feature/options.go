package feature

import "log/slog"

// Recorder receives resolution outcomes, typically to export them as metrics.
type Recorder interface {
	// RecordDecision is called once per resolved query with the deciding source.
	RecordDecision(source string, visible bool)
	// RecordViolation is called when a rule returns a non-boolean result.
	RecordViolation(category string)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sends diagnostics to l. It is ignored when a DiagnosticHandler is set.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithDiagnosticHandler replaces the default slog rendering of diagnostics.
func WithDiagnosticHandler(h DiagnosticHandler) Option {
	return func(e *Engine) {
		if h != nil {
			e.diagnostics = h
		}
	}
}

// WithShowLogs sets the initial state of the diagnostic channel.
func WithShowLogs(enabled bool) Option {
	return func(e *Engine) {
		e.showLogs.Store(enabled)
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithID overrides the generated engine identifier.
func WithID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.id = id
		}
	}
}

// SubscribeOption configures a listener subscription.
type SubscribeOption func(*subscription)

type subscription struct {
	ignorePreviousRules bool
}

// IgnorePreviousRules skips the replay of already registered rules; the
// listener only receives registrations made after it subscribed.
func IgnorePreviousRules() SubscribeOption {
	return func(s *subscription) {
		s.ignorePreviousRules = true
	}
}
