package feature

import "errors"

// ErrConfig is joined into every error caused by a malformed call.
// The engine state is left untouched when it is returned.
var ErrConfig = errors.New("feature: configuration error")

// Predefined configuration errors.
var (
	// ErrMissingName indicates an empty feature name.
	ErrMissingName = errors.New("missing name")

	// ErrMissingVariantOrRule indicates Visibility was called without its second argument.
	ErrMissingVariantOrRule = errors.New("missing variant or rule")

	// ErrMissingRule indicates a variant was given without a usable rule.
	ErrMissingRule = errors.New("missing rule function")

	// ErrNotAFunction indicates the required or default rule is not callable.
	ErrNotAFunction = errors.New("not a function")

	// ErrUnknownEventType indicates a subscription to an event other than "visibilityrule".
	ErrUnknownEventType = errors.New("unknown event type")

	// ErrNilListener indicates a subscription without a listener.
	ErrNilListener = errors.New("listener cannot be nil")

	// ErrInvalidRule indicates an initial rule value that is neither a bool nor a rule.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrInvalidStrategy indicates a rule builder was configured without usable criteria.
	ErrInvalidStrategy = errors.New("invalid rule strategy")
)

func configError(err error, details ...error) error {
	return errors.Join(append([]error{ErrConfig, err}, details...)...)
}
