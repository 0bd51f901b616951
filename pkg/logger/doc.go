// Package logger builds the *slog.Logger used by the feature toggle engine and
// its command line tool, and provides attribute constructors that keep the
// names of diagnostic fields consistent.
//
// New is the single factory. It is configured with Option functions to select
// the output format (text or json), the minimum level, the destination and a
// set of static attributes. Environment presets pick sensible defaults:
//
//	log := logger.New(logger.WithEnvironment("production", "checkout"))
//	log.Info("feature resolved",
//	    logger.Feature("beta"),
//	    logger.Variant("b"),
//	    logger.Result(true),
//	)
//
// Helpers such as Error and Variant return an empty slog.Attr when there is
// nothing to record, so they can be passed unconditionally.
package logger
