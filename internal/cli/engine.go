package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/featuretoggle/pkg/config"
	"github.com/dmitrymomot/featuretoggle/pkg/feature"
	"github.com/dmitrymomot/featuretoggle/pkg/logger"
	"github.com/dmitrymomot/featuretoggle/pkg/ruleset"
)

// session is the engine a command runs against, plus the registry counting
// its decisions.
type session struct {
	engine   *feature.Engine
	registry *prometheus.Registry
	log      *slog.Logger
}

// buildEngine assembles an engine from the environment configuration, the
// rule set file and the inline FEATURETOGGLE_FEATURES rules, in that order of
// increasing precedence.
func buildEngine(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(opts.EnvFiles...)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		cfg.ShowLogs = true
		if cfg.LogLevel == "" {
			cfg.LogLevel = "debug"
		}
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	log := cfg.Logger(cmd.ErrOrStderr()).With(logger.Component("cli"))

	path := cfg.RulesFile
	if opts.RulesFile != "" {
		path = opts.RulesFile
	}

	set := &ruleset.Set{}
	if path != "" {
		if set, err = ruleset.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := set.Merge(cfg.Features); err != nil {
		return nil, fmt.Errorf("FEATURETOGGLE_FEATURES: %w", err)
	}

	reg := prometheus.NewRegistry()
	engine, err := feature.New(set.Initial(), cfg.EngineOptions(log, reg)...)
	if err != nil {
		return nil, err
	}
	if err := set.Apply(engine); err != nil {
		return nil, err
	}
	return &session{engine: engine, registry: reg, log: log}, nil
}

// finish prints the decision counters to stderr when --metrics is set.
// A failure to print is logged and does not fail the command.
func (s *session) finish(opts *RootOptions, cmd *cobra.Command) {
	if !opts.Metrics {
		return
	}
	if err := writeMetrics(cmd.ErrOrStderr(), s.registry); err != nil {
		s.log.Warn("failed to write metrics", logger.Error(err))
	}
}
