package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/featuretoggle/pkg/environment"
	"github.com/dmitrymomot/featuretoggle/pkg/feature"
	"github.com/dmitrymomot/featuretoggle/pkg/logger"
	"github.com/dmitrymomot/featuretoggle/pkg/metrics"
)

// Prefix is prepended to every environment variable name.
const Prefix = "FEATURETOGGLE_"

// Config holds the engine and tooling settings.
type Config struct {
	Env              string          `env:"ENV" envDefault:"development"`
	Service          string          `env:"SERVICE" envDefault:"featuretoggle"`
	ShowLogs         bool            `env:"SHOW_LOGS" envDefault:"false"`
	LogLevel         string          `env:"LOG_LEVEL"`
	LogFormat        string          `env:"LOG_FORMAT"`
	RulesFile        string          `env:"RULES_FILE"`
	Features         map[string]bool `env:"FEATURES" envSeparator:"," envKeyValSeparator:"="`
	MetricsNamespace string          `env:"METRICS_NAMESPACE" envDefault:"featuretoggle"`
}

// Load reads the given .env files into the process environment and parses
// it. Without files the default .env is tried and a missing file is ignored.
// Variables already set in the environment win over .env values.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return nil, errors.Join(ErrLoadingEnvFile, err)
	}
	return Parse(nil)
}

// Parse builds a Config from environ. A nil environ means the process environment.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{
		Prefix:      Prefix,
		Environment: environ,
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.LogLevel != "" {
		if _, err := logger.ParseLevel(c.LogLevel); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}
	switch logger.Format(c.LogFormat) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("invalid log format %q", c.LogFormat))
	}
	for key := range c.Features {
		if name, _ := feature.DecodeKey(feature.Key(key)); name == "" {
			return errors.Join(ErrInvalidConfig, fmt.Errorf("feature key %q has no name", key))
		}
	}
	return nil
}

// Environment returns the normalized deployment environment.
func (c *Config) Environment() environment.Environment {
	return environment.Parse(c.Env)
}

// Logger builds a logger for the configured environment writing to w.
// LogLevel and LogFormat, when set, override the environment preset.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(c.Env, c.Service),
		logger.WithOutput(w),
	}
	if c.LogLevel != "" {
		if l, err := logger.ParseLevel(c.LogLevel); err == nil {
			opts = append(opts, logger.WithLevel(l))
		}
	}
	if c.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(c.LogFormat)))
	}
	return logger.New(opts...)
}

// EngineOptions maps the configuration to engine options. When reg is not
// nil, decisions are counted by a metrics collector registered with reg
// under MetricsNamespace.
func (c *Config) EngineOptions(log *slog.Logger, reg prometheus.Registerer) []feature.Option {
	opts := []feature.Option{
		feature.WithShowLogs(c.ShowLogs),
		feature.WithLogger(log),
	}
	if reg != nil {
		opts = append(opts, feature.WithRecorder(metrics.NewCollector(c.MetricsNamespace, reg)))
	}
	return opts
}
