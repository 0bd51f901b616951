package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/featuretoggle/pkg/config"
	"github.com/dmitrymomot/featuretoggle/pkg/environment"
	"github.com/dmitrymomot/featuretoggle/pkg/feature"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Parse(map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, environment.Development, cfg.Environment())
		assert.Equal(t, "featuretoggle", cfg.Service)
		assert.False(t, cfg.ShowLogs)
		assert.Empty(t, cfg.RulesFile)
		assert.Empty(t, cfg.Features)
		assert.Equal(t, "featuretoggle", cfg.MetricsNamespace)
		assert.Empty(t, cfg.LogFormat)
	})

	t.Run("all values", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Parse(map[string]string{
			"FEATURETOGGLE_ENV":               "prod",
			"FEATURETOGGLE_SERVICE":           "checkout",
			"FEATURETOGGLE_SHOW_LOGS":         "true",
			"FEATURETOGGLE_LOG_LEVEL":         "warn",
			"FEATURETOGGLE_LOG_FORMAT":        "text",
			"FEATURETOGGLE_RULES_FILE":        "/tmp/rules.yaml",
			"FEATURETOGGLE_FEATURES":          "beta=true,checkout#b=false",
			"FEATURETOGGLE_METRICS_NAMESPACE": "shop",
		})
		require.NoError(t, err)
		assert.Equal(t, environment.Production, cfg.Environment())
		assert.Equal(t, "checkout", cfg.Service)
		assert.True(t, cfg.ShowLogs)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "/tmp/rules.yaml", cfg.RulesFile)
		assert.Equal(t, map[string]bool{"beta": true, "checkout#b": false}, cfg.Features)
		assert.Equal(t, "shop", cfg.MetricsNamespace)
	})

	t.Run("unprefixed variables are ignored", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Parse(map[string]string{"SHOW_LOGS": "true"})
		require.NoError(t, err)
		assert.False(t, cfg.ShowLogs)
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(map[string]string{"FEATURETOGGLE_SHOW_LOGS": "maybe"})
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("invalid feature value", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(map[string]string{"FEATURETOGGLE_FEATURES": "beta=sometimes"})
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("feature without name", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(map[string]string{"FEATURETOGGLE_FEATURES": "#b=true"})
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(map[string]string{"FEATURETOGGLE_LOG_FORMAT": "xml"})
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()
		_, err := config.Parse(map[string]string{"FEATURETOGGLE_LOG_LEVEL": "loud"})
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FEATURETOGGLE_SERVICE=from-file\nFEATURETOGGLE_SHOW_LOGS=true\n"), 0o600))

	t.Setenv("FEATURETOGGLE_SHOW_LOGS", "false")
	t.Setenv("FEATURETOGGLE_SERVICE", "")
	require.NoError(t, os.Unsetenv("FEATURETOGGLE_SERVICE"))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Service)
	assert.False(t, cfg.ShowLogs, "process environment wins over the file")

	_, err = config.Load(filepath.Join(dir, "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLogger(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse(map[string]string{
		"FEATURETOGGLE_ENV":       "production",
		"FEATURETOGGLE_LOG_LEVEL": "debug",
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	log := cfg.Logger(buf)
	log.Debug("visible at debug")
	assert.Contains(t, buf.String(), `"env":"production"`)
	assert.Contains(t, buf.String(), `"service":"featuretoggle"`)
	assert.True(t, log.Enabled(t.Context(), slog.LevelDebug))

	t.Run("format overrides environment preset", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Parse(map[string]string{
			"FEATURETOGGLE_ENV":        "production",
			"FEATURETOGGLE_LOG_FORMAT": "text",
		})
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		cfg.Logger(buf).Info("hello")
		assert.Contains(t, buf.String(), "env=production")
		assert.NotContains(t, buf.String(), `"env"`)
	})
}

func TestEngineOptions(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse(map[string]string{"FEATURETOGGLE_SHOW_LOGS": "true"})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	e, err := feature.New(map[string]any{"beta": true}, cfg.EngineOptions(cfg.Logger(buf), nil)...)
	require.NoError(t, err)

	v, err := e.IsVisible("beta", "", nil)
	require.NoError(t, err)
	assert.True(t, v)
	assert.Contains(t, buf.String(), "feature=beta")

	t.Run("metrics", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Parse(map[string]string{"FEATURETOGGLE_METRICS_NAMESPACE": "shop"})
		require.NoError(t, err)

		reg := prometheus.NewRegistry()
		e, err := feature.New(map[string]any{"beta": true}, cfg.EngineOptions(cfg.Logger(&bytes.Buffer{}), reg)...)
		require.NoError(t, err)
		require.True(t, mustVisible(t, e, "beta"))
		require.False(t, mustVisible(t, e, "gamma"))

		families, err := reg.Gather()
		require.NoError(t, err)
		names := make([]string, 0, len(families))
		var decisions float64
		for _, mf := range families {
			names = append(names, mf.GetName())
			for _, m := range mf.GetMetric() {
				decisions += m.GetCounter().GetValue()
			}
		}
		assert.Equal(t, []string{"shop_decisions_total"}, names)
		assert.Equal(t, float64(2), decisions)
	})
}

func mustVisible(t *testing.T, e *feature.Engine, name string) bool {
	t.Helper()
	v, err := e.IsVisible(name, "", nil)
	require.NoError(t, err)
	return v
}
