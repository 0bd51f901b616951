package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/featuretoggle/pkg/logger"
)

func TestError(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))

	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
}

func TestFeatureAttrs(t *testing.T) {
	assert.Equal(t, slog.String("feature", "beta"), logger.Feature("beta"))
	assert.Equal(t, slog.String("variant", "b"), logger.Variant("b"))
	assert.Equal(t, slog.Attr{}, logger.Variant(""))
	assert.Equal(t, slog.String("rule_key", "beta#b"), logger.RuleKey("beta#b"))
	assert.Equal(t, slog.Attr{}, logger.RuleKey(""))
	assert.Equal(t, slog.String("rule", "default"), logger.RuleCategory("default"))
	assert.Equal(t, slog.String("engine_id", "abc"), logger.EngineID("abc"))
	assert.Equal(t, slog.String("component", "cli"), logger.Component("cli"))
}

func TestResult(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Result(nil))

	attr := logger.Result("yes")
	assert.Equal(t, "result", attr.Key)
	assert.Equal(t, "yes", attr.Value.Any())

	attr = logger.Result(false)
	assert.Equal(t, slog.KindBool, attr.Value.Kind())
}
