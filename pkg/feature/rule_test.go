package feature_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/featuretoggle/pkg/feature"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("bool becomes constant rule", func(t *testing.T) {
		t.Parallel()
		r, ok := feature.Normalize(true)
		require.True(t, ok)
		assert.Equal(t, true, r(nil, "x", ""))
		assert.Equal(t, true, r("anything", "y", "z"))

		r, ok = feature.Normalize(false)
		require.True(t, ok)
		assert.Equal(t, false, r(nil, "x", ""))
	})

	t.Run("rule is kept", func(t *testing.T) {
		t.Parallel()
		var calls int
		in := feature.Rule(func(data any, name, variant string) any {
			calls++
			return name == "x"
		})
		r, ok := feature.Normalize(in)
		require.True(t, ok)
		assert.Equal(t, true, r(nil, "x", ""))
		assert.Equal(t, 1, calls)
	})

	t.Run("function shapes are adapted", func(t *testing.T) {
		t.Parallel()
		r, ok := feature.Normalize(func(data any, name, variant string) any { return "yes" })
		require.True(t, ok)
		assert.Equal(t, "yes", r(nil, "", ""))

		r, ok = feature.Normalize(func(data any, name, variant string) bool { return data == 42 })
		require.True(t, ok)
		assert.Equal(t, true, r(42, "", ""))

		r, ok = feature.Normalize(func() bool { return true })
		require.True(t, ok)
		assert.Equal(t, true, r(nil, "", ""))
	})

	t.Run("other values are rejected", func(t *testing.T) {
		t.Parallel()
		for _, v := range []any{nil, "true", 1, feature.Rule(nil), func(string) bool { return true }} {
			_, ok := feature.Normalize(v)
			assert.False(t, ok, "%T", v)
		}
	})
}
