package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDiv(t *testing.T) {
	const eps = 1e-12

	t.Run("regular_positive", func(t *testing.T) {
		require.InDelta(t, 2.5, SafeDiv(5, 2), 1e-12)
	})
	t.Run("regular_negative", func(t *testing.T) {
		require.InDelta(t, -2.5, SafeDiv(-5, 2), 1e-12)
		require.InDelta(t, -2.5, SafeDiv(5, -2), 1e-12)
		require.InDelta(t, 2.5, SafeDiv(-5, -2), 1e-12)
	})
	t.Run("zero_denominator", func(t *testing.T) {
		assert.Equal(t, 0.0, SafeDiv(123, 0))
	})
	t.Run("tiny_denominator_below_eps", func(t *testing.T) {
		d := eps / 10
		assert.Equal(t, 0.0, SafeDiv(1, d))
		assert.Equal(t, 0.0, SafeDiv(1, -d))
	})
}

func TestRound2(t *testing.T) {
	t.Run("rounds_to_nearest", func(t *testing.T) {
		assert.Equal(t, 1.24, Round2(1.236))
		assert.Equal(t, 1.23, Round2(1.234))
	})
	t.Run("negative_values", func(t *testing.T) {
		assert.Equal(t, -1.23, Round2(-1.234))
	})
	t.Run("already_two_decimals", func(t *testing.T) {
		assert.Equal(t, 42.42, Round2(42.42))
	})
	t.Run("nan_and_inf_collapse_to_zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Round2(math.NaN()))
		assert.Equal(t, 0.0, Round2(math.Inf(1)))
		assert.Equal(t, 0.0, Round2(math.Inf(-1)))
	})
}
