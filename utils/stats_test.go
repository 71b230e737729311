package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsSkipMissing(t *testing.T) {
	xs := []float64{8000, math.NaN(), 1500, 4500}

	assert.InDelta(t, 4666.6667, Mean(xs), 1e-3)
	assert.Equal(t, 4500.0, Median(xs))
	assert.Equal(t, 1500.0, Min(xs))
	assert.Equal(t, 8000.0, Max(xs))
	assert.Equal(t, 3, Count(xs))
	assert.InDelta(t, 3253.2, StdDev(xs), 1e-2)
}

func TestStatsEmptyAndSingle(t *testing.T) {
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(Median([]float64{math.NaN()})))
	assert.True(t, math.IsNaN(StdDev([]float64{42})))
	assert.Equal(t, 42.0, Percentile([]float64{42}, 90))
}

func TestPercentileLinearInterpolation(t *testing.T) {
	xs := []float64{4, 1, 3, 2}

	assert.InDelta(t, 1.75, Percentile(xs, 25), 1e-9)
	assert.InDelta(t, 2.5, Percentile(xs, 50), 1e-9)
	assert.InDelta(t, 3.25, Percentile(xs, 75), 1e-9)
	assert.InDelta(t, 3.7, Percentile(xs, 90), 1e-9)
	assert.Equal(t, []float64{4, 1, 3, 2}, xs, "input must not be reordered")
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 166.67, Round2(166.6666))
	assert.True(t, math.IsNaN(Round2(math.NaN())))
}
