package utils

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Descriptive statistics over float64 samples. Every helper ignores NaN
// (missing) entries and returns NaN when nothing is left to aggregate.

// Finite returns the non-NaN values of xs in their original order.
func Finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

func Mean(xs []float64) float64 {
	v := Finite(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

// StdDev is the sample standard deviation (n-1 denominator). It is NaN for
// fewer than two values.
func StdDev(xs []float64) float64 {
	v := Finite(xs)
	if len(v) < 2 {
		return math.NaN()
	}
	return stat.StdDev(v, nil)
}

func Min(xs []float64) float64 {
	v := Finite(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Min(v)
}

func Max(xs []float64) float64 {
	v := Finite(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Max(v)
}

func Median(xs []float64) float64 {
	return Percentile(xs, 50)
}

// Percentile returns the p-th percentile (0..100) using linear interpolation
// between the closest ranks: rank = p/100 * (n-1).
func Percentile(xs []float64, p float64) float64 {
	v := Finite(xs)
	if len(v) == 0 {
		return math.NaN()
	}
	sort.Float64s(v)
	if p <= 0 {
		return v[0]
	}
	if p >= 100 {
		return v[len(v)-1]
	}

	rank := p / 100 * float64(len(v)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return v[lo]
	}
	frac := rank - float64(lo)
	return v[lo] + (v[hi]-v[lo])*frac
}

// Count is the number of non-NaN values.
func Count(xs []float64) int {
	n := 0
	for _, x := range xs {
		if !math.IsNaN(x) {
			n++
		}
	}
	return n
}

// Round2 rounds half away from zero to two decimals. NaN and infinities pass
// through unchanged.
func Round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	return math.Round(f*100) / 100
}
