package analysis

import (
	"math"
	"sort"
)

// Median returns the median of values, averaging the two middle elements
// for an even count. It returns NaN for an empty slice.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// RollingMedian computes, for each index i, the median of the window values
// ending at i (inclusive). Indexes with fewer than window values of history
// are NaN.
func RollingMedian(series []float64, window int) []float64 {
	out := make([]float64, len(series))
	for i := range series {
		if window <= 0 || i+1 < window {
			out[i] = math.NaN()
			continue
		}
		out[i] = Median(series[i+1-window : i+1])
	}
	return out
}

// FoldChange divides each value by its rolling median. The result is NaN
// where the median is missing or zero.
func FoldChange(series []float64, window int) []float64 {
	medians := RollingMedian(series, window)
	out := make([]float64, len(series))
	for i, v := range series {
		m := medians[i]
		if math.IsNaN(m) || m == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = v / m
	}
	return out
}
