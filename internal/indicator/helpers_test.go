package indicator

import "math"

// generatePrices returns a deterministic, gently trending and oscillating price series.
func generatePrices(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100 + 5*math.Sin(float64(i)*0.3) + 0.1*float64(i)
	}

	return prices
}

// filled returns a slice of n copies of v.
func filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

// firstDefined returns the index of the first non-NaN value, or len(values).
func firstDefined(values []float64) int {
	for i, v := range values {
		if !math.IsNaN(v) {
			return i
		}
	}

	return len(values)
}

// definedFrom reports whether values is NaN before w and finite from w on.
func definedFrom(values []float64, w int) bool {
	for i, v := range values {
		if i < w && !math.IsNaN(v) {
			return false
		}

		if i >= w && (math.IsNaN(v) || math.IsInf(v, 0)) {
			return false
		}
	}

	return true
}
