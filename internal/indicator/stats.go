package indicator

import "math"

// Variance returns the mean squared deviation of values from mean.
// An empty slice has zero variance.
func Variance(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0

	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}

	return sum / float64(len(values))
}

// StdDev returns the population standard deviation of values around mean.
func StdDev(values []float64, mean float64) float64 {
	return math.Sqrt(Variance(values, mean))
}
