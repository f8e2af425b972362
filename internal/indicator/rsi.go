package indicator

import (
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// RSI computes the Relative Strength Index with Wilder's smoothing.
//
// The average gain and loss are seeded with the simple mean of the first
// period price changes, so the first defined value is at index period and
// result[0:period] is NaN. The series must hold at least period+1 prices.
// A window without losses yields 100.
func RSI(prices []float64, period int, result []float64) error {
	n, err := inputLength("RSI", prices)
	if err != nil {
		return err
	}

	if err := checkOutputs("RSI", n, result); err != nil {
		return err
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "RSI: period must be a positive integer, got %d", period)
	}

	// one extra point is needed for the first price change
	if period >= n {
		return errors.Newf(errors.ErrCodeInvalidLength, "RSI: period %d requires more than %d prices", period, n)
	}

	gains := make([]float64, n)
	losses := make([]float64, n)

	for i := 1; i < n; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i] = change
		} else if change < 0 {
			losses[i] = -change
		}
	}

	avgGain := mean(gains[1 : period+1])
	avgLoss := mean(losses[1 : period+1])

	fillNaN(result[:period])
	result[period] = relativeStrength(avgGain, avgLoss)

	p := float64(period)

	for i := period + 1; i < n; i++ {
		avgGain = (avgGain*(p-1) + gains[i]) / p
		avgLoss = (avgLoss*(p-1) + losses[i]) / p
		result[i] = relativeStrength(avgGain, avgLoss)
	}

	return nil
}

func relativeStrength(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}
