package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// BollingerBands computes the middle band (SMA over period) and the upper and
// lower bands at multiplier standard deviations of the raw price window.
// All three outputs are NaN for i < period-1.
func BollingerBands(prices []float64, period int, multiplier float64, upper, middle, lower []float64) error {
	n, err := inputLength("BollingerBands", prices)
	if err != nil {
		return err
	}

	if err := checkOutputs("BollingerBands", n, upper, middle, lower); err != nil {
		return err
	}

	if err := checkPeriod("BollingerBands", "period", period, n); err != nil {
		return err
	}

	if multiplier <= 0 || math.IsNaN(multiplier) {
		return errors.Newf(errors.ErrCodeInvalidParameter, "BollingerBands: multiplier must be a positive number, got %f", multiplier)
	}

	sma(prices, period, middle)
	fillNaN(upper[:period-1])
	fillNaN(lower[:period-1])

	for i := period - 1; i < n; i++ {
		sd := StdDev(prices[i-period+1:i+1], middle[i])
		upper[i] = middle[i] + multiplier*sd
		lower[i] = middle[i] - multiplier*sd
	}

	return nil
}
