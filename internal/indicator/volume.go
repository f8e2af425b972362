package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// VWAP computes the cumulative volume weighted average of the typical price
// (high+low+close)/3 from the first candle. result[i] is NaN while the
// cumulative volume is exactly zero.
func VWAP(high, low, close, volume []float64, result []float64) error {
	n, err := inputLength("VWAP", high, low, close, volume)
	if err != nil {
		return err
	}

	if err := checkOutputs("VWAP", n, result); err != nil {
		return err
	}

	cumulativePriceVolume := 0.0
	cumulativeVolume := 0.0

	for i := 0; i < n; i++ {
		typicalPrice := (high[i] + low[i] + close[i]) / 3
		cumulativePriceVolume += typicalPrice * volume[i]
		cumulativeVolume += volume[i]

		if cumulativeVolume == 0 {
			result[i] = math.NaN()

			continue
		}

		result[i] = cumulativePriceVolume / cumulativeVolume
	}

	return nil
}

// OBV computes On-Balance Volume. result[0] is volume[0]; afterwards the
// volume is added on an up close, subtracted on a down close and ignored when
// the close is unchanged.
func OBV(close, volume []float64, result []float64) error {
	n, err := inputLength("OBV", close, volume)
	if err != nil {
		return err
	}

	if err := checkOutputs("OBV", n, result); err != nil {
		return err
	}

	if n == 0 {
		return errors.New(errors.ErrCodeInvalidLength, "OBV: series must not be empty")
	}

	result[0] = volume[0]

	for i := 1; i < n; i++ {
		switch {
		case close[i] > close[i-1]:
			result[i] = result[i-1] + volume[i]
		case close[i] < close[i-1]:
			result[i] = result[i-1] - volume[i]
		default:
			result[i] = result[i-1]
		}
	}

	return nil
}
