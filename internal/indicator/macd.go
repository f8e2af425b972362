package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// MACD computes the Moving Average Convergence Divergence line, its signal
// line and the histogram.
//
// The MACD line is EMA(fastPeriod) - EMA(slowPeriod) from index slowPeriod-1.
// The signal line is the EMA(signalPeriod) of the MACD line, computed over the
// sub-series that starts at the first defined MACD value so that the EMA seed
// only sees defined points. When fewer than signalPeriod MACD values are
// defined the signal line and histogram stay NaN.
func MACD(prices []float64, fastPeriod, slowPeriod, signalPeriod int, macd, signal, histogram []float64) error {
	n, err := inputLength("MACD", prices)
	if err != nil {
		return err
	}

	if err := checkOutputs("MACD", n, macd, signal, histogram); err != nil {
		return err
	}

	if fastPeriod <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "MACD: fastPeriod must be a positive integer, got %d", fastPeriod)
	}

	if fastPeriod >= slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidParameter, "MACD: fastPeriod %d must be less than slowPeriod %d", fastPeriod, slowPeriod)
	}

	if err := checkPeriod("MACD", "slowPeriod", slowPeriod, n); err != nil {
		return err
	}

	if err := checkPeriod("MACD", "signalPeriod", signalPeriod, n); err != nil {
		return err
	}

	fastEMA := make([]float64, n)
	slowEMA := make([]float64, n)

	ema(prices, fastPeriod, fastEMA)
	ema(prices, slowPeriod, slowEMA)

	start := slowPeriod - 1
	fillNaN(macd[:start])

	for i := start; i < n; i++ {
		if math.IsNaN(fastEMA[i]) || math.IsNaN(slowEMA[i]) {
			macd[i] = math.NaN()
		} else {
			macd[i] = fastEMA[i] - slowEMA[i]
		}
	}

	firstValid := start
	for firstValid < n && math.IsNaN(macd[firstValid]) {
		firstValid++
	}

	fillNaN(signal)

	if n-firstValid >= signalPeriod {
		ema(macd[firstValid:], signalPeriod, signal[firstValid:])
	}

	for i := range histogram {
		if math.IsNaN(macd[i]) || math.IsNaN(signal[i]) {
			histogram[i] = math.NaN()
		} else {
			histogram[i] = macd[i] - signal[i]
		}
	}

	return nil
}
