package indicator

// Stochastic computes the Stochastic Oscillator.
//
// %K at index i compares close[i] with the lowest low and highest high of the
// last kPeriod candles. When that range is zero %K is 50. %D is the
// SMA(dPeriod) of %K and stays NaN until dPeriod defined %K values exist.
func Stochastic(high, low, close []float64, kPeriod, dPeriod int, k, d []float64) error {
	n, err := inputLength("Stochastic", high, low, close)
	if err != nil {
		return err
	}

	if err := checkOutputs("Stochastic", n, k, d); err != nil {
		return err
	}

	if err := checkPeriod("Stochastic", "kPeriod", kPeriod, n); err != nil {
		return err
	}

	if err := checkPeriod("Stochastic", "dPeriod", dPeriod, n); err != nil {
		return err
	}

	fillNaN(k[:kPeriod-1])

	for i := kPeriod - 1; i < n; i++ {
		from := i - kPeriod + 1
		highest := high[from]
		lowest := low[from]

		for j := from + 1; j <= i; j++ {
			highest = max(highest, high[j])
			lowest = min(lowest, low[j])
		}

		rng := highest - lowest
		if rng == 0 {
			k[i] = 50

			continue
		}

		k[i] = 100 * (close[i] - lowest) / rng
	}

	sma(k, dPeriod, d)

	return nil
}
