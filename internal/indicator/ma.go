package indicator

// SMA computes the simple moving average of prices over period into result.
// result[i] is NaN for i < period-1.
func SMA(prices []float64, period int, result []float64) error {
	if err := checkSingle("SMA", prices, period, result); err != nil {
		return err
	}

	sma(prices, period, result)

	return nil
}

func sma(prices []float64, period int, result []float64) {
	fillNaN(result[:period-1])

	for i := period - 1; i < len(prices); i++ {
		result[i] = mean(prices[i-period+1 : i+1])
	}
}

// WMA computes the linearly weighted moving average of prices into result.
// The oldest sample in each window has weight 1 and the newest has weight period.
func WMA(prices []float64, period int, result []float64) error {
	if err := checkSingle("WMA", prices, period, result); err != nil {
		return err
	}

	fillNaN(result[:period-1])

	weightSum := float64(period*(period+1)) / 2

	for i := period - 1; i < len(prices); i++ {
		window := prices[i-period+1 : i+1]
		weighted := 0.0

		for j, p := range window {
			weighted += p * float64(j+1)
		}

		result[i] = weighted / weightSum
	}

	return nil
}
