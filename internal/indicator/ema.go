package indicator

// EMA computes the exponential moving average of prices into result.
//
// The smoothing factor is alpha = 2/(period+1). The first defined value, at
// index period-1, is the simple mean of the first period prices; after that
// result[i] = alpha*prices[i] + (1-alpha)*result[i-1]. Because of the
// recurrence a NaN price poisons every later output.
func EMA(prices []float64, period int, result []float64) error {
	if err := checkSingle("EMA", prices, period, result); err != nil {
		return err
	}

	ema(prices, period, result)

	return nil
}

func ema(prices []float64, period int, result []float64) {
	// Use alpha = 2/(span+1) to match pandas ewm with adjust=False
	alpha := 2.0 / float64(period+1)

	fillNaN(result[:period-1])
	result[period-1] = mean(prices[:period])

	for i := period; i < len(prices); i++ {
		result[i] = alpha*prices[i] + (1-alpha)*result[i-1]
	}
}
