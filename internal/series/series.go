// Package series converts between candles, kernel input columns and the
// nullable forms used by the API and the result writer.
package series

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Columns splits candles into the close, high, low and volume columns a
// kernel consumes. A NaN close falls back to open, then high, then low and
// finally 0, so that sparse feeds still produce a usable close series.
func Columns(data []types.MarketData) types.SeriesInput {
	in := types.SeriesInput{
		Close:  make([]float64, len(data)),
		High:   make([]float64, len(data)),
		Low:    make([]float64, len(data)),
		Volume: make([]float64, len(data)),
	}

	for i, candle := range data {
		in.Close[i] = closePrice(candle)
		in.High[i] = candle.High
		in.Low[i] = candle.Low
		in.Volume[i] = candle.Volume
	}

	return in
}

func closePrice(candle types.MarketData) float64 {
	for _, v := range []float64{candle.Close, candle.Open, candle.High, candle.Low} {
		if !math.IsNaN(v) {
			return v
		}
	}

	return 0
}

// ToOptional maps NaN to None.
func ToOptional(values []float64) []optional.Option[float64] {
	out := make([]optional.Option[float64], len(values))

	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = optional.None[float64]()
		} else {
			out[i] = optional.Some(v)
		}
	}

	return out
}

// ToNullable maps NaN to nil. Encoders render nil as null.
func ToNullable(values []float64) []*float64 {
	out := make([]*float64, len(values))

	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}

		value := v
		out[i] = &value
	}

	return out
}

// FromNullable is the inverse of ToNullable.
func FromNullable(values []*float64) []float64 {
	if values == nil {
		return nil
	}

	out := make([]float64, len(values))

	for i, v := range values {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}

	return out
}

// Clone returns a copy of values. A nil slice stays nil.
func Clone(values []float64) []float64 {
	if values == nil {
		return nil
	}

	out := make([]float64, len(values))
	copy(out, values)

	return out
}
