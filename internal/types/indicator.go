package types

import (
	"fmt"
)

type IndicatorType string

const (
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeWMA            IndicatorType = "wma"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeStochastic     IndicatorType = "stochastic_oscillator"
	IndicatorTypeVWAP           IndicatorType = "vwap"
	IndicatorTypeOBV            IndicatorType = "obv"
)

// AllIndicatorTypes lists every indicator kind the calculator understands, in a stable order.
var AllIndicatorTypes = []IndicatorType{
	IndicatorTypeSMA,
	IndicatorTypeEMA,
	IndicatorTypeWMA,
	IndicatorTypeBollingerBands,
	IndicatorTypeRSI,
	IndicatorTypeMACD,
	IndicatorTypeStochastic,
	IndicatorTypeVWAP,
	IndicatorTypeOBV,
}

// ParseIndicatorType converts a user supplied name into an IndicatorType.
func ParseIndicatorType(name string) (IndicatorType, error) {
	for _, t := range AllIndicatorTypes {
		if string(t) == name {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown indicator type %q", name)
}

// NeedsOHLC reports whether the indicator reads the high/low columns in addition to close.
func (t IndicatorType) NeedsOHLC() bool {
	return t == IndicatorTypeStochastic || t == IndicatorTypeVWAP
}

// NeedsVolume reports whether the indicator reads the volume column.
func (t IndicatorType) NeedsVolume() bool {
	return t == IndicatorTypeVWAP || t == IndicatorTypeOBV
}
