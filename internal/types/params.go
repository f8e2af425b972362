package types

// IndicatorParams carries every tunable an indicator kernel may need.
// Fields that do not apply to a given indicator are ignored.
type IndicatorParams struct {
	Period           int     `json:"period" yaml:"period" msgpack:"period"`
	StdDevMultiplier float64 `json:"std_dev_multiplier" yaml:"std_dev_multiplier" msgpack:"std_dev_multiplier"`
	FastPeriod       int     `json:"fast_period" yaml:"fast_period" msgpack:"fast_period"`
	SlowPeriod       int     `json:"slow_period" yaml:"slow_period" msgpack:"slow_period"`
	SignalPeriod     int     `json:"signal_period" yaml:"signal_period" msgpack:"signal_period"`
	KPeriod          int     `json:"k_period" yaml:"k_period" msgpack:"k_period"`
	DPeriod          int     `json:"d_period" yaml:"d_period" msgpack:"d_period"`
}

// ParamsSpec is the user facing form of IndicatorParams. Nil fields fall back to
// the defaults of the indicator being computed.
type ParamsSpec struct {
	Period           *int     `json:"period,omitempty" yaml:"period,omitempty" jsonschema:"title=Period,description=Window size for SMA/EMA/WMA/Bollinger/RSI,minimum=1"`
	StdDevMultiplier *float64 `json:"std_dev_multiplier,omitempty" yaml:"std_dev_multiplier,omitempty" jsonschema:"title=Std Dev Multiplier,description=Bollinger band width in standard deviations"`
	FastPeriod       *int     `json:"fast_period,omitempty" yaml:"fast_period,omitempty" jsonschema:"title=Fast Period,description=MACD fast EMA period,minimum=1"`
	SlowPeriod       *int     `json:"slow_period,omitempty" yaml:"slow_period,omitempty" jsonschema:"title=Slow Period,description=MACD slow EMA period,minimum=1"`
	SignalPeriod     *int     `json:"signal_period,omitempty" yaml:"signal_period,omitempty" jsonschema:"title=Signal Period,description=MACD signal EMA period,minimum=1"`
	KPeriod          *int     `json:"k_period,omitempty" yaml:"k_period,omitempty" jsonschema:"title=K Period,description=Stochastic %K lookback,minimum=1"`
	DPeriod          *int     `json:"d_period,omitempty" yaml:"d_period,omitempty" jsonschema:"title=D Period,description=Stochastic %D smoothing,minimum=1"`
}

// DefaultParams returns the conventional parameters for an indicator.
func DefaultParams(t IndicatorType) IndicatorParams {
	switch t {
	case IndicatorTypeBollingerBands:
		return IndicatorParams{Period: 20, StdDevMultiplier: 2.0}
	case IndicatorTypeRSI:
		return IndicatorParams{Period: 14}
	case IndicatorTypeMACD:
		return IndicatorParams{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}
	case IndicatorTypeStochastic:
		return IndicatorParams{KPeriod: 14, DPeriod: 3}
	case IndicatorTypeVWAP, IndicatorTypeOBV:
		return IndicatorParams{}
	default:
		return IndicatorParams{Period: 20}
	}
}

// Resolve fills unset fields with the defaults for t.
func (s ParamsSpec) Resolve(t IndicatorType) IndicatorParams {
	p := DefaultParams(t)

	if s.Period != nil {
		p.Period = *s.Period
	}

	if s.StdDevMultiplier != nil {
		p.StdDevMultiplier = *s.StdDevMultiplier
	}

	if s.FastPeriod != nil {
		p.FastPeriod = *s.FastPeriod
	}

	if s.SlowPeriod != nil {
		p.SlowPeriod = *s.SlowPeriod
	}

	if s.SignalPeriod != nil {
		p.SignalPeriod = *s.SignalPeriod
	}

	if s.KPeriod != nil {
		p.KPeriod = *s.KPeriod
	}

	if s.DPeriod != nil {
		p.DPeriod = *s.DPeriod
	}

	return p
}

// RequiredLength is the minimum number of points a series needs before the
// indicator accepts it.
func RequiredLength(t IndicatorType, p IndicatorParams) int {
	switch t {
	case IndicatorTypeRSI:
		return p.Period + 1
	case IndicatorTypeMACD:
		return max(p.SlowPeriod, p.SignalPeriod)
	case IndicatorTypeStochastic:
		return max(p.KPeriod, p.DPeriod)
	case IndicatorTypeVWAP:
		return 0
	case IndicatorTypeOBV:
		return 1
	default:
		return p.Period
	}
}
