package swiftindicators

import (
	"github.com/rxtech-lab/argo-indicators/internal/cache"
	"github.com/rxtech-lab/argo-indicators/internal/calculator"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// Params mirrors the indicator parameters with gomobile friendly fields.
type Params struct {
	Period           int
	StdDevMultiplier float64
	FastPeriod       int
	SlowPeriod       int
	SignalPeriod     int
	KPeriod          int
	DPeriod          int
}

// NewDefaultParams returns the default parameters of the named indicator.
func NewDefaultParams(indicator string) (*Params, error) {
	kind, err := types.ParseIndicatorType(indicator)
	if err != nil {
		return nil, err
	}

	p := types.DefaultParams(kind)

	return &Params{
		Period:           p.Period,
		StdDevMultiplier: p.StdDevMultiplier,
		FastPeriod:       p.FastPeriod,
		SlowPeriod:       p.SlowPeriod,
		SignalPeriod:     p.SignalPeriod,
		KPeriod:          p.KPeriod,
		DPeriod:          p.DPeriod,
	}, nil
}

func (p *Params) toIndicatorParams() types.IndicatorParams {
	return types.IndicatorParams{
		Period:           p.Period,
		StdDevMultiplier: p.StdDevMultiplier,
		FastPeriod:       p.FastPeriod,
		SlowPeriod:       p.SlowPeriod,
		SignalPeriod:     p.SignalPeriod,
		KPeriod:          p.KPeriod,
		DPeriod:          p.DPeriod,
	}
}

// SeriesInput holds the columns of one calculation. Only the columns the
// indicator reads have to be set.
type SeriesInput struct {
	Close  FloatCollection
	High   FloatCollection
	Low    FloatCollection
	Volume FloatCollection
}

func NewSeriesInput() *SeriesInput {
	return &SeriesInput{}
}

func (s *SeriesInput) SetClose(c FloatCollection)  { s.Close = c }
func (s *SeriesInput) SetHigh(c FloatCollection)   { s.High = c }
func (s *SeriesInput) SetLow(c FloatCollection)    { s.Low = c }
func (s *SeriesInput) SetVolume(c FloatCollection) { s.Volume = c }

// Result is one calculation's output. Series are looked up by name because
// gomobile cannot return maps.
type Result struct {
	result types.IndicatorResult
}

func (r *Result) Indicator() string {
	return string(r.result.Indicator)
}

// Names lists the output series, e.g. upper, middle and lower for Bollinger Bands.
func (r *Result) Names() StringCollection {
	names := NewStringArray()
	for _, s := range r.result.Series {
		names.Add(s.Name)
	}

	return names
}

// Series returns the named output or nil if it does not exist.
func (r *Result) Series(name string) *FloatArray {
	values, ok := r.result.Get(name)
	if !ok {
		return nil
	}

	return newFloatArrayFrom(values)
}

// Indicators calculates indicators for a Swift host. Results of identical
// calls are served from a short lived cache.
type Indicators struct {
	cache      *cache.ResultCache
	calculator *calculator.Calculator
}

func NewIndicators() *Indicators {
	c := cache.NewResultCache(cache.DefaultTTL, cache.DefaultMaxEntries)

	return &Indicators{
		cache:      c,
		calculator: calculator.NewCalculator(logger.NewNopLogger(), calculator.WithCache(c)),
	}
}

// Calculate runs the named indicator. A nil params uses the indicator defaults.
func (i *Indicators) Calculate(indicator string, input *SeriesInput, params *Params) (*Result, error) {
	kind, err := types.ParseIndicatorType(indicator)
	if err != nil {
		return nil, err
	}

	p := types.DefaultParams(kind)
	if params != nil {
		p = params.toIndicatorParams()
	}

	var in types.SeriesInput
	if input != nil {
		in = types.SeriesInput{
			Close:  values(input.Close),
			High:   values(input.High),
			Low:    values(input.Low),
			Volume: values(input.Volume),
		}
	}

	result, err := i.calculator.Calculate(kind, in, p)
	if err != nil {
		return nil, err
	}

	return &Result{result: result}, nil
}

// ClearCache drops every cached result.
func (i *Indicators) ClearCache() {
	i.cache.Reset()
}
