// Package calculator runs indicator kernels on behalf of the CLI, the batch
// runner and the HTTP API. It owns output allocation, result naming, caching
// and metrics; the kernels themselves stay pure.
package calculator

import (
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/cache"
	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/metrics"
	"github.com/rxtech-lab/argo-indicators/internal/series"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// Output series names.
const (
	SeriesUpper     = "upper"
	SeriesMiddle    = "middle"
	SeriesLower     = "lower"
	SeriesMACD      = "macd"
	SeriesSignal    = "signal"
	SeriesHistogram = "histogram"
	SeriesK         = "k"
	SeriesD         = "d"
)

type Calculator struct {
	cache   *cache.ResultCache
	metrics *metrics.Metrics
	logger  *logger.Logger
}

type Option func(*Calculator)

// WithCache memoizes results in c.
func WithCache(c *cache.ResultCache) Option {
	return func(calc *Calculator) {
		calc.cache = c
	}
}

// WithMetrics records calculation and cache metrics in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(calc *Calculator) {
		calc.metrics = m
	}
}

func NewCalculator(log *logger.Logger, opts ...Option) *Calculator {
	if log == nil {
		log = logger.NewNopLogger()
	}

	c := &Calculator{logger: log}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Calculate runs the kernel for kind over in. Only the columns the indicator
// reads need to be set. The returned result is owned by the caller.
func (c *Calculator) Calculate(kind types.IndicatorType, in types.SeriesInput, params types.IndicatorParams) (types.IndicatorResult, error) {
	if !known(kind) {
		return types.IndicatorResult{}, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %q is not supported", kind)
	}

	in = usedColumns(kind, in)

	var key cache.Key
	if c.cache != nil {
		key = cache.NewKey(kind, params, in)

		if cached, ok := c.cache.Get(key); ok {
			c.metrics.ObserveCache(true)
			c.logger.Debug("Indicator result served from cache",
				zap.String("indicator", string(kind)),
				zap.Int("points", in.Len()),
			)

			return cached, nil
		}

		c.metrics.ObserveCache(false)
	}

	start := time.Now()
	outputs, err := run(kind, in, params)
	elapsed := time.Since(start)

	c.metrics.ObserveCalculation(string(kind), in.Len(), elapsed, err)

	if err != nil {
		c.logger.Debug("Indicator calculation rejected",
			zap.String("indicator", string(kind)),
			zap.Int("points", in.Len()),
			zap.Error(err),
		)

		return types.IndicatorResult{}, err
	}

	result := types.IndicatorResult{
		Indicator: kind,
		Params:    params,
		Series:    outputs,
	}

	if c.cache != nil {
		c.cache.Set(key, result)
	}

	c.logger.Debug("Indicator calculated",
		zap.String("indicator", string(kind)),
		zap.Int("points", in.Len()),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}

// CalculateMarketData splits candles into columns and calculates kind over them.
func (c *Calculator) CalculateMarketData(kind types.IndicatorType, data []types.MarketData, params types.IndicatorParams) (types.IndicatorResult, error) {
	return c.Calculate(kind, series.Columns(data), params)
}

func known(kind types.IndicatorType) bool {
	for _, t := range types.AllIndicatorTypes {
		if t == kind {
			return true
		}
	}

	return false
}

// usedColumns drops the columns kind does not read so that they do not
// affect the cache key.
func usedColumns(kind types.IndicatorType, in types.SeriesInput) types.SeriesInput {
	out := types.SeriesInput{Close: in.Close}

	if kind.NeedsOHLC() {
		out.High = in.High
		out.Low = in.Low
	}

	if kind.NeedsVolume() {
		out.Volume = in.Volume
	}

	return out
}

// periodKernels share the single input, single period, single output shape.
var periodKernels = map[types.IndicatorType]func(prices []float64, period int, result []float64) error{
	types.IndicatorTypeSMA: indicator.SMA,
	types.IndicatorTypeEMA: indicator.EMA,
	types.IndicatorTypeWMA: indicator.WMA,
	types.IndicatorTypeRSI: indicator.RSI,
}

func run(kind types.IndicatorType, in types.SeriesInput, p types.IndicatorParams) ([]types.NamedSeries, error) {
	n := in.Len()

	switch kind {
	case types.IndicatorTypeSMA, types.IndicatorTypeEMA, types.IndicatorTypeWMA, types.IndicatorTypeRSI:
		result := make([]float64, n)
		if err := periodKernels[kind](in.Close, p.Period, result); err != nil {
			return nil, err
		}

		return []types.NamedSeries{{Name: string(kind), Values: result}}, nil

	case types.IndicatorTypeBollingerBands:
		upper, middle, lower := make([]float64, n), make([]float64, n), make([]float64, n)
		if err := indicator.BollingerBands(in.Close, p.Period, p.StdDevMultiplier, upper, middle, lower); err != nil {
			return nil, err
		}

		return []types.NamedSeries{
			{Name: SeriesUpper, Values: upper},
			{Name: SeriesMiddle, Values: middle},
			{Name: SeriesLower, Values: lower},
		}, nil

	case types.IndicatorTypeMACD:
		macd, signal, histogram := make([]float64, n), make([]float64, n), make([]float64, n)
		if err := indicator.MACD(in.Close, p.FastPeriod, p.SlowPeriod, p.SignalPeriod, macd, signal, histogram); err != nil {
			return nil, err
		}

		return []types.NamedSeries{
			{Name: SeriesMACD, Values: macd},
			{Name: SeriesSignal, Values: signal},
			{Name: SeriesHistogram, Values: histogram},
		}, nil

	case types.IndicatorTypeStochastic:
		k, d := make([]float64, n), make([]float64, n)
		if err := indicator.Stochastic(in.High, in.Low, in.Close, p.KPeriod, p.DPeriod, k, d); err != nil {
			return nil, err
		}

		return []types.NamedSeries{
			{Name: SeriesK, Values: k},
			{Name: SeriesD, Values: d},
		}, nil

	case types.IndicatorTypeVWAP:
		result := make([]float64, n)
		if err := indicator.VWAP(in.High, in.Low, in.Close, in.Volume, result); err != nil {
			return nil, err
		}

		return []types.NamedSeries{{Name: string(kind), Values: result}}, nil

	case types.IndicatorTypeOBV:
		result := make([]float64, n)
		if err := indicator.OBV(in.Close, in.Volume, result); err != nil {
			return nil, err
		}

		return []types.NamedSeries{{Name: string(kind), Values: result}}, nil
	}

	return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %q is not supported", kind)
}
