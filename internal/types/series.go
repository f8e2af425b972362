package types

// SeriesInput holds the aligned input columns for one calculation.
// Only the columns an indicator needs must be set.
type SeriesInput struct {
	Close  []float64
	High   []float64
	Low    []float64
	Volume []float64
}

// Len returns the length of the close column.
func (s SeriesInput) Len() int {
	return len(s.Close)
}

// NamedSeries is one output line of an indicator, e.g. "upper" for Bollinger Bands.
type NamedSeries struct {
	Name   string
	Values []float64
}

// IndicatorResult is the full output of one indicator calculation.
// Every series has the same length as the input.
type IndicatorResult struct {
	Indicator IndicatorType
	Params    IndicatorParams
	Series    []NamedSeries
}

// Get returns the values of the named output series.
func (r IndicatorResult) Get(name string) ([]float64, bool) {
	for _, s := range r.Series {
		if s.Name == name {
			return s.Values, true
		}
	}

	return nil, false
}

// Clone returns a deep copy of the result.
func (r IndicatorResult) Clone() IndicatorResult {
	out := IndicatorResult{
		Indicator: r.Indicator,
		Params:    r.Params,
		Series:    make([]NamedSeries, len(r.Series)),
	}

	for i, s := range r.Series {
		values := make([]float64, len(s.Values))
		copy(values, s.Values)
		out.Series[i] = NamedSeries{Name: s.Name, Values: values}
	}

	return out
}
