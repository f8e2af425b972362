package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
}

func TestSeriesSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func (suite *SeriesTestSuite) TestGet() {
	r := IndicatorResult{
		Indicator: IndicatorTypeMACD,
		Series: []NamedSeries{
			{Name: "macd", Values: []float64{1}},
			{Name: "signal", Values: []float64{2}},
		},
	}

	v, ok := r.Get("signal")
	suite.True(ok)
	suite.Equal([]float64{2}, v)

	_, ok = r.Get("histogram")
	suite.False(ok)
}

func (suite *SeriesTestSuite) TestCloneIsDeep() {
	r := IndicatorResult{
		Indicator: IndicatorTypeSMA,
		Params:    IndicatorParams{Period: 2},
		Series:    []NamedSeries{{Name: "sma", Values: []float64{1, 2, 3}}},
	}

	c := r.Clone()
	c.Series[0].Values[0] = 42

	suite.Equal(1.0, r.Series[0].Values[0])
	suite.Equal(r.Params, c.Params)
	suite.Equal(r.Indicator, c.Indicator)
}

func (suite *SeriesTestSuite) TestLen() {
	suite.Equal(3, SeriesInput{Close: []float64{1, 2, 3}}.Len())
	suite.Equal(0, SeriesInput{}.Len())
}
