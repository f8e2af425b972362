package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestKnownValues() {
	prices := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	n := len(prices)
	upper, middle, lower := make([]float64, n), make([]float64, n), make([]float64, n)

	suite.NoError(BollingerBands(prices, 8, 2.0, upper, middle, lower))

	suite.Equal(7, firstDefined(middle))
	suite.Equal(5.0, middle[7])
	suite.Equal(9.0, upper[7])
	suite.Equal(1.0, lower[7])
}

func (suite *BollingerBandsTestSuite) TestBandsAreSymmetricAroundSMA() {
	prices := generatePrices(50)
	n := len(prices)
	upper, middle, lower := make([]float64, n), make([]float64, n), make([]float64, n)
	sma := make([]float64, n)
	period := 20

	suite.Require().NoError(BollingerBands(prices, period, 2.5, upper, middle, lower))
	suite.Require().NoError(SMA(prices, period, sma))

	suite.True(definedFrom(upper, period-1))
	suite.True(definedFrom(lower, period-1))

	for i := period - 1; i < n; i++ {
		suite.InDelta(sma[i], middle[i], 1e-12)
		suite.InDelta(upper[i]-middle[i], middle[i]-lower[i], 1e-9)
		suite.GreaterOrEqual(upper[i], middle[i])
	}
}

func (suite *BollingerBandsTestSuite) TestConstantSeriesCollapsesBands() {
	prices := filled(10, 42)
	upper, middle, lower := make([]float64, 10), make([]float64, 10), make([]float64, 10)

	suite.NoError(BollingerBands(prices, 5, 2, upper, middle, lower))

	for i := 4; i < 10; i++ {
		suite.Equal(42.0, upper[i])
		suite.Equal(42.0, middle[i])
		suite.Equal(42.0, lower[i])
	}
}

func (suite *BollingerBandsTestSuite) TestValidation() {
	prices := []float64{1, 2, 3, 4}
	buf := func() []float64 { return make([]float64, 4) }

	testCases := []struct {
		name       string
		period     int
		multiplier float64
		upper      []float64
		code       errors.ErrorCode
	}{
		{name: "zero period", period: 0, multiplier: 2, upper: buf(), code: errors.ErrCodeInvalidPeriod},
		{name: "period too long", period: 5, multiplier: 2, upper: buf(), code: errors.ErrCodeInvalidLength},
		{name: "zero multiplier", period: 2, multiplier: 0, upper: buf(), code: errors.ErrCodeInvalidParameter},
		{name: "negative multiplier", period: 2, multiplier: -1, upper: buf(), code: errors.ErrCodeInvalidParameter},
		{name: "NaN multiplier", period: 2, multiplier: math.NaN(), upper: buf(), code: errors.ErrCodeInvalidParameter},
		{name: "nil upper", period: 2, multiplier: 2, upper: nil, code: errors.ErrCodeInvalidBuffer},
		{name: "short upper", period: 2, multiplier: 2, upper: make([]float64, 3), code: errors.ErrCodeInvalidBuffer},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			middle := filled(4, 1)
			err := BollingerBands(prices, tc.period, tc.multiplier, tc.upper, middle, buf())
			suite.Error(err)
			suite.Equal(tc.code, errors.GetCode(err))
			suite.Equal(filled(4, 1), middle)
		})
	}
}
