package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestEMABasic() {
	// period 3 gives alpha = 0.5
	prices := []float64{1, 2, 3, 4, 5}
	result := make([]float64, len(prices))

	suite.NoError(EMA(prices, 3, result))

	suite.True(math.IsNaN(result[0]))
	suite.True(math.IsNaN(result[1]))
	suite.Equal(2.0, result[2])
	suite.Equal(3.0, result[3])
	suite.Equal(4.0, result[4])
}

func (suite *EMATestSuite) TestEMASeedIsMeanOfFirstPeriod() {
	prices := generatePrices(40)
	result := make([]float64, len(prices))
	period := 10

	suite.NoError(EMA(prices, period, result))
	suite.True(definedFrom(result, period-1))

	sum := 0.0
	for _, p := range prices[:period] {
		sum += p
	}

	suite.InDelta(sum/float64(period), result[period-1], 1e-9)
}

func (suite *EMATestSuite) TestEMARecurrence() {
	prices := generatePrices(40)
	result := make([]float64, len(prices))
	period := 5
	alpha := 2.0 / float64(period+1)

	suite.NoError(EMA(prices, period, result))

	for i := period; i < len(prices); i++ {
		suite.InDelta(alpha*prices[i]+(1-alpha)*result[i-1], result[i], 1e-12)
	}
}

func (suite *EMATestSuite) TestEMAPeriodOneFollowsInput() {
	prices := []float64{5, 3, 8}
	result := make([]float64, len(prices))

	suite.NoError(EMA(prices, 1, result))
	suite.Equal(prices, result)
}

func (suite *EMATestSuite) TestEMANaNPoisonsLaterValues() {
	prices := generatePrices(12)
	prices[6] = math.NaN()
	result := make([]float64, len(prices))

	suite.NoError(EMA(prices, 3, result))

	suite.False(math.IsNaN(result[5]))

	for i := 6; i < len(prices); i++ {
		suite.True(math.IsNaN(result[i]), "index %d", i)
	}
}

func (suite *EMATestSuite) TestEMAValidation() {
	err := EMA(nil, 3, make([]float64, 3))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBuffer))

	err = EMA([]float64{1, 2, 3}, 0, make([]float64, 3))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = EMA([]float64{1, 2, 3}, 4, make([]float64, 3))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidLength))

	result := filled(3, -1)
	err = EMA([]float64{1, 2, 3}, 4, result)
	suite.Error(err)
	suite.Equal(filled(3, -1), result)
}
