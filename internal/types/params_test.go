package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ParamsTestSuite struct {
	suite.Suite
}

func TestParamsSuite(t *testing.T) {
	suite.Run(t, new(ParamsTestSuite))
}

func intPtr(v int) *int { return &v }

func (suite *ParamsTestSuite) TestDefaultParams() {
	suite.Equal(IndicatorParams{Period: 20}, DefaultParams(IndicatorTypeSMA))
	suite.Equal(IndicatorParams{Period: 14}, DefaultParams(IndicatorTypeRSI))
	suite.Equal(IndicatorParams{Period: 20, StdDevMultiplier: 2.0}, DefaultParams(IndicatorTypeBollingerBands))
	suite.Equal(IndicatorParams{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}, DefaultParams(IndicatorTypeMACD))
	suite.Equal(IndicatorParams{KPeriod: 14, DPeriod: 3}, DefaultParams(IndicatorTypeStochastic))
	suite.Equal(IndicatorParams{}, DefaultParams(IndicatorTypeOBV))
}

func (suite *ParamsTestSuite) TestResolveKeepsExplicitValues() {
	spec := ParamsSpec{FastPeriod: intPtr(5), SignalPeriod: intPtr(0)}
	p := spec.Resolve(IndicatorTypeMACD)

	suite.Equal(5, p.FastPeriod)
	suite.Equal(26, p.SlowPeriod)
	// explicit zero must survive so the kernel can reject it
	suite.Equal(0, p.SignalPeriod)
}

func (suite *ParamsTestSuite) TestResolveEmptySpec() {
	suite.Equal(DefaultParams(IndicatorTypeBollingerBands), ParamsSpec{}.Resolve(IndicatorTypeBollingerBands))
}

func (suite *ParamsTestSuite) TestRequiredLength() {
	suite.Equal(15, RequiredLength(IndicatorTypeRSI, IndicatorParams{Period: 14}))
	suite.Equal(20, RequiredLength(IndicatorTypeSMA, IndicatorParams{Period: 20}))
	suite.Equal(26, RequiredLength(IndicatorTypeMACD, IndicatorParams{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}))
	suite.Equal(14, RequiredLength(IndicatorTypeStochastic, IndicatorParams{KPeriod: 14, DPeriod: 3}))
	suite.Equal(0, RequiredLength(IndicatorTypeVWAP, IndicatorParams{}))
	suite.Equal(1, RequiredLength(IndicatorTypeOBV, IndicatorParams{}))
}
