package swiftindicators_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	swiftindicators "github.com/rxtech-lab/argo-indicators/pkg/swift-indicators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floats(values ...float64) *swiftindicators.FloatArray {
	array := swiftindicators.NewFloatArray()
	for _, v := range values {
		array.Add(v)
	}

	return array
}

func TestGetIndicatorNames(t *testing.T) {
	names := swiftindicators.GetIndicatorNames()
	assert.Equal(t, 9, names.Size())
	assert.Equal(t, "sma", names.Get(0))
}

func TestGetConfigSchema(t *testing.T) {
	assert.Contains(t, swiftindicators.GetConfigSchema(), "jobs")
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, swiftindicators.GetVersion())
}

func TestNewDefaultParams(t *testing.T) {
	params, err := swiftindicators.NewDefaultParams("macd")
	require.NoError(t, err)
	assert.Equal(t, 12, params.FastPeriod)
	assert.Equal(t, 26, params.SlowPeriod)
	assert.Equal(t, 9, params.SignalPeriod)

	_, err = swiftindicators.NewDefaultParams("ichimoku")
	assert.Error(t, err)
}

func TestCalculateSMA(t *testing.T) {
	input := swiftindicators.NewSeriesInput()
	input.SetClose(floats(1, 2, 3, 4, 5))

	result, err := swiftindicators.NewIndicators().Calculate("sma", input, &swiftindicators.Params{Period: 3})
	require.NoError(t, err)
	assert.Equal(t, "sma", result.Indicator())
	assert.Equal(t, 1, result.Names().Size())

	sma := result.Series("sma")
	require.NotNil(t, sma)
	assert.True(t, math.IsNaN(sma.Get(1)))
	assert.InDelta(t, 2.0, sma.Get(2), 1e-9)
	assert.InDelta(t, 4.0, sma.Get(4), 1e-9)
	assert.Nil(t, result.Series("upper"))
}

func TestCalculateUsesDefaultsForNilParams(t *testing.T) {
	closes := swiftindicators.NewFloatArray()
	for i := 0; i < 30; i++ {
		closes.Add(float64(100 + i))
	}

	input := swiftindicators.NewSeriesInput()
	input.SetClose(closes)

	result, err := swiftindicators.NewIndicators().Calculate("bollinger_bands", input, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Names().Size())
	assert.Equal(t, "upper", result.Names().Get(0))
}

func TestCalculateErrors(t *testing.T) {
	indicators := swiftindicators.NewIndicators()

	_, err := indicators.Calculate("ichimoku", swiftindicators.NewSeriesInput(), nil)
	assert.Error(t, err)

	input := swiftindicators.NewSeriesInput()
	input.SetClose(floats(1, 2))

	_, err = indicators.Calculate("sma", input, &swiftindicators.Params{Period: 5})
	assert.Error(t, err)

	// Stochastic needs high and low.
	_, err = indicators.Calculate("stochastic_oscillator", input, &swiftindicators.Params{KPeriod: 1, DPeriod: 1})
	assert.Error(t, err)
}

type progressRecorder struct {
	calls []string
}

func (p *progressRecorder) OnJobProgress(current, total float64, message string) {
	p.calls = append(p.calls, message)
}

func TestBatchRunner(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "market.csv")
	outputPath := filepath.Join(dir, "results.parquet")
	configPath := filepath.Join(dir, "config.yaml")

	csv := "time,symbol,open,high,low,close,volume\n" +
		"2024-01-01 09:30:00,AAPL,100,101,99,100,1000\n" +
		"2024-01-01 09:31:00,AAPL,100,102,100,101,1500\n" +
		"2024-01-01 09:32:00,AAPL,101,103,101,102,1200\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o600))

	config := "version: " + swiftindicators.GetVersion() + "\n" +
		"data_path: " + csvPath + "\n" +
		"output_path: " + outputPath + "\n" +
		"jobs:\n" +
		"  - {name: aapl-obv, symbol: AAPL, indicator: obv}\n"
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o600))

	helper := &progressRecorder{}
	runner := swiftindicators.NewBatchRunner(helper)

	path, err := runner.Run(configPath)
	require.NoError(t, err)
	assert.Equal(t, outputPath, path)
	assert.Equal(t, []string{"aapl-obv completed"}, helper.calls)
	assert.False(t, runner.Cancel())
}
