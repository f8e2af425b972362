package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/calculator"
	"github.com/rxtech-lab/argo-indicators/internal/datasource"
	"github.com/rxtech-lab/argo-indicators/internal/series"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/urfave/cli/v3"
)

// computeOutput is what the compute command prints.
type computeOutput struct {
	Symbol    string                `json:"symbol"`
	Indicator types.IndicatorType   `json:"indicator"`
	Params    types.IndicatorParams `json:"params"`
	Points    []computePoint        `json:"points"`
}

type computePoint struct {
	Time   time.Time           `json:"time"`
	Values map[string]*float64 `json:"values"`
}

func computeCommand() *cli.Command {
	timestampConfig := cli.TimestampConfig{
		Layouts: []string{time.RFC3339, "2006-01-02"},
	}

	return &cli.Command{
		Name:  "compute",
		Usage: "Calculate one indicator over a symbol of a parquet or CSV file and print it as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "Parquet or CSV file with market data", Required: true},
			&cli.StringFlag{Name: "symbol", Aliases: []string{"s"}, Usage: "Symbol to read", Required: true},
			&cli.StringFlag{Name: "indicator", Aliases: []string{"i"}, Usage: "Indicator name (e.g. sma, rsi, macd)", Required: true},
			&cli.IntFlag{Name: "period", Usage: "Window size for sma, ema, wma, bollinger_bands and rsi"},
			&cli.FloatFlag{Name: "multiplier", Usage: "Bollinger band width in standard deviations"},
			&cli.IntFlag{Name: "fast", Usage: "MACD fast period"},
			&cli.IntFlag{Name: "slow", Usage: "MACD slow period"},
			&cli.IntFlag{Name: "signal", Usage: "MACD signal period"},
			&cli.IntFlag{Name: "k", Usage: "Stochastic %K period"},
			&cli.IntFlag{Name: "d-period", Usage: "Stochastic %D period"},
			&cli.TimestampFlag{Name: "start", Usage: "Inclusive start time", Config: timestampConfig},
			&cli.TimestampFlag{Name: "end", Usage: "Inclusive end time", Config: timestampConfig},
		},
		Action: computeAction,
	}
}

func computeAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	kind, err := types.ParseIndicatorType(cmd.String("indicator"))
	if err != nil {
		return err
	}

	ds, err := datasource.NewDataSource(":memory:", log)
	if err != nil {
		return err
	}
	defer ds.Close()

	if err := ds.Initialize(cmd.String("data")); err != nil {
		return err
	}

	candles, err := ds.ReadSeries(cmd.String("symbol"), timestampOption(cmd, "start"), timestampOption(cmd, "end"))
	if err != nil {
		return err
	}

	if len(candles) == 0 {
		return fmt.Errorf("no candles found for symbol %q", cmd.String("symbol"))
	}

	calc := calculator.NewCalculator(log)

	result, err := calc.CalculateMarketData(kind, candles, paramsFromFlags(cmd).Resolve(kind))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.Root().Writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(buildComputeOutput(cmd.String("symbol"), candles, result))
}

func timestampOption(cmd *cli.Command, name string) optional.Option[time.Time] {
	if !cmd.IsSet(name) {
		return optional.None[time.Time]()
	}

	return optional.Some(cmd.Timestamp(name))
}

// paramsFromFlags only sets the parameters given on the command line, the
// rest fall back to the indicator defaults.
func paramsFromFlags(cmd *cli.Command) types.ParamsSpec {
	var spec types.ParamsSpec

	intFlag := func(name string) *int {
		if !cmd.IsSet(name) {
			return nil
		}

		v := int(cmd.Int(name))

		return &v
	}

	spec.Period = intFlag("period")
	spec.FastPeriod = intFlag("fast")
	spec.SlowPeriod = intFlag("slow")
	spec.SignalPeriod = intFlag("signal")
	spec.KPeriod = intFlag("k")
	spec.DPeriod = intFlag("d-period")

	if cmd.IsSet("multiplier") {
		v := cmd.Float("multiplier")
		spec.StdDevMultiplier = &v
	}

	return spec
}

func buildComputeOutput(symbol string, candles []types.MarketData, result types.IndicatorResult) computeOutput {
	out := computeOutput{
		Symbol:    symbol,
		Indicator: result.Indicator,
		Params:    result.Params,
		Points:    make([]computePoint, len(candles)),
	}

	lines := make(map[string][]*float64, len(result.Series))
	for _, line := range result.Series {
		lines[line.Name] = series.ToNullable(line.Values)
	}

	for i, candle := range candles {
		values := make(map[string]*float64, len(lines))
		for name, line := range lines {
			values[name] = line[i]
		}

		out.Points[i] = computePoint{Time: candle.Time, Values: values}
	}

	return out
}
