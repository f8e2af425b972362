package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// CandleGenerator produces deterministic OHLCV candles for tests and benchmarks.
type CandleGenerator struct {
	rng *rand.Rand
}

// NewCandleGenerator creates a generator. The same seed always yields the same candles.
func NewCandleGenerator(seed int64) *CandleGenerator {
	return &CandleGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// CandleConfig configures generated candles.
type CandleConfig struct {
	Symbol     string
	StartTime  time.Time
	Interval   time.Duration
	Count      int
	StartPrice float64
	// Volatility is the standard deviation of the per candle return
	Volatility float64
	VolumeBase float64
	// ZeroVolumeEvery sets every n-th volume to zero when positive
	ZeroVolumeEvery int
	// MissingCloseEvery sets every n-th close to NaN when positive
	MissingCloseEvery int
}

// DefaultCandleConfig returns one day of minute candles around 100.
func DefaultCandleConfig() CandleConfig {
	return CandleConfig{
		Symbol:     "TEST",
		StartTime:  time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:   time.Minute,
		Count:      390,
		StartPrice: 100,
		Volatility: 0.002,
		VolumeBase: 10000,
	}
}

// Generate follows a geometric random walk. High and low always bracket open and close.
func (g *CandleGenerator) Generate(config CandleConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	price := config.StartPrice

	for i := range data {
		open := price
		closing := math.Max(open*math.Exp(config.Volatility*g.normal()), 0.01)

		spread := config.Volatility * open
		high := math.Max(open, closing) + g.rng.Float64()*spread
		low := math.Max(math.Min(open, closing)-g.rng.Float64()*spread, 0.01)

		volume := config.VolumeBase * (0.5 + g.rng.Float64())
		if config.ZeroVolumeEvery > 0 && (i+1)%config.ZeroVolumeEvery == 0 {
			volume = 0
		}

		data[i] = types.MarketData{
			Symbol: config.Symbol,
			Time:   config.StartTime.Add(time.Duration(i) * config.Interval),
			Open:   round(open, 4),
			High:   round(high, 4),
			Low:    round(low, 4),
			Close:  round(closing, 4),
			Volume: round(volume, 2),
		}

		if config.MissingCloseEvery > 0 && (i+1)%config.MissingCloseEvery == 0 {
			data[i].Close = math.NaN()
		}

		price = closing
	}

	return data
}

// GenerateSymbols generates config.Count candles for each symbol.
func (g *CandleGenerator) GenerateSymbols(symbols []string, config CandleConfig) []types.MarketData {
	var all []types.MarketData

	for _, symbol := range symbols {
		c := config
		c.Symbol = symbol
		all = append(all, g.Generate(c)...)
	}

	return all
}

// Box-Muller
func (g *CandleGenerator) normal() float64 {
	u1 := 1 - g.rng.Float64()
	u2 := g.rng.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func round(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
