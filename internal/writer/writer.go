package writer

import "github.com/rxtech-lab/argo-indicators/internal/types"

// ResultWriter persists indicator results of a batch run.
type ResultWriter interface {
	// Initialize prepares the writer for Write calls
	Initialize() error
	// Write stores one row per (candle, output series). candles must align with the result series.
	Write(runID string, job string, candles []types.MarketData, result types.IndicatorResult) error
	// Finalize commits everything written and exports it, returning the output path
	Finalize() (string, error)
	// Close releases resources. It is safe to call after Finalize.
	Close() error
	// GetOutputPath returns the configured output file path
	GetOutputPath() string
}
