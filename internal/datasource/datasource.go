package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// DataSource reads stored candles for indicator runs.
type DataSource interface {
	// Initialize exposes the parquet or CSV file at path as the market_data view
	Initialize(path string) error
	// ReadSeries returns the candles of symbol ordered by time, optionally limited to [start, end]
	ReadSeries(symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) ([]types.MarketData, error)
	// ListSymbols returns the distinct symbols in the data file
	ListSymbols() ([]string, error)
	// Count returns the number of candles stored for symbol
	Count(symbol string) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}
