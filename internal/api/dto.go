package api

import "github.com/rxtech-lab/argo-indicators/internal/types"

// CalculateRequest is the body of POST /api/v1/indicators/{indicator}.
// Only the columns the indicator reads are required.
type CalculateRequest struct {
	Close  []float64        `json:"close"`
	High   []float64        `json:"high,omitempty"`
	Low    []float64        `json:"low,omitempty"`
	Volume []float64        `json:"volume,omitempty"`
	Params types.ParamsSpec `json:"params"`
}

// SeriesResponse is one output line. Undefined points are null.
type SeriesResponse struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

type CalculateResponse struct {
	Indicator types.IndicatorType   `json:"indicator"`
	Params    types.IndicatorParams `json:"params"`
	Series    []SeriesResponse      `json:"series"`
}

// IndicatorInfo describes one supported indicator in GET /api/v1/indicators.
type IndicatorInfo struct {
	Name          types.IndicatorType   `json:"name"`
	DefaultParams types.IndicatorParams `json:"default_params"`
	NeedsOHLC     bool                  `json:"needs_ohlc"`
	NeedsVolume   bool                  `json:"needs_volume"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
