package errors

import "fmt"

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidLength        ErrorCode = 116
	ErrCodeInvalidBuffer        ErrorCode = 120

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound    ErrorCode = 300
	ErrCodeIndicatorCalculation ErrorCode = 302

	// Output errors (700-799)
	ErrCodeResultWriteFailed  ErrorCode = 701
	ErrCodeResultEncodeFailed ErrorCode = 702

	// Host errors (800-899)
	ErrCodeHostModuleFailed ErrorCode = 800
	ErrCodeGuestFailed      ErrorCode = 801
)

// IsValidation reports whether the code belongs to the validation range.
func (c ErrorCode) IsValidation() bool {
	return c >= 100 && c < 200
}

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:               "unknown",
	ErrCodeInvalidParameter:      "invalid_parameter",
	ErrCodeInvalidConfiguration:  "invalid_configuration",
	ErrCodeInsufficientData:      "insufficient_data",
	ErrCodeInvalidType:           "invalid_type",
	ErrCodeInvalidPeriod:         "invalid_period",
	ErrCodeMissingParameter:      "missing_parameter",
	ErrCodeInvalidVersion:        "invalid_version",
	ErrCodeInvalidLength:         "invalid_length",
	ErrCodeInvalidBuffer:         "invalid_buffer",
	ErrCodeDataNotFound:          "data_not_found",
	ErrCodeDataSourceUnavailable: "data_source_unavailable",
	ErrCodeQueryFailed:           "query_failed",
	ErrCodeNoDataFound:           "no_data_found",
	ErrCodeIndicatorNotFound:     "indicator_not_found",
	ErrCodeIndicatorCalculation:  "indicator_calculation",
	ErrCodeResultWriteFailed:     "result_write_failed",
	ErrCodeResultEncodeFailed:    "result_encode_failed",
	ErrCodeHostModuleFailed:      "host_module_failed",
	ErrCodeGuestFailed:           "guest_failed",
}

// String returns the snake_case name of the code, used in API error bodies.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("code_%d", int(c))
}
