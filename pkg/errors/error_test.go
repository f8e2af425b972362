package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestConstructors() {
	cause := errors.New("duckdb: no such table")

	tests := []struct {
		name    string
		err     *Error
		code    ErrorCode
		message string
		cause   error
		text    string
	}{
		{
			name:    "new",
			err:     New(ErrCodeInvalidBuffer, "SMA: output buffer is nil"),
			code:    ErrCodeInvalidBuffer,
			message: "SMA: output buffer is nil",
			text:    "[120] SMA: output buffer is nil",
		},
		{
			name:    "newf",
			err:     Newf(ErrCodeInvalidPeriod, "EMA: period must be a positive integer, got %d", -2),
			code:    ErrCodeInvalidPeriod,
			message: "EMA: period must be a positive integer, got -2",
			text:    "[108] EMA: period must be a positive integer, got -2",
		},
		{
			name:    "wrap",
			err:     Wrap(ErrCodeQueryFailed, "failed to read series", cause),
			code:    ErrCodeQueryFailed,
			message: "failed to read series",
			cause:   cause,
			text:    "[202] failed to read series: duckdb: no such table",
		},
		{
			name:    "wrapf",
			err:     Wrapf(ErrCodeQueryFailed, cause, "failed to read %s", "AAPL"),
			code:    ErrCodeQueryFailed,
			message: "failed to read AAPL",
			cause:   cause,
			text:    "[202] failed to read AAPL: duckdb: no such table",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.Equal(tt.code, tt.err.Code)
			suite.Equal(tt.message, tt.err.Message)
			suite.Equal(tt.cause, tt.err.Unwrap())
			suite.Equal(tt.text, tt.err.Error())
		})
	}
}

func (suite *ErrorTestSuite) TestGetCode() {
	kernelErr := Newf(ErrCodeInvalidLength, "RSI: period %d must be less than series length %d", 14, 14)

	suite.Equal(ErrCodeInvalidLength, GetCode(kernelErr))
	suite.Equal(ErrCodeInvalidLength, GetCode(fmt.Errorf("job %q: %w", "rsi14", kernelErr)))
	// The outermost coded error wins.
	suite.Equal(ErrCodeIndicatorCalculation, GetCode(Wrap(ErrCodeIndicatorCalculation, "calculation failed", kernelErr)))
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
	suite.Equal(ErrCodeInsufficientData, GetCode(NewInsufficientDataError(15, 3, "AAPL", "too short")))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidParameter, "BollingerBands: multiplier must be positive")

	suite.True(HasCode(err, ErrCodeInvalidParameter))
	suite.False(HasCode(err, ErrCodeInvalidPeriod))
}

func (suite *ErrorTestSuite) TestSentinelsMatchByCode() {
	err := Newf(ErrCodeInvalidPeriod, "MACD: fastPeriod must be a positive integer, got %d", 0)

	suite.True(Is(err, ErrInvalidPeriod))
	suite.False(Is(err, ErrInvalidLength))
	suite.True(Is(fmt.Errorf("calculate: %w", err), ErrInvalidPeriod))
	suite.True(Is(Wrap(ErrCodeHostModuleFailed, "host call failed", err), ErrInvalidPeriod))
}

func (suite *ErrorTestSuite) TestIsAndAsReachTheCause() {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeResultWriteFailed, "failed to export to Parquet", cause)

	suite.True(Is(err, cause))

	var coded *Error
	suite.Require().True(As(fmt.Errorf("run: %w", err), &coded))
	suite.Equal(ErrCodeResultWriteFailed, coded.Code)
}

func (suite *ErrorTestSuite) TestCodeRanges() {
	for _, code := range []ErrorCode{ErrCodeInvalidBuffer, ErrCodeInvalidPeriod, ErrCodeInvalidLength, ErrCodeInvalidParameter, ErrCodeInsufficientData} {
		suite.True(code.IsValidation(), code.String())
	}

	for _, code := range []ErrorCode{ErrCodeUnknown, ErrCodeQueryFailed, ErrCodeIndicatorNotFound, ErrCodeGuestFailed} {
		suite.False(code.IsValidation(), code.String())
	}
}

func (suite *ErrorTestSuite) TestCodeString() {
	suite.Equal("invalid_buffer", ErrCodeInvalidBuffer.String())
	suite.Equal("indicator_not_found", ErrCodeIndicatorNotFound.String())
	suite.Equal("code_999", ErrorCode(999).String())
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataErrorf(15, 4, "MSFT", "rsi needs %d candles, %s has %d", 15, "MSFT", 4)

	suite.Equal(15, err.Required)
	suite.Equal(4, err.Actual)
	suite.Equal("MSFT", err.Symbol)
	suite.Equal("rsi needs 15 candles, MSFT has 4", err.Error())

	suite.True(IsInsufficientDataError(err))
	suite.True(IsInsufficientDataError(fmt.Errorf("job: %w", err)))
	suite.False(IsInsufficientDataError(New(ErrCodeInvalidLength, "short")))
	suite.False(IsInsufficientDataError(nil))
}
