// Package errors carries typed error codes through every layer of the
// indicator library, from kernel validation to HTTP status codes and host
// ABI return values.
//
// Codes are grouped by range:
//   - 1-99: general
//   - 100-199: validation (buffers, periods, lengths, parameters, config)
//   - 200-299: market data access
//   - 300-399: indicator lookup and calculation
//   - 700-799: result output
//   - 800-899: WebAssembly host and guest
//
// Kernel errors can be matched either by code or against the sentinels:
//
//	if errors.HasCode(err, errors.ErrCodeInvalidPeriod) { ... }
//	if errors.Is(err, errors.ErrInvalidPeriod) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Sentinels for the kernel validation failures. Any *Error with the same
// code matches them with Is.
var (
	ErrInvalidBuffer    = New(ErrCodeInvalidBuffer, "invalid buffer")
	ErrInvalidPeriod    = New(ErrCodeInvalidPeriod, "invalid period")
	ErrInvalidLength    = New(ErrCodeInvalidLength, "invalid length")
	ErrInvalidParameter = New(ErrCodeInvalidParameter, "invalid parameter")
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code and message to cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}

	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by code, so callers can compare against the
// sentinels without caring about the message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Code == e.Code
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost coded error in err's chain.
// An InsufficientDataError reports ErrCodeInsufficientData; anything else
// is ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	if IsInsufficientDataError(err) {
		return ErrCodeInsufficientData
	}

	return ErrCodeUnknown
}

func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError reports a stored series that is too short for the
// indicator a batch job asked for. The runner treats it as a skip, not a failure.
type InsufficientDataError struct {
	Required int
	Actual   int
	Symbol   string
	Message  string
}

func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return NewInsufficientDataError(required, actual, symbol, fmt.Sprintf(format, args...))
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

func IsInsufficientDataError(err error) bool {
	var insufficient *InsufficientDataError

	return errors.As(err, &insufficient)
}
