// Package error defines domain-specific errors for the ledger.
package error

import "errors"

// Statistics domain errors.
var (
	// ErrInvalidInput is the root of every caller contract violation reported by the statistics use cases.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTimeRange is returned when the time range name is unknown.
	ErrInvalidTimeRange = errors.New("range must be: day, week, month, year, or custom")

	// ErrInvalidDateFormat is returned when a custom bound cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD or RFC3339")

	// ErrInvalidSnapshot is returned when the loaded transactions have a zero date or a non-positive amount.
	ErrInvalidSnapshot = errors.New("transaction snapshot is not well-formed")

	// ErrInvalidSortOrder is returned when the sort order is unknown.
	ErrInvalidSortOrder = errors.New("sortBy must be: highest, lowest, newest, or oldest")
)

// StatisticsErrorCode defines error codes for statistics errors.
// Format: STA-XXYYYY where XX is category and YYYY is specific error.
type StatisticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTimeRange  StatisticsErrorCode = "STA-010001"
	ErrCodeInvalidDateFormat StatisticsErrorCode = "STA-010002"
	ErrCodeInvalidSnapshot   StatisticsErrorCode = "STA-010003"
	ErrCodeInvalidSortOrder  StatisticsErrorCode = "STA-010004"

	// Internal errors (99XXXX)
	ErrCodeStatisticsInternalError StatisticsErrorCode = "STA-990001"
)

// StatisticsError represents a statistics error with code and message.
// Every StatisticsError with a validation code also matches ErrInvalidInput.
type StatisticsError struct {
	Code    StatisticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatisticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatisticsError) Unwrap() error {
	return e.Err
}

// Is reports whether the error is an invalid input error.
func (e *StatisticsError) Is(target error) bool {
	return target == ErrInvalidInput && e.Code != ErrCodeStatisticsInternalError
}

// NewStatisticsError creates a new StatisticsError with the given code and message.
func NewStatisticsError(code StatisticsErrorCode, message string, err error) *StatisticsError {
	return &StatisticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
