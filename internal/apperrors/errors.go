package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnknownReportType is returned when a report type selector is not one of the supported variants.
var ErrUnknownReportType = errors.New("unknown report type")

// ErrUnknownRateColumn is returned when the rate selected by a report type is missing on an account record.
var ErrUnknownRateColumn = errors.New("rate column not available for account")

// ErrUnknownTimeframe indicates an unsupported period granularity.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

// ErrInvalidPeriod indicates a malformed period label such as "2024-Q5".
var ErrInvalidPeriod = errors.New("invalid period")

// AppError carries an HTTP status alongside an underlying error.
// Repositories use it for infrastructure failures that should surface as 5xx.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError wraps err with a status code and a human readable message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err stems from an invalid report definition
// (bad selector, malformed period, missing rate) as opposed to an infrastructure failure.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnknownReportType) ||
		errors.Is(err, ErrUnknownRateColumn) ||
		errors.Is(err, ErrUnknownTimeframe) ||
		errors.Is(err, ErrInvalidPeriod)
}
