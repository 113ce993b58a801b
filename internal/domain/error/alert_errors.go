// Package error defines domain-specific errors for the StockBook application.
package error

import "errors"

// Alert domain errors.
var (
	// ErrAlertQueueFailed is returned when an alert job cannot be queued.
	ErrAlertQueueFailed = errors.New("failed to queue alert")

	// ErrAlertJobNotFound is returned when an alert job is not found.
	ErrAlertJobNotFound = errors.New("alert job not found")
)

// AlertErrorCode defines error codes for alert errors.
// Format: ALR-XXYYYY where XX is category and YYYY is specific error.
type AlertErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeAlertQueueFailed AlertErrorCode = "ALR-010001"
	ErrCodeAlertJobNotFound AlertErrorCode = "ALR-010002"

	// Delivery errors (02XXXX)
	ErrCodeTemporaryAlertFailure AlertErrorCode = "ALR-020001"
	ErrCodePermanentAlertFailure AlertErrorCode = "ALR-020002"
)

// AlertError represents an alert error with code and message.
type AlertError struct {
	Code    AlertErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AlertError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AlertError) Unwrap() error {
	return e.Err
}

// NewAlertError creates a new AlertError with the given code and message.
func NewAlertError(code AlertErrorCode, message string, err error) *AlertError {
	return &AlertError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
