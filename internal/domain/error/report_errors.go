// Package error defines domain-specific errors for the StockBook application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidPeriod is returned for an unrecognized period token, or a
	// custom period requested without a date.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrMissingCustomDate is returned when a custom period has no date.
	ErrMissingCustomDate = errors.New("custom period requires a date")

	// ErrInvalidDateRange is returned when a range's end precedes its start.
	ErrInvalidDateRange = errors.New("end date must not be before start date")

	// ErrInvalidDateFormat is returned when a date string cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrNoSnapshot is returned when no snapshot has been delivered yet.
	// Callers must treat this as "no data", never as zero totals.
	ErrNoSnapshot = errors.New("no snapshot available")

	// ErrInvalidExportKind is returned for an unrecognized export kind.
	ErrInvalidExportKind = errors.New("export kind must be: sales or expenses")

	// ErrInvalidBreakdownKind is returned for an unrecognized breakdown kind.
	ErrInvalidBreakdownKind = errors.New("breakdown kind must be: expenses_by_category or sales_by_product")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriod        ReportErrorCode = "RPT-010001"
	ErrCodeMissingCustomDate    ReportErrorCode = "RPT-010002"
	ErrCodeInvalidDateRange     ReportErrorCode = "RPT-010003"
	ErrCodeInvalidDateFormat    ReportErrorCode = "RPT-010004"
	ErrCodeInvalidExportKind    ReportErrorCode = "RPT-010005"
	ErrCodeInvalidBreakdownKind ReportErrorCode = "RPT-010006"

	// Availability errors (02XXXX)
	ErrCodeNoSnapshot ReportErrorCode = "RPT-020001"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
