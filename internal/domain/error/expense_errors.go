// Package error defines domain-specific errors for the StockBook application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found in the system.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNotAuthorizedToModifyExpense is returned when the caller does not own the expense.
	ErrNotAuthorizedToModifyExpense = errors.New("not authorized to modify expense")

	// ErrEmptyExpenseLines is returned when a submission contains no line items.
	ErrEmptyExpenseLines = errors.New("at least one expense line is required")

	// ErrInvalidExpenseAmount is returned when an expense amount is negative.
	ErrInvalidExpenseAmount = errors.New("amount must not be negative")

	// ErrInvalidExpenseDate is returned when an expense date is missing or malformed.
	ErrInvalidExpenseDate = errors.New("invalid expense date")

	// ErrInvalidExpenseStatus is returned when the status is not Paid or Pending.
	ErrInvalidExpenseStatus = errors.New("status must be: Paid or Pending")

	// ErrMissingExpenseCategory is returned when a line has no category.
	ErrMissingExpenseCategory = errors.New("category is required")

	// ErrSuggestionUnavailable is returned when category suggestions are
	// requested but no suggester is configured.
	ErrSuggestionUnavailable = errors.New("category suggestion unavailable")

	// ErrEmptyDescription is returned when a suggestion is requested for a
	// blank description.
	ErrEmptyDescription = errors.New("description is required")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyExpenseLines      ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseAmount   ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidExpenseDate     ExpenseErrorCode = "EXP-010003"
	ErrCodeInvalidExpenseStatus   ExpenseErrorCode = "EXP-010004"
	ErrCodeMissingExpenseCategory ExpenseErrorCode = "EXP-010005"
	ErrCodeExpenseNotFound        ExpenseErrorCode = "EXP-010006"
	ErrCodeNotAuthorizedExpense   ExpenseErrorCode = "EXP-010007"
	ErrCodeInvalidExpensePayment  ExpenseErrorCode = "EXP-010008"

	// AI suggestion errors (02XXXX)
	ErrCodeSuggestionUnavailable ExpenseErrorCode = "EXP-020001"
	ErrCodeEmptyDescription      ExpenseErrorCode = "EXP-020002"

	// Internal errors (99XXXX)
	ErrCodeExpenseInternalError ExpenseErrorCode = "EXP-990001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
