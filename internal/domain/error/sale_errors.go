// Package error defines domain-specific errors for the StockBook application.
package error

import "errors"

// Sale domain errors.
var (
	// ErrSaleNotFound is returned when a sale is not found in the system.
	ErrSaleNotFound = errors.New("sale not found")

	// ErrNotAuthorizedToModifySale is returned when the caller does not own the sale.
	ErrNotAuthorizedToModifySale = errors.New("not authorized to modify sale")

	// ErrInvalidSaleQuantity is returned when the sale quantity is negative.
	ErrInvalidSaleQuantity = errors.New("quantity must not be negative")

	// ErrInvalidSalePrice is returned when the unit price is negative.
	ErrInvalidSalePrice = errors.New("unit price must not be negative")

	// ErrInvalidSaleDate is returned when the sale date is missing or malformed.
	ErrInvalidSaleDate = errors.New("invalid sale date")

	// ErrInvalidPaymentMethod is returned when the payment method is not recognized.
	ErrInvalidPaymentMethod = errors.New("payment method must be: cash, card, transfer, or credit")

	// ErrSaleProductNotFound is returned when the referenced inventory item does not exist.
	ErrSaleProductNotFound = errors.New("product not found")
)

// SaleErrorCode defines error codes for sale errors.
// Format: SLE-XXYYYY where XX is category and YYYY is specific error.
type SaleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidSaleQuantity  SaleErrorCode = "SLE-010001"
	ErrCodeInvalidSalePrice     SaleErrorCode = "SLE-010002"
	ErrCodeInvalidSaleDate      SaleErrorCode = "SLE-010003"
	ErrCodeInvalidPaymentMethod SaleErrorCode = "SLE-010004"
	ErrCodeSaleNotFound         SaleErrorCode = "SLE-010005"
	ErrCodeNotAuthorizedSale    SaleErrorCode = "SLE-010006"
	ErrCodeSaleProductNotFound  SaleErrorCode = "SLE-010007"

	// Internal errors (99XXXX)
	ErrCodeSaleInternalError SaleErrorCode = "SLE-990001"
)

// SaleError represents a sale error with code and message.
type SaleError struct {
	Code    SaleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SaleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SaleError) Unwrap() error {
	return e.Err
}

// NewSaleError creates a new SaleError with the given code and message.
func NewSaleError(code SaleErrorCode, message string, err error) *SaleError {
	return &SaleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
