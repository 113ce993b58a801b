// Package error defines domain-specific errors for the StockBook application.
package error

import "errors"

// Inventory domain errors.
var (
	// ErrItemNotFound is returned when an inventory item is not found.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrNotAuthorizedToModifyItem is returned when the caller does not own the item.
	ErrNotAuthorizedToModifyItem = errors.New("not authorized to modify inventory item")

	// ErrDuplicateSKU is returned when creating an item with an existing SKU.
	ErrDuplicateSKU = errors.New("an item with this SKU already exists")

	// ErrInvalidItemQuantity is returned when an item quantity is negative.
	ErrInvalidItemQuantity = errors.New("quantity must not be negative")

	// ErrInvalidRestockQuantity is returned when a restock amount is not positive.
	ErrInvalidRestockQuantity = errors.New("restock quantity must be positive")

	// ErrMissingProductName is returned when an item has no product name.
	ErrMissingProductName = errors.New("product name is required")
)

// InventoryErrorCode defines error codes for inventory errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InventoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeItemNotFound           InventoryErrorCode = "INV-010001"
	ErrCodeNotAuthorizedItem      InventoryErrorCode = "INV-010002"
	ErrCodeDuplicateSKU           InventoryErrorCode = "INV-010003"
	ErrCodeInvalidItemQuantity    InventoryErrorCode = "INV-010004"
	ErrCodeInvalidRestockQuantity InventoryErrorCode = "INV-010005"
	ErrCodeMissingProductName     InventoryErrorCode = "INV-010006"

	// Internal errors (99XXXX)
	ErrCodeInventoryInternalError InventoryErrorCode = "INV-990001"
)

// InventoryError represents an inventory error with code and message.
type InventoryError struct {
	Code    InventoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InventoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InventoryError) Unwrap() error {
	return e.Err
}

// NewInventoryError creates a new InventoryError with the given code and message.
func NewInventoryError(code InventoryErrorCode, message string, err error) *InventoryError {
	return &InventoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
