// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale or expense was paid.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCredit   PaymentMethod = "credit"
)

// DefaultCustomer is used when the sale form does not name a customer.
const DefaultCustomer = "Walk-in Customer"

// ValidPaymentMethod reports whether m is one of the accepted payment methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCredit:
		return true
	}
	return false
}

// Sale represents a single recorded sale. Sales are immutable after creation;
// corrections are handled by deleting and re-recording.
type Sale struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Date          time.Time
	ProductID     *uuid.UUID // nil for ad hoc sales with no inventory link
	ProductName   string     // snapshot at sale time, may diverge from the item's current name
	Quantity      int
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal // quantity x unit price, fixed at creation
	Customer      string
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
}

// NewSale creates a new Sale entity. Total is computed from quantity and unit
// price here and never re-derived afterwards.
func NewSale(
	ownerID uuid.UUID,
	date time.Time,
	productID *uuid.UUID,
	productName string,
	quantity int,
	unitPrice decimal.Decimal,
	customer string,
	paymentMethod PaymentMethod,
) *Sale {
	if customer == "" {
		customer = DefaultCustomer
	}

	return &Sale{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Date:          date,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		Total:         unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Customer:      customer,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now().UTC(),
	}
}

// RecordDate returns the sale's date. Implements report.Dated.
func (s *Sale) RecordDate() time.Time {
	return s.Date
}

// RecordID returns the sale's ID for anomaly reporting.
func (s *Sale) RecordID() string {
	return s.ID.String()
}

// Amount returns the monetary contribution of the sale. Implements report.Monetary.
func (s *Sale) Amount() decimal.Decimal {
	return s.Total
}
