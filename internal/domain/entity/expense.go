// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/google/uuid"
)

// ExpenseStatus represents the payment status of an expense record.
type ExpenseStatus string

const (
	ExpenseStatusPaid    ExpenseStatus = "Paid"
	ExpenseStatusPending ExpenseStatus = "Pending"
)

// Suggested expense categories. The vocabulary is open: callers may submit any
// category string, these are only the values the UI offers by default.
var SuggestedExpenseCategories = []string{
	"Rent",
	"Utilities",
	"Salaries",
	"Supplies",
	"Transport",
	"Marketing",
	"Maintenance",
	"Other",
}

// Expense represents a single expense line item. One form submission may
// produce several sibling expenses sharing a timestamp-derived ID prefix.
type Expense struct {
	ID            string // "EXP-<unix-millis>-<n>" within a submission batch
	OwnerID       uuid.UUID
	Date          time.Time
	Category      string
	Description   string
	ExpenseAmount decimal.Decimal
	PaymentMethod PaymentMethod
	Status        ExpenseStatus
	CreatedAt     time.Time
}

// NewExpenseBatch creates the sibling Expense records for one submission.
// All records share the submission timestamp in their ID prefix.
func NewExpenseBatch(ownerID uuid.UUID, submittedAt time.Time, lines []ExpenseLine) []*Expense {
	prefix := submittedAt.UnixMilli()
	expenses := make([]*Expense, 0, len(lines))

	for i, line := range lines {
		status := line.Status
		if status == "" {
			status = ExpenseStatusPaid
		}

		expenses = append(expenses, &Expense{
			ID:            fmt.Sprintf("EXP-%d-%d", prefix, i),
			OwnerID:       ownerID,
			Date:          line.Date,
			Category:      line.Category,
			Description:   line.Description,
			ExpenseAmount: line.Amount,
			PaymentMethod: line.PaymentMethod,
			Status:        status,
			CreatedAt:     submittedAt.UTC(),
		})
	}

	return expenses
}

// ExpenseLine is one line item of an expense submission.
type ExpenseLine struct {
	Date          time.Time
	Category      string
	Description   string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	Status        ExpenseStatus
}

// RecordDate returns the expense's date. Implements report.Dated.
func (e *Expense) RecordDate() time.Time {
	return e.Date
}

// RecordID returns the expense's ID for anomaly reporting.
func (e *Expense) RecordID() string {
	return e.ID
}

// Amount returns the monetary contribution of the expense. Implements report.Monetary.
func (e *Expense) Amount() decimal.Decimal {
	return e.ExpenseAmount
}
