// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database. The primary key
// is the submission-derived string ID, not a uuid.
type ExpenseModel struct {
	ID            string          `gorm:"type:varchar(40);primaryKey"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	Category      string          `gorm:"type:varchar(100);not null;index"`
	Description   string          `gorm:"type:text"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Status        string          `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Date:          m.Date,
		Category:      m.Category,
		Description:   m.Description,
		ExpenseAmount: m.Amount,
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		Status:        entity.ExpenseStatus(m.Status),
		CreatedAt:     m.CreatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:            expense.ID,
		OwnerID:       expense.OwnerID,
		Date:          expense.Date,
		Category:      expense.Category,
		Description:   expense.Description,
		Amount:        expense.ExpenseAmount,
		PaymentMethod: string(expense.PaymentMethod),
		Status:        string(expense.Status),
		CreatedAt:     expense.CreatedAt,
	}
}
