// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/entity"
)

// SaleModel represents the sales table in the database.
type SaleModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date          time.Time       `gorm:"type:date;not null;index"`
	ProductID     *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName   string          `gorm:"type:varchar(255);not null"`
	Quantity      int             `gorm:"not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Customer      string          `gorm:"type:varchar(255);not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SaleModel.
func (SaleModel) TableName() string {
	return "sales"
}

// ToEntity converts a SaleModel to a domain Sale entity.
func (m *SaleModel) ToEntity() *entity.Sale {
	return &entity.Sale{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		Date:          m.Date,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Total:         m.Total,
		Customer:      m.Customer,
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		CreatedAt:     m.CreatedAt,
	}
}

// SaleFromEntity creates a SaleModel from a domain Sale entity.
func SaleFromEntity(sale *entity.Sale) *SaleModel {
	return &SaleModel{
		ID:            sale.ID,
		OwnerID:       sale.OwnerID,
		Date:          sale.Date,
		ProductID:     sale.ProductID,
		ProductName:   sale.ProductName,
		Quantity:      sale.Quantity,
		UnitPrice:     sale.UnitPrice,
		Total:         sale.Total,
		Customer:      sale.Customer,
		PaymentMethod: string(sale.PaymentMethod),
		CreatedAt:     sale.CreatedAt,
	}
}
