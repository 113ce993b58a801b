// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/entity"
)

// InventoryItemModel represents the inventory_items table in the database.
type InventoryItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_inventory_owner_sku"`
	SKU          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_inventory_owner_sku"`
	Product      string          `gorm:"type:varchar(255);not null"`
	Category     string          `gorm:"type:varchar(100);index"`
	Quantity     int             `gorm:"not null;default:0"`
	Cost         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Price        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ReorderLevel int             `gorm:"not null;default:5"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for the InventoryItemModel.
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToEntity converts an InventoryItemModel to a domain InventoryItem entity.
func (m *InventoryItemModel) ToEntity() *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		SKU:          m.SKU,
		Product:      m.Product,
		Category:     m.Category,
		Quantity:     m.Quantity,
		Cost:         m.Cost,
		Price:        m.Price,
		ReorderLevel: m.ReorderLevel,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// InventoryItemFromEntity creates an InventoryItemModel from a domain InventoryItem entity.
func InventoryItemFromEntity(item *entity.InventoryItem) *InventoryItemModel {
	return &InventoryItemModel{
		ID:           item.ID,
		OwnerID:      item.OwnerID,
		SKU:          item.SKU,
		Product:      item.Product,
		Category:     item.Category,
		Quantity:     item.Quantity,
		Cost:         item.Cost,
		Price:        item.Price,
		ReorderLevel: item.ReorderLevel,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
