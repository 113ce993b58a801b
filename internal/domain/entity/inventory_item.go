// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultReorderLevel is used when an item has no explicit reorder threshold.
const DefaultReorderLevel = 5

// StockStatus classifies an item's quantity against its reorder level.
type StockStatus string

const (
	StockStatusOK  StockStatus = "ok"
	StockStatusLow StockStatus = "low"
	StockStatusOut StockStatus = "out"
)

// InventoryItem represents a stocked product. Quantity is mutated in place by
// restocks and sale deductions; everything else is set at creation.
type InventoryItem struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	SKU          string
	Product      string
	Category     string
	Quantity     int
	Cost         decimal.Decimal
	Price        decimal.Decimal
	ReorderLevel int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewInventoryItem creates a new InventoryItem. When sku is empty one is
// generated from the category and creation timestamp.
func NewInventoryItem(
	ownerID uuid.UUID,
	sku, product, category string,
	quantity int,
	cost, price decimal.Decimal,
	reorderLevel int,
) *InventoryItem {
	now := time.Now().UTC()
	if sku == "" {
		sku = GenerateSKU(category, now)
	}
	if reorderLevel <= 0 {
		reorderLevel = DefaultReorderLevel
	}

	return &InventoryItem{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		SKU:          sku,
		Product:      product,
		Category:     category,
		Quantity:     quantity,
		Cost:         cost,
		Price:        price,
		ReorderLevel: reorderLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// GenerateSKU builds a SKU from the category prefix and a timestamp,
// e.g. "BEV-1735689600000" for a beverage created at that instant.
func GenerateSKU(category string, at time.Time) string {
	prefix := "GEN"
	trimmed := strings.ToUpper(strings.TrimSpace(category))
	if trimmed != "" {
		if len(trimmed) > 3 {
			trimmed = trimmed[:3]
		}
		prefix = trimmed
	}
	return fmt.Sprintf("%s-%d", prefix, at.UnixMilli())
}

// Status classifies the item as in stock, low, or out of stock. A missing
// reorder level falls back to DefaultReorderLevel.
func (i *InventoryItem) Status() StockStatus {
	level := i.ReorderLevel
	if level <= 0 {
		level = DefaultReorderLevel
	}

	switch {
	case i.Quantity == 0:
		return StockStatusOut
	case i.Quantity <= level:
		return StockStatusLow
	default:
		return StockStatusOK
	}
}
