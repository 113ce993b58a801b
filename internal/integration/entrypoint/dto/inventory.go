// Package dto defines request/response structures for the API endpoints.
package dto

import (
	"github.com/stockbook/backend/internal/application/usecase/report"
	"github.com/stockbook/backend/internal/domain/entity"
)

// CreateItemRequest represents the request body for creating an inventory item.
type CreateItemRequest struct {
	SKU          string  `json:"sku"`
	Product      string  `json:"product" binding:"required"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	Cost         float64 `json:"cost"`
	Price        float64 `json:"price"`
	ReorderLevel int     `json:"reorderLevel"`
}

// RestockItemRequest represents the request body for restocking an item.
type RestockItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// InventoryItemResponse represents an inventory item in API responses.
type InventoryItemResponse struct {
	ID           string `json:"id"`
	SKU          string `json:"sku"`
	Product      string `json:"product"`
	Category     string `json:"category"`
	Quantity     int    `json:"quantity"`
	Cost         string `json:"cost"`
	Price        string `json:"price"`
	ReorderLevel int    `json:"reorderLevel"`
	Status       string `json:"status"`
}

// StockCountsResponse represents low/out-of-stock counts.
type StockCountsResponse struct {
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

// InventoryListResponse represents the response for listing inventory.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Stock StockCountsResponse     `json:"stock"`
}

// ToInventoryItemResponse converts an InventoryItem entity to a response.
func ToInventoryItemResponse(item *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:           item.ID.String(),
		SKU:          item.SKU,
		Product:      item.Product,
		Category:     item.Category,
		Quantity:     item.Quantity,
		Cost:         item.Cost.StringFixed(2),
		Price:        item.Price.StringFixed(2),
		ReorderLevel: item.ReorderLevel,
		Status:       string(item.Status()),
	}
}

// ToInventoryListResponse converts items and counts to a response.
func ToInventoryListResponse(items []*entity.InventoryItem, stock report.StockCounts) InventoryListResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToInventoryItemResponse(item)
	}
	return InventoryListResponse{
		Items: responses,
		Stock: StockCountsResponse{
			LowStock:   stock.LowStock,
			OutOfStock: stock.OutOfStock,
		},
	}
}
