// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/entity"
)

// SaleRepository defines the interface for sale persistence operations.
// Sales are write-once: there is deliberately no update method.
type SaleRepository interface {
	// CreateWithStockDeduction creates a sale and, when the sale references
	// an inventory item, decrements that item's quantity in the same
	// database transaction.
	CreateWithStockDeduction(ctx context.Context, sale *entity.Sale) error

	// FindByID retrieves a sale by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)

	// FindByOwner retrieves all sales for an owner, newest first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Sale, error)

	// Delete removes a sale by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
