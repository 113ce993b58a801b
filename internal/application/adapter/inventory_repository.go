// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/entity"
)

// InventoryRepository defines the interface for inventory persistence operations.
type InventoryRepository interface {
	// Create adds a new inventory item.
	Create(ctx context.Context, item *entity.InventoryItem) error

	// FindByID retrieves an item by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error)

	// FindBySKU retrieves an item by owner and SKU.
	FindBySKU(ctx context.Context, ownerID uuid.UUID, sku string) (*entity.InventoryItem, error)

	// FindByOwner retrieves all items for an owner, ordered by product name.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.InventoryItem, error)

	// AdjustQuantity adds delta to an item's quantity, flooring at zero.
	// Returns the updated item.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*entity.InventoryItem, error)

	// Delete removes an item by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// DistinctOwners lists every owner that has at least one item. Used by
	// the periodic stock alert sweep.
	DistinctOwners(ctx context.Context) ([]uuid.UUID, error)
}
