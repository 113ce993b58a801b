package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/application/usecase/report"
	"github.com/stockbook/backend/internal/domain/entity"
)

// ListItemsInput represents the input for listing inventory items.
type ListItemsInput struct {
	OwnerID uuid.UUID

	// StatusFilter narrows the result to one stock status. Empty means all.
	StatusFilter entity.StockStatus
}

// ListItemsOutput represents the output of listing inventory items.
type ListItemsOutput struct {
	Items []*entity.InventoryItem
	Stock report.StockCounts
}

// ListItemsUseCase lists an owner's inventory. Stock counts always cover the
// full inventory, even when the item list itself is filtered by status.
type ListItemsUseCase struct {
	inventoryRepo adapter.InventoryRepository
}

// NewListItemsUseCase creates a new ListItemsUseCase instance.
func NewListItemsUseCase(inventoryRepo adapter.InventoryRepository) *ListItemsUseCase {
	return &ListItemsUseCase{
		inventoryRepo: inventoryRepo,
	}
}

// Execute retrieves the owner's inventory, ordered by product name.
func (uc *ListItemsUseCase) Execute(ctx context.Context, input ListItemsInput) (*ListItemsOutput, error) {
	items, err := uc.inventoryRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	counts := report.CountStock(items)

	if input.StatusFilter != "" {
		filtered := make([]*entity.InventoryItem, 0, len(items))
		for _, item := range items {
			if item.Status() == input.StatusFilter {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	return &ListItemsOutput{
		Items: items,
		Stock: counts,
	}, nil
}
