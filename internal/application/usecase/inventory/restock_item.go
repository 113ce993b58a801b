package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// RestockItemInput represents the input for restocking an item.
type RestockItemInput struct {
	ItemID   uuid.UUID
	OwnerID  uuid.UUID
	Quantity int
}

// RestockItemOutput represents the output of restocking an item.
type RestockItemOutput struct {
	Item *entity.InventoryItem
}

// RestockItemUseCase adds stock to an existing inventory item. Concurrent
// restocks and sale deductions against the same item go through the
// repository's atomic adjustment, so the stored quantity never drops below
// zero.
type RestockItemUseCase struct {
	inventoryRepo adapter.InventoryRepository
	publisher     adapter.ChangePublisher
}

// NewRestockItemUseCase creates a new RestockItemUseCase instance.
func NewRestockItemUseCase(inventoryRepo adapter.InventoryRepository, publisher adapter.ChangePublisher) *RestockItemUseCase {
	return &RestockItemUseCase{
		inventoryRepo: inventoryRepo,
		publisher:     publisher,
	}
}

// Execute performs the restock.
func (uc *RestockItemUseCase) Execute(ctx context.Context, input RestockItemInput) (*RestockItemOutput, error) {
	if input.Quantity <= 0 {
		return nil, domainerror.NewInventoryError(
			domainerror.ErrCodeInvalidRestockQuantity,
			"restock quantity must be positive",
			domainerror.ErrInvalidRestockQuantity,
		)
	}

	item, err := uc.inventoryRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, domainerror.ErrItemNotFound) {
			return nil, domainerror.NewInventoryError(
				domainerror.ErrCodeItemNotFound,
				"inventory item not found",
				domainerror.ErrItemNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}

	if item.OwnerID != input.OwnerID {
		return nil, domainerror.NewInventoryError(
			domainerror.ErrCodeNotAuthorizedItem,
			"not authorized to modify this item",
			domainerror.ErrNotAuthorizedToModifyItem,
		)
	}

	updated, err := uc.inventoryRepo.AdjustQuantity(ctx, input.ItemID, input.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to restock item: %w", err)
	}

	uc.publisher.PublishChange(ctx, input.OwnerID, adapter.CollectionInventory)

	return &RestockItemOutput{Item: updated}, nil
}
