package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// DeleteItemInput represents the input for inventory item deletion.
type DeleteItemInput struct {
	ItemID  uuid.UUID
	OwnerID uuid.UUID
}

// DeleteItemOutput represents the output of inventory item deletion.
type DeleteItemOutput struct {
	Success bool
}

// DeleteItemUseCase handles inventory item deletion. Sales that reference the
// deleted item keep their product name snapshot, so history is unaffected.
type DeleteItemUseCase struct {
	inventoryRepo adapter.InventoryRepository
	publisher     adapter.ChangePublisher
}

// NewDeleteItemUseCase creates a new DeleteItemUseCase instance.
func NewDeleteItemUseCase(inventoryRepo adapter.InventoryRepository, publisher adapter.ChangePublisher) *DeleteItemUseCase {
	return &DeleteItemUseCase{
		inventoryRepo: inventoryRepo,
		publisher:     publisher,
	}
}

// Execute performs the item deletion.
func (uc *DeleteItemUseCase) Execute(ctx context.Context, input DeleteItemInput) (*DeleteItemOutput, error) {
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
			"not authorized to delete this item",
			domainerror.ErrNotAuthorizedToModifyItem,
		)
	}

	if err := uc.inventoryRepo.Delete(ctx, input.ItemID); err != nil {
		return nil, fmt.Errorf("failed to delete inventory item: %w", err)
	}

	uc.publisher.PublishChange(ctx, input.OwnerID, adapter.CollectionInventory)

	return &DeleteItemOutput{Success: true}, nil
}
