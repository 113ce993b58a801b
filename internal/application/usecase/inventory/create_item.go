// Package inventory contains inventory-related use cases.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// CreateItemInput represents the input for inventory item creation.
type CreateItemInput struct {
	OwnerID      uuid.UUID
	SKU          string
	Product      string
	Category     string
	Quantity     int
	Cost         decimal.Decimal
	Price        decimal.Decimal
	ReorderLevel int
}

// CreateItemOutput represents the output of inventory item creation.
type CreateItemOutput struct {
	Item *entity.InventoryItem
}

// CreateItemUseCase handles inventory item creation.
type CreateItemUseCase struct {
	inventoryRepo adapter.InventoryRepository
	publisher     adapter.ChangePublisher
}

// NewCreateItemUseCase creates a new CreateItemUseCase instance.
func NewCreateItemUseCase(inventoryRepo adapter.InventoryRepository, publisher adapter.ChangePublisher) *CreateItemUseCase {
	return &CreateItemUseCase{
		inventoryRepo: inventoryRepo,
		publisher:     publisher,
	}
}

// Execute performs the item creation.
func (uc *CreateItemUseCase) Execute(ctx context.Context, input CreateItemInput) (*CreateItemOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	sku := strings.TrimSpace(input.SKU)
	if sku != "" {
		existing, err := uc.inventoryRepo.FindBySKU(ctx, input.OwnerID, sku)
		if err != nil && !errors.Is(err, domainerror.ErrItemNotFound) {
			return nil, fmt.Errorf("failed to check SKU: %w", err)
		}
		if existing != nil {
			return nil, domainerror.NewInventoryError(
				domainerror.ErrCodeDuplicateSKU,
				"an item with this SKU already exists",
				domainerror.ErrDuplicateSKU,
			)
		}
	}

	item := entity.NewInventoryItem(
		input.OwnerID,
		sku,
		strings.TrimSpace(input.Product),
		strings.TrimSpace(input.Category),
		input.Quantity,
		input.Cost,
		input.Price,
		input.ReorderLevel,
	)

	if err := uc.inventoryRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	uc.publisher.PublishChange(ctx, input.OwnerID, adapter.CollectionInventory)

	return &CreateItemOutput{Item: item}, nil
}

func (uc *CreateItemUseCase) validateInput(input CreateItemInput) error {
	if strings.TrimSpace(input.Product) == "" {
		return domainerror.NewInventoryError(
			domainerror.ErrCodeMissingProductName,
			"product name is required",
			domainerror.ErrMissingProductName,
		)
	}

	if input.Quantity < 0 {
		return domainerror.NewInventoryError(
			domainerror.ErrCodeInvalidItemQuantity,
			"quantity must not be negative",
			domainerror.ErrInvalidItemQuantity,
		)
	}

	return nil
}
