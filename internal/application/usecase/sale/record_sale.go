// Package sale contains sale-related use cases.
package sale

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// RecordSaleInput represents the input for recording a sale.
type RecordSaleInput struct {
	OwnerID       uuid.UUID
	Date          time.Time
	ProductID     *uuid.UUID // nil for ad hoc sales
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	Customer      string
	PaymentMethod entity.PaymentMethod
}

// RecordSaleOutput represents the output of recording a sale.
type RecordSaleOutput struct {
	Sale *entity.Sale
}

// RecordSaleUseCase handles sale recording. When the sale references an
// inventory item, the item's quantity is decremented in the same database
// transaction as the sale insert. Concurrent submissions against the same
// item are not otherwise coordinated; the quantity floors at zero rather
// than rejecting the sale.
type RecordSaleUseCase struct {
	saleRepo      adapter.SaleRepository
	inventoryRepo adapter.InventoryRepository
	publisher     adapter.ChangePublisher
}

// NewRecordSaleUseCase creates a new RecordSaleUseCase instance.
func NewRecordSaleUseCase(
	saleRepo adapter.SaleRepository,
	inventoryRepo adapter.InventoryRepository,
	publisher adapter.ChangePublisher,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
		publisher:     publisher,
	}
}

// Execute performs the sale recording.
func (uc *RecordSaleUseCase) Execute(ctx context.Context, input RecordSaleInput) (*RecordSaleOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	productName := input.ProductName
	unitPrice := input.UnitPrice

	// A linked product must exist and belong to the caller; its current name
	// and price backfill missing fields.
	if input.ProductID != nil {
		item, err := uc.inventoryRepo.FindByID(ctx, *input.ProductID)
		if err != nil {
			if errors.Is(err, domainerror.ErrItemNotFound) {
				return nil, domainerror.NewSaleError(
					domainerror.ErrCodeSaleProductNotFound,
					"product not found",
					domainerror.ErrSaleProductNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find product: %w", err)
		}
		if item.OwnerID != input.OwnerID {
			return nil, domainerror.NewSaleError(
				domainerror.ErrCodeSaleProductNotFound,
				"product not found",
				domainerror.ErrSaleProductNotFound,
			)
		}
		if productName == "" {
			productName = item.Product
		}
		if unitPrice.IsZero() {
			unitPrice = item.Price
		}
	}

	sale := entity.NewSale(
		input.OwnerID,
		input.Date,
		input.ProductID,
		productName,
		input.Quantity,
		unitPrice,
		input.Customer,
		input.PaymentMethod,
	)

	if err := uc.saleRepo.CreateWithStockDeduction(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	uc.publisher.PublishChange(ctx, input.OwnerID, adapter.CollectionSales)
	if input.ProductID != nil {
		uc.publisher.PublishChange(ctx, input.OwnerID, adapter.CollectionInventory)
	}

	return &RecordSaleOutput{Sale: sale}, nil
}

// validateInput validates the input parameters.
func (uc *RecordSaleUseCase) validateInput(input RecordSaleInput) error {
	if input.Date.IsZero() {
		return domainerror.NewSaleError(
			domainerror.ErrCodeInvalidSaleDate,
			"date is required",
			domainerror.ErrInvalidSaleDate,
		)
	}

	if input.Quantity < 0 {
		return domainerror.NewSaleError(
			domainerror.ErrCodeInvalidSaleQuantity,
			"quantity must not be negative",
			domainerror.ErrInvalidSaleQuantity,
		)
	}

	if input.UnitPrice.IsNegative() {
		return domainerror.NewSaleError(
			domainerror.ErrCodeInvalidSalePrice,
			"unit price must not be negative",
			domainerror.ErrInvalidSalePrice,
		)
	}

	if !entity.ValidPaymentMethod(input.PaymentMethod) {
		return domainerror.NewSaleError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"payment method must be: cash, card, transfer, or credit",
			domainerror.ErrInvalidPaymentMethod,
		)
	}

	return nil
}
