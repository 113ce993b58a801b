// Package sale contains sale-related use cases.
package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// DeleteSaleInput represents the input for sale deletion.
type DeleteSaleInput struct {
	SaleID  uuid.UUID
	OwnerID uuid.UUID
}

// DeleteSaleOutput represents the output of sale deletion.
type DeleteSaleOutput struct {
	Success bool
}

// DeleteSaleUseCase handles sale deletion. Deleting a sale does not restore
// the deducted inventory quantity; a compensating restock is an explicit
// operation.
type DeleteSaleUseCase struct {
	saleRepo  adapter.SaleRepository
	publisher adapter.ChangePublisher
}

// NewDeleteSaleUseCase creates a new DeleteSaleUseCase instance.
func NewDeleteSaleUseCase(saleRepo adapter.SaleRepository, publisher adapter.ChangePublisher) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{
		saleRepo:  saleRepo,
		publisher: publisher,
	}
}

// Execute performs the sale deletion.
func (uc *DeleteSaleUseCase) Execute(ctx context.Context, input DeleteSaleInput) (*DeleteSaleOutput, error) {
	sale, err := uc.saleRepo.FindByID(ctx, input.SaleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSaleNotFound) {
			return nil, domainerror.NewSaleError(
				domainerror.ErrCodeSaleNotFound,
				"sale not found",
				domainerror.ErrSaleNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}

	if sale.OwnerID != input.OwnerID {
		return nil, domainerror.NewSaleError(
			domainerror.ErrCodeNotAuthorizedSale,
			"not authorized to delete this sale",
			domainerror.ErrNotAuthorizedToModifySale,
		)
	}

	if err := uc.saleRepo.Delete(ctx, input.SaleID); err != nil {
		return nil, fmt.Errorf("failed to delete sale: %w", err)
	}

	uc.publisher.PublishChange(ctx, input.OwnerID, adapter.CollectionSales)

	return &DeleteSaleOutput{Success: true}, nil
}
