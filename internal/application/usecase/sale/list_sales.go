// Package sale contains sale-related use cases.
package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/application/usecase/report"
	"github.com/stockbook/backend/internal/domain/entity"
)

// ListSalesInput represents the input for listing sales.
type ListSalesInput struct {
	OwnerID    uuid.UUID
	Period     report.PeriodToken
	Now        time.Time
	CustomDate *time.Time
}

// ListSalesOutput represents the output of listing sales.
type ListSalesOutput struct {
	Sales        []*entity.Sale
	Range        report.DateRange
	AnomalyCount int
}

// ListSalesUseCase lists an owner's sales filtered through the shared period
// resolver, so the list view and the dashboard can never disagree about what
// "this week" means.
type ListSalesUseCase struct {
	saleRepo adapter.SaleRepository
}

// NewListSalesUseCase creates a new ListSalesUseCase instance.
func NewListSalesUseCase(saleRepo adapter.SaleRepository) *ListSalesUseCase {
	return &ListSalesUseCase{
		saleRepo: saleRepo,
	}
}

// Execute retrieves the owner's sales within the period, newest first.
func (uc *ListSalesUseCase) Execute(ctx context.Context, input ListSalesInput) (*ListSalesOutput, error) {
	dateRange, err := report.ResolvePeriod(input.Period, input.Now, input.CustomDate)
	if err != nil {
		return nil, err
	}

	sales, err := uc.saleRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	filtered, anomalies := report.FilterByDate(sales, dateRange)

	return &ListSalesOutput{
		Sales:        filtered,
		Range:        dateRange,
		AnomalyCount: len(anomalies),
	}, nil
}
