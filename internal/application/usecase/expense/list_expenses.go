package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/application/usecase/report"
	"github.com/stockbook/backend/internal/domain/entity"
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	OwnerID    uuid.UUID
	Period     report.PeriodToken
	Now        time.Time
	CustomDate *time.Time
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses     []*entity.Expense
	Range        report.DateRange
	AnomalyCount int
}

// ListExpensesUseCase lists an owner's expenses through the shared period
// resolver and filter, the same pipeline the dashboard totals run on.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute retrieves the owner's expenses within the period, newest first.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	dateRange, err := report.ResolvePeriod(input.Period, input.Now, input.CustomDate)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	filtered, anomalies := report.FilterByDate(expenses, dateRange)

	return &ListExpensesOutput{
		Expenses:     filtered,
		Range:        dateRange,
		AnomalyCount: len(anomalies),
	}, nil
}
