// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// RecordExpensesInput represents one expense form submission. Multiple line
// items are persisted as independent sibling records sharing a
// timestamp-derived ID prefix.
type RecordExpensesInput struct {
	OwnerID     uuid.UUID
	SubmittedAt time.Time
	Lines       []entity.ExpenseLine
}

// RecordExpensesOutput represents the output of recording expenses.
type RecordExpensesOutput struct {
	Expenses []*entity.Expense
}

// RecordExpensesUseCase handles expense submission.
type RecordExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
	publisher   adapter.ChangePublisher
}

// NewRecordExpensesUseCase creates a new RecordExpensesUseCase instance.
func NewRecordExpensesUseCase(expenseRepo adapter.ExpenseRepository, publisher adapter.ChangePublisher) *RecordExpensesUseCase {
	return &RecordExpensesUseCase{
		expenseRepo: expenseRepo,
		publisher:   publisher,
	}
}

// Execute validates every line, then persists the batch.
func (uc *RecordExpensesUseCase) Execute(ctx context.Context, input RecordExpensesInput) (*RecordExpensesOutput, error) {
	if len(input.Lines) == 0 {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeEmptyExpenseLines,
			"at least one expense line is required",
			domainerror.ErrEmptyExpenseLines,
		)
	}

	for i, line := range input.Lines {
		if err := validateLine(i, line); err != nil {
			return nil, err
		}
	}

	submittedAt := input.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	expenses := entity.NewExpenseBatch(input.OwnerID, submittedAt, input.Lines)

	if err := uc.expenseRepo.CreateBatch(ctx, expenses); err != nil {
		return nil, fmt.Errorf("failed to record expenses: %w", err)
	}

	uc.publisher.PublishChange(ctx, input.OwnerID, adapter.CollectionExpenses)

	return &RecordExpensesOutput{Expenses: expenses}, nil
}

// validateLine validates a single expense line.
func validateLine(index int, line entity.ExpenseLine) error {
	if line.Date.IsZero() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			fmt.Sprintf("line %d: date is required", index),
			domainerror.ErrInvalidExpenseDate,
		)
	}

	if line.Category == "" {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseCategory,
			fmt.Sprintf("line %d: category is required", index),
			domainerror.ErrMissingExpenseCategory,
		)
	}

	if line.Amount.IsNegative() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			fmt.Sprintf("line %d: amount must not be negative", index),
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	if line.Status != "" && line.Status != entity.ExpenseStatusPaid && line.Status != entity.ExpenseStatusPending {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseStatus,
			fmt.Sprintf("line %d: status must be: Paid or Pending", index),
			domainerror.ErrInvalidExpenseStatus,
		)
	}

	if !entity.ValidPaymentMethod(line.PaymentMethod) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpensePayment,
			fmt.Sprintf("line %d: payment method must be: cash, card, transfer, or credit", index),
			domainerror.ErrInvalidPaymentMethod,
		)
	}

	return nil
}
