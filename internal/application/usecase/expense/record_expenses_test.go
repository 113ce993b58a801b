package expense

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

type fakeExpenseRepository struct {
	batches  [][]*entity.Expense
	expenses []*entity.Expense
	err      error
}

func (f *fakeExpenseRepository) CreateBatch(ctx context.Context, expenses []*entity.Expense) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, expenses)
	f.expenses = append(f.expenses, expenses...)
	return nil
}

func (f *fakeExpenseRepository) FindByID(ctx context.Context, id string) (*entity.Expense, error) {
	for _, e := range f.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domainerror.ErrExpenseNotFound
}

func (f *fakeExpenseRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Expense, error) {
	return f.expenses, f.err
}

func (f *fakeExpenseRepository) Delete(ctx context.Context, id string) error {
	for i, e := range f.expenses {
		if e.ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrExpenseNotFound
}

type fakePublisher struct {
	collections []string
}

func (f *fakePublisher) PublishChange(ctx context.Context, ownerID uuid.UUID, collection string) {
	f.collections = append(f.collections, collection)
}

func line(category string, amount int64) entity.ExpenseLine {
	return entity.ExpenseLine{
		Date:          time.Date(2025, time.January, 5, 0, 0, 0, 0, time.Local),
		Category:      category,
		Amount:        decimal.NewFromInt(amount),
		PaymentMethod: entity.PaymentMethodCash,
	}
}

func TestRecordExpenses_BatchSharesIDPrefix(t *testing.T) {
	repo := &fakeExpenseRepository{}
	publisher := &fakePublisher{}
	uc := NewRecordExpensesUseCase(repo, publisher)

	out, err := uc.Execute(context.Background(), RecordExpensesInput{
		OwnerID:     uuid.New(),
		SubmittedAt: time.Date(2025, time.January, 10, 14, 30, 0, 0, time.UTC),
		Lines:       []entity.ExpenseLine{line("Rent", 450), line("Utilities", 80)},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(out.Expenses) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(out.Expenses))
	}
	prefix := strings.TrimSuffix(out.Expenses[0].ID, "-0")
	if out.Expenses[1].ID != prefix+"-1" {
		t.Errorf("siblings should share an ID prefix: %q vs %q", out.Expenses[0].ID, out.Expenses[1].ID)
	}
	if out.Expenses[0].Status != entity.ExpenseStatusPaid {
		t.Errorf("unset status should default to Paid, got %q", out.Expenses[0].Status)
	}
	if len(repo.batches) != 1 {
		t.Errorf("expected one CreateBatch call, got %d", len(repo.batches))
	}
	if len(publisher.collections) != 1 || publisher.collections[0] != adapter.CollectionExpenses {
		t.Errorf("expected single expenses notification, got %v", publisher.collections)
	}
}

func TestRecordExpenses_EmptyLines(t *testing.T) {
	uc := NewRecordExpensesUseCase(&fakeExpenseRepository{}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), RecordExpensesInput{
		OwnerID: uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrEmptyExpenseLines) {
		t.Fatalf("expected ErrEmptyExpenseLines, got %v", err)
	}
}

func TestRecordExpenses_LineValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*entity.ExpenseLine)
		wantErr error
	}{
		{
			name:    "zero date",
			mutate:  func(l *entity.ExpenseLine) { l.Date = time.Time{} },
			wantErr: domainerror.ErrInvalidExpenseDate,
		},
		{
			name:    "missing category",
			mutate:  func(l *entity.ExpenseLine) { l.Category = "" },
			wantErr: domainerror.ErrMissingExpenseCategory,
		},
		{
			name:    "negative amount",
			mutate:  func(l *entity.ExpenseLine) { l.Amount = decimal.NewFromInt(-5) },
			wantErr: domainerror.ErrInvalidExpenseAmount,
		},
		{
			name:    "bad status",
			mutate:  func(l *entity.ExpenseLine) { l.Status = "Overdue" },
			wantErr: domainerror.ErrInvalidExpenseStatus,
		},
		{
			name:    "bad payment method",
			mutate:  func(l *entity.ExpenseLine) { l.PaymentMethod = "barter" },
			wantErr: domainerror.ErrInvalidPaymentMethod,
		},
	}

	uc := NewRecordExpensesUseCase(&fakeExpenseRepository{}, &fakePublisher{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := line("Rent", 100)
			tt.mutate(&bad)

			// Put the bad line second so the error message names its index.
			_, err := uc.Execute(context.Background(), RecordExpensesInput{
				OwnerID: uuid.New(),
				Lines:   []entity.ExpenseLine{line("Supplies", 20), bad},
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), "line 1") {
				t.Errorf("error should name the failing line: %v", err)
			}
		})
	}
}

func TestDeleteExpense_OwnerMismatch(t *testing.T) {
	ownerID := uuid.New()
	batch := entity.NewExpenseBatch(ownerID, time.Now(), []entity.ExpenseLine{line("Rent", 450)})
	repo := &fakeExpenseRepository{expenses: batch}

	uc := NewDeleteExpenseUseCase(repo, &fakePublisher{})

	_, err := uc.Execute(context.Background(), DeleteExpenseInput{
		ExpenseID: batch[0].ID,
		OwnerID:   uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyExpense) {
		t.Fatalf("expected ErrNotAuthorizedToModifyExpense, got %v", err)
	}
}

func TestDeleteExpense_RemovesSingleSibling(t *testing.T) {
	ownerID := uuid.New()
	batch := entity.NewExpenseBatch(ownerID, time.Now(), []entity.ExpenseLine{line("Rent", 450), line("Utilities", 80)})
	repo := &fakeExpenseRepository{expenses: batch}

	uc := NewDeleteExpenseUseCase(repo, &fakePublisher{})

	out, err := uc.Execute(context.Background(), DeleteExpenseInput{
		ExpenseID: batch[0].ID,
		OwnerID:   ownerID,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Success {
		t.Error("expected Success")
	}
	if len(repo.expenses) != 1 || repo.expenses[0].Category != "Utilities" {
		t.Errorf("only the targeted sibling should be deleted, remaining: %d", len(repo.expenses))
	}
}

type fakeSuggester struct {
	available   bool
	suggestions []adapter.CategorySuggestion
	candidates  []string
	err         error
}

func (f *fakeSuggester) IsAvailable() bool { return f.available }

func (f *fakeSuggester) Suggest(ctx context.Context, description string, candidates []string) ([]adapter.CategorySuggestion, error) {
	f.candidates = candidates
	return f.suggestions, f.err
}

func TestSuggestCategory_Unavailable(t *testing.T) {
	uc := NewSuggestCategoryUseCase(&fakeExpenseRepository{}, &fakeSuggester{available: false})

	_, err := uc.Execute(context.Background(), SuggestCategoryInput{
		OwnerID:     uuid.New(),
		Description: "diesel for the delivery van",
	})
	if !errors.Is(err, domainerror.ErrSuggestionUnavailable) {
		t.Fatalf("expected ErrSuggestionUnavailable, got %v", err)
	}
}

func TestSuggestCategory_OwnerCategoriesComeFirst(t *testing.T) {
	ownerID := uuid.New()
	batch := entity.NewExpenseBatch(ownerID, time.Now(), []entity.ExpenseLine{line("Fuel", 60)})
	repo := &fakeExpenseRepository{expenses: batch}
	suggester := &fakeSuggester{
		available:   true,
		suggestions: []adapter.CategorySuggestion{{Category: "Fuel", Confidence: 0.9}},
	}

	uc := NewSuggestCategoryUseCase(repo, suggester)

	out, err := uc.Execute(context.Background(), SuggestCategoryInput{
		OwnerID:     ownerID,
		Description: "diesel for the delivery van",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(out.Suggestions) != 1 || out.Suggestions[0].Category != "Fuel" {
		t.Fatalf("unexpected suggestions: %v", out.Suggestions)
	}
	if len(suggester.candidates) == 0 || suggester.candidates[0] != "Fuel" {
		t.Errorf("owner's historical categories should lead the candidates: %v", suggester.candidates)
	}
	// Defaults fill in after the owner's own vocabulary.
	found := false
	for _, c := range suggester.candidates[1:] {
		if c == "Rent" {
			found = true
		}
	}
	if !found {
		t.Errorf("default categories missing from candidates: %v", suggester.candidates)
	}
}

func TestSuggestCategory_BlankDescription(t *testing.T) {
	uc := NewSuggestCategoryUseCase(&fakeExpenseRepository{}, &fakeSuggester{available: true})

	_, err := uc.Execute(context.Background(), SuggestCategoryInput{
		OwnerID:     uuid.New(),
		Description: "   ",
	})
	if !errors.Is(err, domainerror.ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
}
