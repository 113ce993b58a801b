package expense

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for category suggestion.
type SuggestCategoryInput struct {
	OwnerID     uuid.UUID
	Description string
}

// SuggestCategoryOutput represents the output of category suggestion.
type SuggestCategoryOutput struct {
	Suggestions []adapter.CategorySuggestion
}

// SuggestCategoryUseCase proposes expense categories for a free-text
// description. The owner's existing categories are passed as candidates so the
// suggester prefers vocabulary already in use; the built-in defaults fill the
// gaps for new accounts.
type SuggestCategoryUseCase struct {
	expenseRepo adapter.ExpenseRepository
	suggester   adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(expenseRepo adapter.ExpenseRepository, suggester adapter.CategorySuggester) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		expenseRepo: expenseRepo,
		suggester:   suggester,
	}
}

// Execute returns category suggestions, best match first.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeEmptyDescription,
			"description is required",
			domainerror.ErrEmptyDescription,
		)
	}

	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeSuggestionUnavailable,
			"category suggestion unavailable",
			domainerror.ErrSuggestionUnavailable,
		)
	}

	candidates, err := uc.collectCandidates(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect candidate categories: %w", err)
	}

	suggestions, err := uc.suggester.Suggest(ctx, input.Description, candidates)
	if err != nil {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeSuggestionUnavailable,
			"category suggestion failed",
			err,
		)
	}

	return &SuggestCategoryOutput{Suggestions: suggestions}, nil
}

// collectCandidates merges the owner's historical categories with the default
// set, preserving first-seen order and deduplicating by exact string.
func (uc *SuggestCategoryUseCase) collectCandidates(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	expenses, err := uc.expenseRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var candidates []string
	for _, e := range expenses {
		if e.Category != "" && !seen[e.Category] {
			seen[e.Category] = true
			candidates = append(candidates, e.Category)
		}
	}
	for _, c := range entity.SuggestedExpenseCategories {
		if !seen[c] {
			seen[c] = true
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}
