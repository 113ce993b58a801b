// Package dto defines request/response structures for the API endpoints.
package dto

import (
	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
)

// ExpenseLineRequest represents one line item in an expense submission.
type ExpenseLineRequest struct {
	Date          string  `json:"date" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	Status        string  `json:"status"`
}

// RecordExpensesRequest represents the request body for an expense submission.
type RecordExpensesRequest struct {
	Lines []ExpenseLineRequest `json:"lines" binding:"required"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Range    RangeResponse     `json:"range"`
}

// SuggestCategoryRequest represents the request body for category suggestions.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required"`
}

// CategorySuggestionResponse represents a single category suggestion.
type CategorySuggestionResponse struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// SuggestCategoryResponse represents the response for category suggestions.
type SuggestCategoryResponse struct {
	Suggestions []CategorySuggestionResponse `json:"suggestions"`
}

// ToExpenseResponse converts an Expense entity to an ExpenseResponse.
func ToExpenseResponse(expense *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            expense.ID,
		Date:          expense.Date.Format("2006-01-02"),
		Category:      expense.Category,
		Description:   expense.Description,
		Amount:        expense.ExpenseAmount.StringFixed(2),
		PaymentMethod: string(expense.PaymentMethod),
		Status:        string(expense.Status),
	}
}

// ToExpenseListResponse converts a slice of expenses with its range.
func ToExpenseListResponse(expenses []*entity.Expense, rangeResp RangeResponse) ExpenseListResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{
		Expenses: responses,
		Range:    rangeResp,
	}
}

// ToSuggestCategoryResponse converts suggester output.
func ToSuggestCategoryResponse(suggestions []adapter.CategorySuggestion) SuggestCategoryResponse {
	responses := make([]CategorySuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		responses[i] = CategorySuggestionResponse{
			Category:   s.Category,
			Confidence: s.Confidence,
		}
	}
	return SuggestCategoryResponse{Suggestions: responses}
}
