// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/application/usecase/expense"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
	"github.com/stockbook/backend/internal/integration/entrypoint/dto"
	"github.com/stockbook/backend/internal/integration/entrypoint/middleware"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	recordUseCase  *expense.RecordExpensesUseCase
	deleteUseCase  *expense.DeleteExpenseUseCase
	listUseCase    *expense.ListExpensesUseCase
	suggestUseCase *expense.SuggestCategoryUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	recordUseCase *expense.RecordExpensesUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	listUseCase *expense.ListExpensesUseCase,
	suggestUseCase *expense.SuggestCategoryUseCase,
) *ExpenseController {
	return &ExpenseController{
		recordUseCase:  recordUseCase,
		deleteUseCase:  deleteUseCase,
		listUseCase:    listUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// Record handles POST /expenses requests. The body carries the whole
// submission; every line is validated before anything is persisted.
func (c *ExpenseController) Record(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.RecordExpensesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptyExpenseLines),
		})
		return
	}

	lines := make([]entity.ExpenseLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		date, err := time.Parse("2006-01-02", l.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidExpenseDate),
			})
			return
		}
		lines = append(lines, entity.ExpenseLine{
			Date:          date,
			Category:      l.Category,
			Description:   l.Description,
			Amount:        decimal.NewFromFloat(l.Amount),
			PaymentMethod: entity.PaymentMethod(l.PaymentMethod),
			Status:        entity.ExpenseStatus(l.Status),
		})
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), expense.RecordExpensesInput{
		OwnerID:     ownerID,
		SubmittedAt: time.Now(),
		Lines:       lines,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	responses := make([]dto.ExpenseResponse, len(output.Expenses))
	for i, e := range output.Expenses {
		responses[i] = dto.ToExpenseResponse(e)
	}
	ctx.JSON(http.StatusCreated, gin.H{"expenses": responses})
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	period, customDate, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), expense.ListExpensesInput{
		OwnerID:    ownerID,
		Period:     period,
		Now:        time.Now(),
		CustomDate: customDate,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	rangeResp := dto.ToRangeResponse(period, output.Range)
	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output.Expenses, rangeResp))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: ctx.Param("id"),
		OwnerID:   ownerID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: output.Success})
}

// SuggestCategory handles POST /expenses/suggest-category requests.
func (c *ExpenseController) SuggestCategory(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.SuggestCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptyDescription),
		})
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), expense.SuggestCategoryInput{
		OwnerID:     ownerID,
		Description: req.Description,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestCategoryResponse(output.Suggestions))
}

// handleExpenseError maps domain errors to HTTP responses.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expenseErr *domainerror.ExpenseError
	if errors.As(err, &expenseErr) {
		status := http.StatusBadRequest
		switch expenseErr.Code {
		case domainerror.ErrCodeExpenseNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedExpense:
			status = http.StatusForbidden
		case domainerror.ErrCodeSuggestionUnavailable:
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: expenseErr.Message,
			Code:  string(expenseErr.Code),
		})
		return
	}

	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
		Code:  string(domainerror.ErrCodeExpenseInternalError),
	})
}
