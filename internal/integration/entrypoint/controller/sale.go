// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/application/usecase/report"
	"github.com/stockbook/backend/internal/application/usecase/sale"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
	"github.com/stockbook/backend/internal/integration/entrypoint/dto"
	"github.com/stockbook/backend/internal/integration/entrypoint/middleware"
)

// SaleController handles sale endpoints.
type SaleController struct {
	recordUseCase *sale.RecordSaleUseCase
	deleteUseCase *sale.DeleteSaleUseCase
	listUseCase   *sale.ListSalesUseCase
}

// NewSaleController creates a new sale controller instance.
func NewSaleController(
	recordUseCase *sale.RecordSaleUseCase,
	deleteUseCase *sale.DeleteSaleUseCase,
	listUseCase *sale.ListSalesUseCase,
) *SaleController {
	return &SaleController{
		recordUseCase: recordUseCase,
		deleteUseCase: deleteUseCase,
		listUseCase:   listUseCase,
	}
}

// Record handles POST /sales requests.
func (c *SaleController) Record(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.RecordSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidSaleDate),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidSaleDate),
		})
		return
	}

	var productID *uuid.UUID
	if req.ProductID != nil && *req.ProductID != "" {
		id, err := uuid.Parse(*req.ProductID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid product ID format",
				Code:  string(domainerror.ErrCodeSaleProductNotFound),
			})
			return
		}
		productID = &id
	}

	input := sale.RecordSaleInput{
		OwnerID:       ownerID,
		Date:          date,
		ProductID:     productID,
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		UnitPrice:     decimal.NewFromFloat(req.UnitPrice),
		Customer:      req.Customer,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSaleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(output.Sale))
}

// List handles GET /sales requests.
func (c *SaleController) List(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	period, customDate, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), sale.ListSalesInput{
		OwnerID:    ownerID,
		Period:     period,
		Now:        time.Now(),
		CustomDate: customDate,
	})
	if err != nil {
		c.handleSaleError(ctx, err)
		return
	}

	rangeResp := dto.ToRangeResponse(period, output.Range)
	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(output.Sales, rangeResp))
}

// Delete handles DELETE /sales/:id requests.
func (c *SaleController) Delete(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	saleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid sale ID format",
			Code:  string(domainerror.ErrCodeSaleNotFound),
		})
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), sale.DeleteSaleInput{
		SaleID:  saleID,
		OwnerID: ownerID,
	})
	if err != nil {
		c.handleSaleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: output.Success})
}

// handleSaleError maps domain errors to HTTP responses.
func (c *SaleController) handleSaleError(ctx *gin.Context, err error) {
	var saleErr *domainerror.SaleError
	if errors.As(err, &saleErr) {
		status := http.StatusBadRequest
		switch saleErr.Code {
		case domainerror.ErrCodeSaleNotFound, domainerror.ErrCodeSaleProductNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedSale:
			status = http.StatusForbidden
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: saleErr.Message,
			Code:  string(saleErr.Code),
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
		Code:  string(domainerror.ErrCodeSaleInternalError),
	})
}

// respondUnauthenticated writes the standard missing-authentication response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}

// parsePeriodQuery reads the period and optional date query parameters shared
// by the list, report, and export endpoints. It writes the error response
// itself and returns ok=false when parsing fails.
func parsePeriodQuery(ctx *gin.Context) (report.PeriodToken, *time.Time, bool) {
	period := report.PeriodToken(ctx.DefaultQuery("period", string(report.PeriodMonth)))

	var customDate *time.Time
	if dateStr := ctx.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return "", nil, false
		}
		customDate = &parsed
	}

	return period, customDate, true
}
