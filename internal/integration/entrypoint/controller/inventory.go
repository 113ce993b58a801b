// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/application/usecase/inventory"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
	"github.com/stockbook/backend/internal/integration/entrypoint/dto"
	"github.com/stockbook/backend/internal/integration/entrypoint/middleware"
)

// InventoryController handles inventory endpoints.
type InventoryController struct {
	createUseCase  *inventory.CreateItemUseCase
	restockUseCase *inventory.RestockItemUseCase
	listUseCase    *inventory.ListItemsUseCase
	deleteUseCase  *inventory.DeleteItemUseCase
}

// NewInventoryController creates a new inventory controller instance.
func NewInventoryController(
	createUseCase *inventory.CreateItemUseCase,
	restockUseCase *inventory.RestockItemUseCase,
	listUseCase *inventory.ListItemsUseCase,
	deleteUseCase *inventory.DeleteItemUseCase,
) *InventoryController {
	return &InventoryController{
		createUseCase:  createUseCase,
		restockUseCase: restockUseCase,
		listUseCase:    listUseCase,
		deleteUseCase:  deleteUseCase,
	}
}

// Create handles POST /inventory requests.
func (c *InventoryController) Create(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingProductName),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), inventory.CreateItemInput{
		OwnerID:      ownerID,
		SKU:          req.SKU,
		Product:      req.Product,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Cost:         decimal.NewFromFloat(req.Cost),
		Price:        decimal.NewFromFloat(req.Price),
		ReorderLevel: req.ReorderLevel,
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToInventoryItemResponse(output.Item))
}

// List handles GET /inventory requests. An optional status query parameter
// narrows the list to ok/low/out items.
func (c *InventoryController) List(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), inventory.ListItemsInput{
		OwnerID:      ownerID,
		StatusFilter: entity.StockStatus(ctx.Query("status")),
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInventoryListResponse(output.Items, output.Stock))
}

// Restock handles POST /inventory/:id/restock requests.
func (c *InventoryController) Restock(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	itemID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid item ID format",
			Code:  string(domainerror.ErrCodeItemNotFound),
		})
		return
	}

	var req dto.RestockItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidRestockQuantity),
		})
		return
	}

	output, err := c.restockUseCase.Execute(ctx.Request.Context(), inventory.RestockItemInput{
		ItemID:   itemID,
		OwnerID:  ownerID,
		Quantity: req.Quantity,
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInventoryItemResponse(output.Item))
}

// Delete handles DELETE /inventory/:id requests.
func (c *InventoryController) Delete(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	itemID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid item ID format",
			Code:  string(domainerror.ErrCodeItemNotFound),
		})
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), inventory.DeleteItemInput{
		ItemID:  itemID,
		OwnerID: ownerID,
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: output.Success})
}

// handleInventoryError maps domain errors to HTTP responses.
func (c *InventoryController) handleInventoryError(ctx *gin.Context, err error) {
	var invErr *domainerror.InventoryError
	if errors.As(err, &invErr) {
		status := http.StatusBadRequest
		switch invErr.Code {
		case domainerror.ErrCodeItemNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedItem:
			status = http.StatusForbidden
		case domainerror.ErrCodeDuplicateSKU:
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: invErr.Message,
			Code:  string(invErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
		Code:  string(domainerror.ErrCodeInventoryInternalError),
	})
}
