// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockbook/backend/internal/application/usecase/export"
	domainerror "github.com/stockbook/backend/internal/domain/error"
	"github.com/stockbook/backend/internal/integration/entrypoint/dto"
	"github.com/stockbook/backend/internal/integration/entrypoint/middleware"
)

// ExportController handles CSV export endpoints.
type ExportController struct {
	exportUseCase *export.ExportRecordsUseCase
}

// NewExportController creates a new export controller instance.
func NewExportController(exportUseCase *export.ExportRecordsUseCase) *ExportController {
	return &ExportController{
		exportUseCase: exportUseCase,
	}
}

// Download handles GET /export/:kind requests, streaming the filtered records
// as a CSV attachment.
func (c *ExportController) Download(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	period, customDate, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), export.ExportRecordsInput{
		OwnerID:    ownerID,
		Kind:       export.RecordKind(ctx.Param("kind")),
		Period:     period,
		Now:        time.Now(),
		CustomDate: customDate,
	})
	if err != nil {
		c.handleExportError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", output.Data)
}

// handleExportError maps domain errors to HTTP responses.
func (c *ExportController) handleExportError(ctx *gin.Context, err error) {
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
		Code:  string(domainerror.ErrCodeReportInternalError),
	})
}
