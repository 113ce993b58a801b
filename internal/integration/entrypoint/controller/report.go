// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockbook/backend/internal/application/usecase/report"
	domainerror "github.com/stockbook/backend/internal/domain/error"
	"github.com/stockbook/backend/internal/integration/entrypoint/dto"
	"github.com/stockbook/backend/internal/integration/entrypoint/middleware"
	"github.com/stockbook/backend/internal/integration/stream"
)

// ReportController handles report endpoints.
type ReportController struct {
	summaryUseCase   *report.GetSummaryUseCase
	breakdownUseCase *report.GetBreakdownUseCase
	trendUseCase     *report.GetTrendBucketsUseCase
	liveMetrics      *stream.MetricsHolder
}

// NewReportController creates a new report controller instance.
func NewReportController(
	summaryUseCase *report.GetSummaryUseCase,
	breakdownUseCase *report.GetBreakdownUseCase,
	trendUseCase *report.GetTrendBucketsUseCase,
	liveMetrics *stream.MetricsHolder,
) *ReportController {
	return &ReportController{
		summaryUseCase:   summaryUseCase,
		breakdownUseCase: breakdownUseCase,
		trendUseCase:     trendUseCase,
		liveMetrics:      liveMetrics,
	}
}

// Summary handles GET /reports/summary requests.
func (c *ReportController) Summary(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	period, customDate, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), report.GetSummaryInput{
		OwnerID:    ownerID,
		Period:     period,
		Now:        time.Now(),
		CustomDate: customDate,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(period, output.Range, output.Metrics))
}

// Breakdown handles GET /reports/breakdown requests. The kind query parameter
// selects expenses_by_category (default) or sales_by_product.
func (c *ReportController) Breakdown(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	period, customDate, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	kind := report.BreakdownKind(ctx.DefaultQuery("kind", string(report.BreakdownExpensesByCategory)))

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), report.GetBreakdownInput{
		OwnerID:    ownerID,
		Kind:       kind,
		Period:     period,
		Now:        time.Now(),
		CustomDate: customDate,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBreakdownResponse(kind, period, output))
}

// Trend handles GET /reports/trend requests.
func (c *ReportController) Trend(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	period, customDate, ok := parsePeriodQuery(ctx)
	if !ok {
		return
	}

	output, err := c.trendUseCase.Execute(ctx.Request.Context(), report.GetTrendBucketsInput{
		OwnerID:    ownerID,
		Period:     period,
		Now:        time.Now(),
		CustomDate: customDate,
		ZeroFill:   ctx.Query("zeroFill") == "true",
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TrendResponse{
		Range:   dto.ToRangeResponse(period, output.Range),
		Buckets: dto.ToBucketResponses(output.Buckets),
	})
}

// Live handles GET /reports/live requests. It serves the all-time metrics the
// change watcher keeps in memory, without touching the database. Until the
// first recompute for the owner lands there is nothing to show, so the
// endpoint answers 204 rather than a misleading all-zero summary.
func (c *ReportController) Live(ctx *gin.Context) {
	ownerID, ok := middleware.GetOwnerIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	metrics, hasData := c.liveMetrics.Get(ownerID)
	if !hasData {
		ctx.Status(http.StatusNoContent)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(report.PeriodAll, report.UnboundedRange(), metrics))
}

// handleReportError maps domain errors to HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		status := http.StatusBadRequest
		if reportErr.Code == domainerror.ErrCodeNoSnapshot {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, dto.ErrorResponse{
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
