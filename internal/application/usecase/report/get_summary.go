// Package report contains the time-windowed financial aggregation core.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetSummaryInput represents the input for computing a period summary. Now is
// an explicit parameter so the pipeline stays a pure function of its inputs;
// callers pass wall-clock time, tests pass fixtures.
type GetSummaryInput struct {
	OwnerID    uuid.UUID
	Period     PeriodToken
	Now        time.Time
	CustomDate *time.Time
}

// GetSummaryOutput represents the output of computing a period summary.
type GetSummaryOutput struct {
	Range   DateRange
	Metrics Metrics
}

// GetSummaryUseCase runs the resolve -> filter -> aggregate pipeline over a
// fresh snapshot. Each invocation recomputes from scratch; there is no cache
// to go stale.
type GetSummaryUseCase struct {
	snapshots SnapshotRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(snapshots SnapshotRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		snapshots: snapshots,
	}
}

// Execute resolves the period, filters the snapshot, and aggregates metrics.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	dateRange, err := ResolvePeriod(input.Period, input.Now, input.CustomDate)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.snapshots.LoadSnapshot(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	return &GetSummaryOutput{
		Range:   dateRange,
		Metrics: Summarize(snapshot, dateRange),
	}, nil
}

// Summarize filters a snapshot by range and aggregates it. Split out from
// Execute so the snapshot watcher can reuse the same pipeline without a
// repository round trip.
func Summarize(snapshot *Snapshot, dateRange DateRange) Metrics {
	sales, saleAnomalies := FilterByDate(snapshot.Sales, dateRange)
	expenses, expenseAnomalies := FilterByDate(snapshot.Expenses, dateRange)

	metrics := Aggregate(sales, expenses, snapshot.Items)
	metrics.AnomalyCount += len(saleAnomalies) + len(expenseAnomalies)
	return metrics
}
