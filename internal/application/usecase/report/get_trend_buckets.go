// Package report contains the time-windowed financial aggregation core.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetTrendBucketsInput represents the input for building a chart series.
type GetTrendBucketsInput struct {
	OwnerID    uuid.UUID
	Period     PeriodToken
	Now        time.Time
	CustomDate *time.Time
	ZeroFill   bool // insert zero buckets for days with no records
}

// GetTrendBucketsOutput represents the output of building a chart series.
type GetTrendBucketsOutput struct {
	Range   DateRange
	Buckets []Bucket
}

// GetTrendBucketsUseCase produces the per-date bucket series consumed by
// charts.
type GetTrendBucketsUseCase struct {
	snapshots SnapshotRepository
}

// NewGetTrendBucketsUseCase creates a new GetTrendBucketsUseCase instance.
func NewGetTrendBucketsUseCase(snapshots SnapshotRepository) *GetTrendBucketsUseCase {
	return &GetTrendBucketsUseCase{
		snapshots: snapshots,
	}
}

// Execute resolves the period and returns the bucket series, optionally
// zero-filled for gapless rendering.
func (uc *GetTrendBucketsUseCase) Execute(ctx context.Context, input GetTrendBucketsInput) (*GetTrendBucketsOutput, error) {
	dateRange, err := ResolvePeriod(input.Period, input.Now, input.CustomDate)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.snapshots.LoadSnapshot(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	metrics := Summarize(snapshot, dateRange)

	buckets := metrics.Buckets
	if input.ZeroFill {
		buckets = ZeroFillBuckets(buckets, dateRange)
	}

	return &GetTrendBucketsOutput{
		Range:   dateRange,
		Buckets: buckets,
	}, nil
}
