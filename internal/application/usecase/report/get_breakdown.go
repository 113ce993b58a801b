// Package report contains the time-windowed financial aggregation core.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// BreakdownKind selects which collection a breakdown summarizes.
type BreakdownKind string

const (
	// BreakdownExpensesByCategory groups expenses by their category string.
	BreakdownExpensesByCategory BreakdownKind = "expenses_by_category"
	// BreakdownSalesByProduct groups sales by their product-name snapshot.
	BreakdownSalesByProduct BreakdownKind = "sales_by_product"
)

// GetBreakdownInput represents the input for computing a breakdown.
type GetBreakdownInput struct {
	OwnerID    uuid.UUID
	Kind       BreakdownKind
	Period     PeriodToken
	Now        time.Time
	CustomDate *time.Time
}

// BreakdownEntry is one group of the breakdown with its share of the total.
type BreakdownEntry struct {
	Key        string
	Count      int
	Sum        decimal.Decimal
	Percentage float64
}

// GetBreakdownOutput represents the output of computing a breakdown.
type GetBreakdownOutput struct {
	Range   DateRange
	Total   decimal.Decimal
	Entries []BreakdownEntry
}

// GetBreakdownUseCase computes per-category expense or per-product sales
// summaries over a period. Grouping keys are matched exactly; inconsistent
// casing in stored data produces separate groups.
type GetBreakdownUseCase struct {
	snapshots SnapshotRepository
}

// NewGetBreakdownUseCase creates a new GetBreakdownUseCase instance.
func NewGetBreakdownUseCase(snapshots SnapshotRepository) *GetBreakdownUseCase {
	return &GetBreakdownUseCase{
		snapshots: snapshots,
	}
}

// Execute resolves the period and groups the selected collection.
func (uc *GetBreakdownUseCase) Execute(ctx context.Context, input GetBreakdownInput) (*GetBreakdownOutput, error) {
	if input.Kind != BreakdownExpensesByCategory && input.Kind != BreakdownSalesByProduct {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidBreakdownKind,
			fmt.Sprintf("unknown breakdown kind %q", input.Kind),
			domainerror.ErrInvalidBreakdownKind,
		)
	}

	dateRange, err := ResolvePeriod(input.Period, input.Now, input.CustomDate)
	if err != nil {
		return nil, err
	}

	snapshot, err := uc.snapshots.LoadSnapshot(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var groups []Group
	switch input.Kind {
	case BreakdownSalesByProduct:
		sales, _ := FilterByDate(snapshot.Sales, dateRange)
		groups = GroupBy(sales, func(s *entity.Sale) string { return s.ProductName })
	default:
		expenses, _ := FilterByDate(snapshot.Expenses, dateRange)
		groups = GroupBy(expenses, func(e *entity.Expense) string { return e.Category })
	}

	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Sum)
	}

	entries := make([]BreakdownEntry, 0, len(groups))
	for _, g := range groups {
		var percentage float64
		if !total.IsZero() {
			pct := g.Sum.Mul(decimal.NewFromInt(100)).Div(total)
			percentage, _ = pct.Round(2).Float64()
		}
		entries = append(entries, BreakdownEntry{
			Key:        g.Key,
			Count:      g.Count,
			Sum:        g.Sum,
			Percentage: percentage,
		})
	}

	// Largest groups first, so the response order does not depend on how
	// the snapshot happened to be ordered.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Sum.Equal(entries[j].Sum) {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Sum.GreaterThan(entries[j].Sum)
	})

	return &GetBreakdownOutput{
		Range:   dateRange,
		Total:   total,
		Entries: entries,
	}, nil
}
