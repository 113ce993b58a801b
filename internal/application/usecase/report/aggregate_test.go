// Package report contains the time-windowed financial aggregation core.
package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/entity"
)

func expenseOn(day time.Time, amount int64) *entity.Expense {
	return &entity.Expense{
		ID:            "EXP-1-0",
		Date:          day,
		Category:      "Other",
		ExpenseAmount: decimal.NewFromInt(amount),
	}
}

func item(quantity, reorderLevel int) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:           uuid.New(),
		SKU:          "GEN-1",
		Product:      "item",
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	}
}

func TestAggregate_Empty(t *testing.T) {
	m := Aggregate(nil, nil, nil)

	if !m.TotalSales.IsZero() || !m.TotalExpenses.IsZero() || !m.Profit.IsZero() {
		t.Errorf("expected zero totals, got sales=%s expenses=%s profit=%s",
			m.TotalSales, m.TotalExpenses, m.Profit)
	}
	if len(m.Buckets) != 0 {
		t.Errorf("expected no buckets, got %d", len(m.Buckets))
	}
	if m.TransactionCount != 0 {
		t.Errorf("expected transaction count 0, got %d", m.TransactionCount)
	}
}

func TestAggregate_MonthExample(t *testing.T) {
	// One sale of 3600 on Jan 15 and one expense of 450 on Jan 5,
	// period "month" with now = 2025-01-20.
	now := date(2025, time.January, 20)
	r, err := ResolvePeriod(PeriodMonth, now, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sales, _ := FilterByDate([]*entity.Sale{saleOn(date(2025, time.January, 15), 3600)}, r)
	expenses, _ := FilterByDate([]*entity.Expense{expenseOn(date(2025, time.January, 5), 450)}, r)

	m := Aggregate(sales, expenses, nil)

	if !m.TotalSales.Equal(decimal.NewFromInt(3600)) {
		t.Errorf("expected total sales 3600, got %s", m.TotalSales)
	}
	if !m.TotalExpenses.Equal(decimal.NewFromInt(450)) {
		t.Errorf("expected total expenses 450, got %s", m.TotalExpenses)
	}
	if !m.Profit.Equal(decimal.NewFromInt(3150)) {
		t.Errorf("expected profit 3150, got %s", m.Profit)
	}
	if len(m.Buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(m.Buckets))
	}
	if !m.Buckets[0].Date.Equal(date(2025, time.January, 5)) {
		t.Errorf("expected first bucket 2025-01-05, got %v", m.Buckets[0].Date)
	}
	if !m.Buckets[1].Date.Equal(date(2025, time.January, 15)) {
		t.Errorf("expected second bucket 2025-01-15, got %v", m.Buckets[1].Date)
	}
	if m.TransactionCount != 2 {
		t.Errorf("expected transaction count 2, got %d", m.TransactionCount)
	}
}

func TestAggregate_ProfitIdentityAndBucketConservation(t *testing.T) {
	sales := []*entity.Sale{
		saleOn(date(2025, time.February, 1), 100),
		saleOn(date(2025, time.February, 1), 250),
		saleOn(date(2025, time.February, 3), 75),
	}
	expenses := []*entity.Expense{
		expenseOn(date(2025, time.February, 1), 40),
		expenseOn(date(2025, time.February, 2), 500),
	}

	m := Aggregate(sales, expenses, nil)

	if !m.Profit.Equal(m.TotalSales.Sub(m.TotalExpenses)) {
		t.Errorf("profit identity violated: %s != %s - %s", m.Profit, m.TotalSales, m.TotalExpenses)
	}

	// No record double-counted or dropped: bucket sums equal the totals.
	bucketSales := decimal.Zero
	bucketExpenses := decimal.Zero
	for _, b := range m.Buckets {
		bucketSales = bucketSales.Add(b.Sales)
		bucketExpenses = bucketExpenses.Add(b.Expenses)
		if !b.Profit.Equal(b.Sales.Sub(b.Expenses)) {
			t.Errorf("bucket %v: profit identity violated", b.Date)
		}
	}
	if !bucketSales.Equal(m.TotalSales) {
		t.Errorf("bucket sales sum %s != total sales %s", bucketSales, m.TotalSales)
	}
	if !bucketExpenses.Equal(m.TotalExpenses) {
		t.Errorf("bucket expense sum %s != total expenses %s", bucketExpenses, m.TotalExpenses)
	}

	// Profit may be negative; that is a valid result, not an error.
	if m.Profit.Sign() >= 0 {
		t.Errorf("fixture should produce a loss, got profit %s", m.Profit)
	}
}

func TestAggregate_BucketsSortedAndUnique(t *testing.T) {
	sales := []*entity.Sale{
		saleOn(date(2025, time.March, 9), 10),
		saleOn(date(2025, time.March, 1), 20),
		saleOn(date(2025, time.March, 9), 30),
		saleOn(date(2025, time.March, 4), 40),
	}

	m := Aggregate(sales, nil, nil)

	if len(m.Buckets) != 3 {
		t.Fatalf("expected 3 unique dates, got %d buckets", len(m.Buckets))
	}
	for i := 1; i < len(m.Buckets); i++ {
		if !m.Buckets[i-1].Date.Before(m.Buckets[i].Date) {
			t.Errorf("buckets not strictly ascending at position %d", i)
		}
	}
	// Both March 9 sales merged into the last bucket.
	if !m.Buckets[2].Sales.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected March 9 bucket to sum to 40, got %s", m.Buckets[2].Sales)
	}
}

func TestAggregate_NegativeAmountClampedAndCounted(t *testing.T) {
	expenses := []*entity.Expense{
		expenseOn(date(2025, time.April, 1), 100),
		expenseOn(date(2025, time.April, 2), -50),
	}

	m := Aggregate(nil, expenses, nil)

	if !m.TotalExpenses.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected negative amount excluded from total, got %s", m.TotalExpenses)
	}
	if m.AnomalyCount != 1 {
		t.Errorf("expected 1 anomaly, got %d", m.AnomalyCount)
	}
	// The anomalous record still occupies its date bucket with zero value.
	if !m.Profit.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("expected profit -100, got %s", m.Profit)
	}
}

func TestCountStock(t *testing.T) {
	tests := []struct {
		name     string
		item     *entity.InventoryItem
		wantLow  int
		wantOut  int
	}{
		{"zero quantity is out of stock", item(0, 5), 0, 1},
		{"under reorder level is low", item(3, 5), 1, 0},
		{"at reorder level is low", item(5, 5), 1, 0},
		{"above reorder level is neither", item(10, 5), 0, 0},
		{"missing reorder level defaults to 5", item(4, 0), 1, 0},
		{"missing reorder level, healthy quantity", item(6, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := CountStock([]*entity.InventoryItem{tt.item})
			if counts.LowStock != tt.wantLow {
				t.Errorf("expected low=%d, got %d", tt.wantLow, counts.LowStock)
			}
			if counts.OutOfStock != tt.wantOut {
				t.Errorf("expected out=%d, got %d", tt.wantOut, counts.OutOfStock)
			}
		})
	}
}

func TestZeroFillBuckets(t *testing.T) {
	r := NewDateRange(date(2025, time.May, 1), date(2025, time.May, 5))
	m := Aggregate([]*entity.Sale{saleOn(date(2025, time.May, 3), 10)}, nil, nil)

	filled := ZeroFillBuckets(m.Buckets, r)
	if len(filled) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(filled))
	}
	for i, b := range filled {
		want := date(2025, time.May, 1+i)
		if !b.Date.Equal(want) {
			t.Errorf("bucket %d: expected %v, got %v", i, want, b.Date)
		}
	}
	if !filled[2].Sales.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected May 3 bucket to carry the sale, got %s", filled[2].Sales)
	}
	if !filled[0].Sales.IsZero() || !filled[4].Expenses.IsZero() {
		t.Error("expected gap buckets to be zero-valued")
	}
}
