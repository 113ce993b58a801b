// Package report contains the time-windowed financial aggregation core.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/entity"
)

// Aggregate reduces filtered sales and expenses, plus the full inventory
// collection, into dashboard metrics. It never fails: a negative amount or
// quantity contributes zero and is counted as an anomaly instead of
// propagating. All monetary sums use decimal accumulation, so
// Profit == TotalSales - TotalExpenses holds exactly.
func Aggregate(sales []*entity.Sale, expenses []*entity.Expense, items []*entity.InventoryItem) Metrics {
	totalSales := decimal.Zero
	totalExpenses := decimal.Zero
	anomalies := 0

	type daily struct {
		sales    decimal.Decimal
		expenses decimal.Decimal
	}
	byDate := make(map[string]daily)
	dates := make(map[string]time.Time)

	for _, s := range sales {
		amount := s.Total
		if amount.IsNegative() || s.Quantity < 0 {
			anomalies++
			amount = decimal.Zero
		}
		totalSales = totalSales.Add(amount)

		key := DayOf(s.Date).Format("2006-01-02")
		d := byDate[key]
		d.sales = d.sales.Add(amount)
		byDate[key] = d
		dates[key] = DayOf(s.Date)
	}

	for _, e := range expenses {
		amount := e.ExpenseAmount
		if amount.IsNegative() {
			anomalies++
			amount = decimal.Zero
		}
		totalExpenses = totalExpenses.Add(amount)

		key := DayOf(e.Date).Format("2006-01-02")
		d := byDate[key]
		d.expenses = d.expenses.Add(amount)
		byDate[key] = d
		dates[key] = DayOf(e.Date)
	}

	buckets := make([]Bucket, 0, len(byDate))
	for key, d := range byDate {
		buckets = append(buckets, Bucket{
			Date:     dates[key],
			Sales:    d.sales,
			Expenses: d.expenses,
			Profit:   d.sales.Sub(d.expenses),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date.Before(buckets[j].Date)
	})

	return Metrics{
		TotalSales:       totalSales,
		TotalExpenses:    totalExpenses,
		Profit:           totalSales.Sub(totalExpenses),
		Buckets:          buckets,
		Stock:            CountStock(items),
		TransactionCount: len(sales) + len(expenses),
		AnomalyCount:     anomalies,
	}
}

// CountStock classifies the inventory collection. Out of stock means zero
// quantity; low stock means a positive quantity at or under the item's
// reorder level.
func CountStock(items []*entity.InventoryItem) StockCounts {
	var counts StockCounts
	for _, item := range items {
		switch item.Status() {
		case entity.StockStatusOut:
			counts.OutOfStock++
		case entity.StockStatusLow:
			counts.LowStock++
		}
	}
	return counts
}

// ZeroFillBuckets expands buckets to one entry per calendar day of r,
// inserting zero-valued buckets for days absent from the input. Chart
// consumers that want gapless series call this; the aggregator itself never
// invents dates. An unbounded range is returned unchanged since it has no
// day boundaries to fill between.
func ZeroFillBuckets(buckets []Bucket, r DateRange) []Bucket {
	if r.Unbounded() {
		return buckets
	}

	byDate := make(map[string]Bucket, len(buckets))
	for _, b := range buckets {
		byDate[b.Date.Format("2006-01-02")] = b
	}

	var filled []Bucket
	for day := r.Start; !day.After(r.End); day = day.AddDate(0, 0, 1) {
		if b, ok := byDate[day.Format("2006-01-02")]; ok {
			filled = append(filled, b)
			continue
		}
		filled = append(filled, Bucket{
			Date:     day,
			Sales:    decimal.Zero,
			Expenses: decimal.Zero,
			Profit:   decimal.Zero,
		})
	}
	return filled
}
