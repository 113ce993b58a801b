// Package dto defines request/response structures for the API endpoints.
package dto

import (
	"github.com/stockbook/backend/internal/application/usecase/report"
)

// RangeResponse represents a resolved date range. Start and End are empty for
// the unbounded all-time range.
type RangeResponse struct {
	Period string `json:"period"`
	Start  string `json:"start,omitempty"`
	End    string `json:"end,omitempty"`
}

// BucketResponse represents one per-date bucket.
type BucketResponse struct {
	Date     string `json:"date"`
	Sales    string `json:"sales"`
	Expenses string `json:"expenses"`
	Profit   string `json:"profit"`
}

// SummaryResponse represents the dashboard summary for a period.
type SummaryResponse struct {
	Range            RangeResponse       `json:"range"`
	TotalSales       string              `json:"totalSales"`
	TotalExpenses    string              `json:"totalExpenses"`
	Profit           string              `json:"profit"`
	TransactionCount int                 `json:"transactionCount"`
	AnomalyCount     int                 `json:"anomalyCount"`
	Stock            StockCountsResponse `json:"stock"`
	Buckets          []BucketResponse    `json:"buckets"`
}

// GroupResponse represents one breakdown group.
type GroupResponse struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Sum        string  `json:"sum"`
	Percentage float64 `json:"percentage"`
}

// BreakdownResponse represents a category or product breakdown.
type BreakdownResponse struct {
	Kind   string          `json:"kind"`
	Range  RangeResponse   `json:"range"`
	Total  string          `json:"total"`
	Groups []GroupResponse `json:"groups"`
}

// ToBreakdownResponse converts breakdown output.
func ToBreakdownResponse(kind report.BreakdownKind, period report.PeriodToken, out *report.GetBreakdownOutput) BreakdownResponse {
	groups := make([]GroupResponse, len(out.Entries))
	for i, e := range out.Entries {
		groups[i] = GroupResponse{
			Key:        e.Key,
			Count:      e.Count,
			Sum:        e.Sum.StringFixed(2),
			Percentage: e.Percentage,
		}
	}
	return BreakdownResponse{
		Kind:   string(kind),
		Range:  ToRangeResponse(period, out.Range),
		Total:  out.Total.StringFixed(2),
		Groups: groups,
	}
}

// TrendResponse represents per-date trend buckets.
type TrendResponse struct {
	Range   RangeResponse    `json:"range"`
	Buckets []BucketResponse `json:"buckets"`
}

// ToRangeResponse converts a resolved DateRange.
func ToRangeResponse(period report.PeriodToken, r report.DateRange) RangeResponse {
	resp := RangeResponse{Period: string(period)}
	if !r.Unbounded() {
		resp.Start = r.Start.Format("2006-01-02")
		resp.End = r.End.Format("2006-01-02")
	}
	return resp
}

// ToBucketResponses converts aggregation buckets.
func ToBucketResponses(buckets []report.Bucket) []BucketResponse {
	responses := make([]BucketResponse, len(buckets))
	for i, b := range buckets {
		responses[i] = BucketResponse{
			Date:     b.Date.Format("2006-01-02"),
			Sales:    b.Sales.StringFixed(2),
			Expenses: b.Expenses.StringFixed(2),
			Profit:   b.Profit.StringFixed(2),
		}
	}
	return responses
}

// ToSummaryResponse converts period metrics to the dashboard payload.
func ToSummaryResponse(period report.PeriodToken, r report.DateRange, m report.Metrics) SummaryResponse {
	return SummaryResponse{
		Range:            ToRangeResponse(period, r),
		TotalSales:       m.TotalSales.StringFixed(2),
		TotalExpenses:    m.TotalExpenses.StringFixed(2),
		Profit:           m.Profit.StringFixed(2),
		TransactionCount: m.TransactionCount,
		AnomalyCount:     m.AnomalyCount,
		Stock: StockCountsResponse{
			LowStock:   m.Stock.LowStock,
			OutOfStock: m.Stock.OutOfStock,
		},
		Buckets: ToBucketResponses(m.Buckets),
	}
}
