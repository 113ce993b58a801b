// Package report contains the time-windowed financial aggregation core:
// period resolution, date filtering, and metric rollups shared by the
// dashboard, list views, and exports.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodToken is a symbolic selector for a reporting window.
type PeriodToken string

const (
	PeriodToday  PeriodToken = "today"
	PeriodWeek   PeriodToken = "week"
	PeriodMonth  PeriodToken = "month"
	PeriodYear   PeriodToken = "year"
	PeriodCustom PeriodToken = "custom"
	PeriodAll    PeriodToken = "all"
)

// DateRange is an inclusive calendar-date interval. A zero-value bounds pair
// with unbounded set means "no filtering at all" rather than a literal huge
// interval, which sidesteps timezone edge cases at the limits of
// representable dates.
type DateRange struct {
	Start     time.Time
	End       time.Time
	unbounded bool
}

// NewDateRange builds a bounded range. Both dates are truncated to their
// calendar-date component in their own location.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		Start: DayOf(start),
		End:   DayOf(end),
	}
}

// UnboundedRange returns the sentinel "all time" range.
func UnboundedRange() DateRange {
	return DateRange{unbounded: true}
}

// Unbounded reports whether the range covers all time.
func (r DateRange) Unbounded() bool {
	return r.unbounded
}

// Contains reports whether the calendar date of t lies within the range.
// Only the year/month/day components are compared: a record stored as a UTC
// midnight matches a range resolved from local time even when the two
// locations differ, so boundary days are never dropped on non-UTC servers.
func (r DateRange) Contains(t time.Time) bool {
	if r.unbounded {
		return true
	}
	d := dateOrdinal(t)
	return d >= dateOrdinal(r.Start) && d <= dateOrdinal(r.End)
}

// dateOrdinal collapses a time to a comparable yyyymmdd value, ignoring
// clock time and location.
func dateOrdinal(t time.Time) int {
	year, month, day := t.Date()
	return year*10000 + int(month)*100 + day
}

// DayOf truncates t to its calendar date, keeping its location. Range
// membership never compares instants across locations; see Contains.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Dated is any record carrying a calendar date.
type Dated interface {
	RecordDate() time.Time
}

// Monetary is a dated record with a monetary value.
type Monetary interface {
	Dated
	Amount() decimal.Decimal
}

// AnomalyKind classifies a data-quality anomaly found during filtering or
// aggregation. Anomalous records are excluded and counted, never fatal.
type AnomalyKind string

const (
	AnomalyMissingDate    AnomalyKind = "missing_date"
	AnomalyNegativeAmount AnomalyKind = "negative_amount"
)

// Anomaly describes one excluded record.
type Anomaly struct {
	Kind     AnomalyKind
	RecordID string
}

// Bucket is a per-calendar-date aggregate used for charting. Dates absent
// from both inputs are not represented; chart consumers zero-fill gaps
// themselves (see ZeroFillBuckets).
type Bucket struct {
	Date     time.Time
	Sales    decimal.Decimal
	Expenses decimal.Decimal
	Profit   decimal.Decimal
}

// StockCounts classifies the inventory collection independently of any
// date range.
type StockCounts struct {
	LowStock   int
	OutOfStock int
}

// Metrics is the derived aggregate consumed by the dashboard. It is
// recomputed on demand and never persisted.
type Metrics struct {
	TotalSales       decimal.Decimal
	TotalExpenses    decimal.Decimal
	Profit           decimal.Decimal
	Buckets          []Bucket
	Stock            StockCounts
	TransactionCount int
	AnomalyCount     int
}
