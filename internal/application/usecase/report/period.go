// Package report contains the time-windowed financial aggregation core.
package report

import (
	"time"

	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// ResolvePeriod turns a symbolic period token and a reference instant into a
// concrete inclusive date range. All arithmetic is calendar-based in now's
// location. customDate is only consulted for PeriodCustom.
func ResolvePeriod(token PeriodToken, now time.Time, customDate *time.Time) (DateRange, error) {
	switch token {
	case PeriodToday:
		day := DayOf(now)
		return NewDateRange(day, day), nil

	case PeriodWeek:
		start := weekStart(now)
		return NewDateRange(start, start.AddDate(0, 0, 6)), nil

	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return NewDateRange(start, start.AddDate(0, 1, -1)), nil

	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
		return NewDateRange(start, end), nil

	case PeriodCustom:
		if customDate == nil {
			return DateRange{}, domainerror.NewReportError(
				domainerror.ErrCodeMissingCustomDate,
				"custom period requires a date",
				domainerror.ErrMissingCustomDate,
			)
		}
		day := DayOf(*customDate)
		return NewDateRange(day, day), nil

	case PeriodAll:
		return UnboundedRange(), nil

	default:
		return DateRange{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidPeriod,
			"period must be: today, week, month, year, custom, or all",
			domainerror.ErrInvalidPeriod,
		)
	}
}

// weekStart returns the Monday of the ISO week containing date. A Sunday
// belongs to the week that started the prior Monday.
func weekStart(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7
	}
	return DayOf(date).AddDate(0, 0, -(weekday - 1))
}
