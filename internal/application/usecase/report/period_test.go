// Package report contains the time-windowed financial aggregation core.
package report

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/stockbook/backend/internal/domain/error"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestResolvePeriod_Today(t *testing.T) {
	now := time.Date(2025, time.March, 14, 17, 45, 3, 0, time.Local)

	r, err := ResolvePeriod(PeriodToday, now, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := date(2025, time.March, 14)
	if !r.Start.Equal(want) || !r.End.Equal(want) {
		t.Errorf("expected start=end=%v, got start=%v end=%v", want, r.Start, r.End)
	}
}

func TestResolvePeriod_WeekStartsOnMonday(t *testing.T) {
	// 2025-03-10 is a Monday. Every day of that week, including the Sunday
	// (2025-03-16), must resolve to the same Monday-to-Sunday span.
	wantStart := date(2025, time.March, 10)
	wantEnd := date(2025, time.March, 16)

	for offset := 0; offset < 7; offset++ {
		now := wantStart.AddDate(0, 0, offset)
		t.Run(now.Weekday().String(), func(t *testing.T) {
			r, err := ResolvePeriod(PeriodWeek, now, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !r.Start.Equal(wantStart) {
				t.Errorf("expected start %v, got %v", wantStart, r.Start)
			}
			if !r.End.Equal(wantEnd) {
				t.Errorf("expected end %v, got %v", wantEnd, r.End)
			}
			if r.Start.Weekday() != time.Monday {
				t.Errorf("expected week to start on Monday, got %v", r.Start.Weekday())
			}
			if days := int(r.End.Sub(r.Start).Hours() / 24); days != 6 {
				t.Errorf("expected a 7-day inclusive span, got %d days between bounds", days+1)
			}
		})
	}
}

func TestResolvePeriod_Month(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantEnd time.Time
	}{
		{"leap year February", date(2024, time.February, 15), date(2024, time.February, 29)},
		{"non-leap February", date(2023, time.February, 15), date(2023, time.February, 28)},
		{"thirty-day month", date(2025, time.April, 1), date(2025, time.April, 30)},
		{"thirty-one-day month", date(2025, time.January, 20), date(2025, time.January, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResolvePeriod(PeriodMonth, tt.now, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			wantStart := date(tt.now.Year(), tt.now.Month(), 1)
			if !r.Start.Equal(wantStart) {
				t.Errorf("expected start %v, got %v", wantStart, r.Start)
			}
			if !r.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %v, got %v", tt.wantEnd, r.End)
			}
		})
	}
}

func TestResolvePeriod_Year(t *testing.T) {
	r, err := ResolvePeriod(PeriodYear, date(2025, time.July, 4), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Start.Equal(date(2025, time.January, 1)) {
		t.Errorf("expected Jan 1, got %v", r.Start)
	}
	if !r.End.Equal(date(2025, time.December, 31)) {
		t.Errorf("expected Dec 31, got %v", r.End)
	}
}

func TestResolvePeriod_Custom(t *testing.T) {
	t.Run("with date", func(t *testing.T) {
		custom := date(2025, time.June, 2)
		r, err := ResolvePeriod(PeriodCustom, date(2025, time.July, 4), &custom)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !r.Start.Equal(custom) || !r.End.Equal(custom) {
			t.Errorf("expected start=end=%v, got start=%v end=%v", custom, r.Start, r.End)
		}
	})

	t.Run("without date", func(t *testing.T) {
		_, err := ResolvePeriod(PeriodCustom, date(2025, time.July, 4), nil)
		if !errors.Is(err, domainerror.ErrMissingCustomDate) {
			t.Errorf("expected ErrMissingCustomDate, got %v", err)
		}

		var reportErr *domainerror.ReportError
		if !errors.As(err, &reportErr) {
			t.Fatalf("expected *ReportError, got %T", err)
		}
		if reportErr.Code != domainerror.ErrCodeMissingCustomDate {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingCustomDate, reportErr.Code)
		}
	})
}

func TestResolvePeriod_All(t *testing.T) {
	r, err := ResolvePeriod(PeriodAll, date(2025, time.July, 4), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Unbounded() {
		t.Error("expected an unbounded range")
	}
	if !r.Contains(date(1901, time.January, 1)) || !r.Contains(date(2999, time.December, 31)) {
		t.Error("expected unbounded range to contain every date")
	}
}

func TestResolvePeriod_UnknownToken(t *testing.T) {
	_, err := ResolvePeriod(PeriodToken("fortnight"), date(2025, time.July, 4), nil)
	if !errors.Is(err, domainerror.ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestDateRange_ContainsBoundaryDaysAcrossLocations(t *testing.T) {
	east := time.FixedZone("UTC+2", 2*60*60)
	west := time.FixedZone("UTC-5", -5*60*60)

	utcDay := func(d int) time.Time {
		return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		rangeL *time.Location
		day    time.Time
		want   bool
	}{
		{"end day, range east of record", east, utcDay(31), true},
		{"start day, range west of record", west, utcDay(1), true},
		{"start day, range east of record", east, utcDay(1), true},
		{"day after end", east, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), false},
		{"day before start", west, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDateRange(
				time.Date(2025, time.January, 1, 0, 0, 0, 0, tt.rangeL),
				time.Date(2025, time.January, 31, 0, 0, 0, 0, tt.rangeL),
			)
			if got := r.Contains(tt.day); got != tt.want {
				t.Errorf("Contains(%v) in range built at %v = %v, want %v", tt.day, tt.rangeL, got, tt.want)
			}
		})
	}
}

func TestResolvePeriod_StartNeverAfterEnd(t *testing.T) {
	tokens := []PeriodToken{PeriodToday, PeriodWeek, PeriodMonth, PeriodYear}

	// Sweep a year of reference instants, including month and year
	// boundaries and the leap day.
	for now := date(2024, time.January, 1); now.Year() < 2025; now = now.AddDate(0, 0, 1) {
		for _, token := range tokens {
			r, err := ResolvePeriod(token, now, nil)
			if err != nil {
				t.Fatalf("%s at %v: unexpected error: %v", token, now, err)
			}
			if r.Start.After(r.End) {
				t.Errorf("%s at %v: start %v after end %v", token, now, r.Start, r.End)
			}
		}
	}
}
