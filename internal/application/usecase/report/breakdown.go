// Package report contains the time-windowed financial aggregation core.
package report

import (
	"github.com/shopspring/decimal"
)

// Group is one entry of a breakdown: the records sharing a key, their count,
// and their monetary sum.
type Group struct {
	Key   string
	Count int
	Sum   decimal.Decimal
}

// GroupBy reduces records into ordered per-key totals, keyed by keyFn. Keys
// are matched by exact string comparison; "Rent" and "rent" are distinct
// groups. Groups appear in first-seen input order. Negative amounts
// contribute zero, mirroring Aggregate.
func GroupBy[T Monetary](records []T, keyFn func(T) string) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, rec := range records {
		key := keyFn(rec)
		amount := rec.Amount()
		if amount.IsNegative() {
			amount = decimal.Zero
		}

		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, Group{Key: key, Count: 1, Sum: amount})
			continue
		}
		groups[i].Count++
		groups[i].Sum = groups[i].Sum.Add(amount)
	}

	return groups
}
