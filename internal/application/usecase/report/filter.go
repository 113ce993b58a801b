// Package report contains the time-windowed financial aggregation core.
package report

// FilterByDate selects the records whose calendar date lies within r,
// preserving input order. Records with a zero date are excluded and reported
// as data-quality anomalies rather than failing the pipeline. The input
// slice is never mutated, and filtering an already-filtered slice with the
// same range returns an equal slice.
func FilterByDate[T Dated](records []T, r DateRange) ([]T, []Anomaly) {
	if r.Unbounded() {
		// "All time" means no filtering, but zero dates are still anomalous.
		out := make([]T, 0, len(records))
		var anomalies []Anomaly
		for _, rec := range records {
			if rec.RecordDate().IsZero() {
				anomalies = append(anomalies, Anomaly{Kind: AnomalyMissingDate, RecordID: recordID(rec)})
				continue
			}
			out = append(out, rec)
		}
		return out, anomalies
	}

	out := make([]T, 0, len(records))
	var anomalies []Anomaly
	for _, rec := range records {
		date := rec.RecordDate()
		if date.IsZero() {
			anomalies = append(anomalies, Anomaly{Kind: AnomalyMissingDate, RecordID: recordID(rec)})
			continue
		}
		if r.Contains(date) {
			out = append(out, rec)
		}
	}
	return out, anomalies
}

// identified is implemented by records that can name themselves in anomaly
// reports.
type identified interface {
	RecordID() string
}

func recordID(rec any) string {
	if id, ok := rec.(identified); ok {
		return id.RecordID()
	}
	return ""
}
