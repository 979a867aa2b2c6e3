package pipeline

import (
	"sort"

	"timeliness-series-service/internal/series/core/domain"
)

// DetectBoundaries computes, per regime label, the first and last bucket the
// label occurs in and the label's ratio over all of its records. The result is
// ordered by start bucket.
func DetectBoundaries(records []domain.InputRecord, g domain.Granularity) []domain.RegimeBoundary {
	byLabel := make(map[string]*domain.RegimeBoundary)

	for _, r := range records {
		if r.Regime == "" {
			continue
		}
		b := BucketOf(g, r.WeekStart)

		rb, ok := byLabel[r.Regime]
		if !ok {
			rb = &domain.RegimeBoundary{Label: r.Regime, StartBucket: b, EndBucket: b}
			byLabel[r.Regime] = rb
		}
		if b.Before(rb.StartBucket) {
			rb.StartBucket = b
		}
		if b.After(rb.EndBucket) {
			rb.EndBucket = b
		}
		rb.TimelySum += r.Timely
		rb.TotalSum += r.Total
	}

	out := make([]domain.RegimeBoundary, 0, len(byLabel))
	for _, rb := range byLabel {
		if rb.TotalSum > 0 {
			rb.AggregateRatio = float64(rb.TimelySum) / float64(rb.TotalSum) * 100
		}
		out = append(out, *rb)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartBucket.Equal(out[j].StartBucket) {
			return out[i].StartBucket.Before(out[j].StartBucket)
		}
		return out[i].Label < out[j].Label
	})

	return out
}
