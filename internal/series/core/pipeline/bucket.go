package pipeline

import (
	"time"

	"timeliness-series-service/internal/series/core/domain"
)

// BucketOf maps a week start to its bucket. Week buckets keep the week start
// as given; month buckets are the first day of the calendar month.
func BucketOf(g domain.Granularity, weekStart time.Time) time.Time {
	if g == domain.GranularityMonth {
		y, m, _ := weekStart.UTC().Date()
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
	return weekStart.UTC()
}
