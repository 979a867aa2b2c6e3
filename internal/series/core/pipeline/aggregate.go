package pipeline

import (
	"sort"
	"time"

	"timeliness-series-service/internal/series/core/domain"
)

type aggKey struct {
	bucket time.Time
	group  string
	regime string
}

type sums struct {
	timely   int64
	untimely int64
	total    int64
}

// Aggregate sums counts per (bucket, value of dim, regime) and derives the
// ratio from the sums. Records without a value for dim are skipped and groups
// whose total is zero are dropped.
func Aggregate(records []domain.InputRecord, g domain.Granularity, dim domain.Dimension) []domain.AggregatedPoint {
	return aggregateBy(records, g, func(r domain.InputRecord) (string, bool) {
		v, ok := r.Categories[dim]
		return v, ok && v != ""
	})
}

// SynthesizeOverall re-sums the raw counts of records into one "Overall"
// series. It never averages per-group ratios.
func SynthesizeOverall(records []domain.InputRecord, g domain.Granularity) []domain.AggregatedPoint {
	return aggregateBy(records, g, func(domain.InputRecord) (string, bool) {
		return domain.OverallGroup, true
	})
}

func aggregateBy(
	records []domain.InputRecord,
	g domain.Granularity,
	keyOf func(domain.InputRecord) (string, bool),
) []domain.AggregatedPoint {
	acc := make(map[aggKey]*sums)

	for _, r := range records {
		group, ok := keyOf(r)
		if !ok {
			continue
		}
		k := aggKey{bucket: BucketOf(g, r.WeekStart), group: group, regime: r.Regime}
		s, ok := acc[k]
		if !ok {
			s = &sums{}
			acc[k] = s
		}
		s.timely += r.Timely
		s.untimely += r.Untimely
		s.total += r.Total
	}

	points := make([]domain.AggregatedPoint, 0, len(acc))
	for k, s := range acc {
		if s.total == 0 {
			continue
		}
		points = append(points, domain.AggregatedPoint{
			Bucket:      k.bucket,
			GroupKey:    k.group,
			Regime:      k.regime,
			TimelySum:   s.timely,
			UntimelySum: s.untimely,
			TotalSum:    s.total,
			Ratio:       float64(s.timely) / float64(s.total) * 100,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.GroupKey != b.GroupKey {
			return a.GroupKey < b.GroupKey
		}
		if !a.Bucket.Equal(b.Bucket) {
			return a.Bucket.Before(b.Bucket)
		}
		return a.Regime < b.Regime
	})

	return points
}

// RestrictVocabulary keeps records whose dim value is in vocab. A nil vocab
// accepts every non-empty value; an empty non-nil vocab accepts nothing.
func RestrictVocabulary(records []domain.InputRecord, dim domain.Dimension, vocab []string) []domain.InputRecord {
	var allowed map[string]struct{}
	if vocab != nil {
		allowed = make(map[string]struct{}, len(vocab))
		for _, v := range vocab {
			allowed[v] = struct{}{}
		}
	}

	out := make([]domain.InputRecord, 0, len(records))
	for _, r := range records {
		v := r.Categories[dim]
		if v == "" {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[v]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// FilterRegimes keeps records whose regime is selected. A nil selection keeps
// everything.
func FilterRegimes(records []domain.InputRecord, selected []string) []domain.InputRecord {
	if selected == nil {
		return records
	}

	allowed := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		allowed[s] = struct{}{}
	}

	out := make([]domain.InputRecord, 0, len(records))
	for _, r := range records {
		if _, ok := allowed[r.Regime]; ok {
			out = append(out, r)
		}
	}
	return out
}
