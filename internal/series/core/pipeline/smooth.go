package pipeline

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"timeliness-series-service/internal/series/core/domain"
)

// SmoothCentered returns the centered moving average of values. Position i
// averages [i-floor((w-1)/2), i+ceil((w-1)/2)] clipped to the slice bounds, so
// edge points average over whatever part of the window exists.
func SmoothCentered(values []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, &ConfigurationError{Field: "window", Value: window, Err: ErrInvalidWindow}
	}

	back := (window - 1) / 2
	fwd := window - 1 - back

	out := make([]float64, len(values))
	for i := range values {
		lo := max(0, i-back)
		hi := min(len(values)-1, i+fwd)

		var sum float64
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out, nil
}

// SmoothGroups fills RatioSmoothed on a copy of points. Each group key is
// smoothed on its own, in bucket order. Month buckets are not smoothed: the
// smoothed value is the ratio itself.
func SmoothGroups(ctx context.Context, points []domain.AggregatedPoint, g domain.Granularity, window int) ([]domain.AggregatedPoint, error) {
	if window < 1 {
		return nil, &ConfigurationError{Field: "window", Value: window, Err: ErrInvalidWindow}
	}

	out := make([]domain.AggregatedPoint, len(points))
	copy(out, points)

	if g != domain.GranularityWeek {
		for i := range out {
			v := out[i].Ratio
			out[i].RatioSmoothed = &v
		}
		return out, nil
	}

	eg, egctx := errgroup.WithContext(ctx)
	for _, idx := range partitionByGroup(out) {
		idx := idx
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}

			ratios := make([]float64, len(idx))
			for n, i := range idx {
				ratios[n] = out[i].Ratio
			}

			smoothed, err := SmoothCentered(ratios, window)
			if err != nil {
				return err
			}

			for n, i := range idx {
				v := smoothed[n]
				out[i].RatioSmoothed = &v
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// partitionByGroup returns the indices of each group key, ordered by bucket
// then regime label.
func partitionByGroup(points []domain.AggregatedPoint) [][]int {
	byGroup := make(map[string][]int)
	var order []string
	for i, p := range points {
		if _, ok := byGroup[p.GroupKey]; !ok {
			order = append(order, p.GroupKey)
		}
		byGroup[p.GroupKey] = append(byGroup[p.GroupKey], i)
	}

	parts := make([][]int, 0, len(order))
	for _, key := range order {
		idx := byGroup[key]
		sort.SliceStable(idx, func(a, b int) bool {
			pa, pb := points[idx[a]], points[idx[b]]
			if !pa.Bucket.Equal(pb.Bucket) {
				return pa.Bucket.Before(pb.Bucket)
			}
			return pa.Regime < pb.Regime
		})
		parts = append(parts, idx)
	}
	return parts
}
