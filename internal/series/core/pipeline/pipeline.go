package pipeline

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"timeliness-series-service/internal/series/core/domain"
)

// Run turns a normalized record set into smoothed group series plus regime
// boundaries. It never mutates records. A cancelled ctx discards the whole
// result.
func Run(ctx context.Context, records []domain.InputRecord, p domain.Params) (*domain.Result, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	usable := dropUndefined(records)

	var (
		points     []domain.AggregatedPoint
		boundaries []domain.RegimeBoundary
	)

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		boundaries = DetectBoundaries(usable, p.Granularity)
		return nil
	})
	eg.Go(func() error {
		var err error
		points, err = buildSeries(egctx, usable, p)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &domain.Result{
		Points:     points,
		Boundaries: boundaries,
		Span:       spanOf(points),
	}, nil
}

func buildSeries(ctx context.Context, records []domain.InputRecord, p domain.Params) ([]domain.AggregatedPoint, error) {
	selected := FilterRegimes(records, p.SelectedRegimes)

	var points []domain.AggregatedPoint
	if p.GroupDimension == "" {
		points = SynthesizeOverall(selected, p.Granularity)
	} else {
		vocab := scopeVocabulary(p.GroupDimension, p.CategoryFilter)
		scoped := RestrictVocabulary(selected, p.GroupDimension, vocab)

		points = Aggregate(scoped, p.Granularity, p.GroupDimension)
		if p.IncludeOverall {
			points = append(points, SynthesizeOverall(scoped, p.Granularity)...)
		}
	}

	return SmoothGroups(ctx, points, p.Granularity, p.WindowSize)
}

// scopeVocabulary returns the values of dim that may form groups. A filter
// narrows a dimension's restricted vocabulary and never widens it; for
// dimensions without one the filter is the vocabulary.
func scopeVocabulary(dim domain.Dimension, filter []string) []string {
	def := domain.DefaultVocabulary(dim)
	switch {
	case filter == nil:
		return def
	case def == nil:
		return filter
	}

	out := []string{}
	for _, v := range filter {
		if slices.Contains(def, v) {
			out = append(out, v)
		}
	}
	return out
}

// dropUndefined removes records whose ratio is undefined (total == 0).
func dropUndefined(records []domain.InputRecord) []domain.InputRecord {
	out := make([]domain.InputRecord, 0, len(records))
	for _, r := range records {
		if r.Total > 0 {
			out = append(out, r)
		}
	}
	return out
}

func spanOf(points []domain.AggregatedPoint) *domain.Span {
	if len(points) == 0 {
		return nil
	}
	s := &domain.Span{Start: points[0].Bucket, End: points[0].Bucket}
	for _, p := range points[1:] {
		if p.Bucket.Before(s.Start) {
			s.Start = p.Bucket
		}
		if p.Bucket.After(s.End) {
			s.End = p.Bucket
		}
	}
	return s
}
