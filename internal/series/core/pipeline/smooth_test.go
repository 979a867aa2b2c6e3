package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeliness-series-service/internal/series/core/domain"
	"timeliness-series-service/internal/series/core/pipeline"
)

func TestSmoothCentered(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   []float64
	}{
		{
			name:   "odd window clips at edges",
			values: []float64{10, 20, 30, 40, 50},
			window: 3,
			want:   []float64{15, 20, 30, 40, 45},
		},
		{
			name:   "window of one is identity",
			values: []float64{10, 20, 30},
			window: 1,
			want:   []float64{10, 20, 30},
		},
		{
			name:   "even window leans forward",
			values: []float64{1, 2, 3, 4, 5},
			window: 4,
			want:   []float64{2, 2.5, 3.5, 4, 4.5},
		},
		{
			name:   "window wider than series averages everything in reach",
			values: []float64{10, 20, 30},
			window: 30,
			want:   []float64{20, 20, 20},
		},
		{
			name:   "empty series",
			values: []float64{},
			window: 5,
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pipeline.SmoothCentered(tt.values, tt.window)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
		})
	}
}

func TestSmoothCentered_ConstantInputIsFixedPoint(t *testing.T) {
	values := []float64{42.5, 42.5, 42.5, 42.5, 42.5, 42.5, 42.5}

	for w := 1; w <= 10; w++ {
		got, err := pipeline.SmoothCentered(values, w)
		require.NoError(t, err)
		for i, v := range got {
			assert.InDelta(t, 42.5, v, 1e-9, "window=%d position=%d", w, i)
		}
	}
}

func TestSmoothCentered_RejectsWindowBelowOne(t *testing.T) {
	_, err := pipeline.SmoothCentered([]float64{1, 2}, 0)

	var cfgErr *pipeline.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.ErrorIs(t, err, pipeline.ErrInvalidWindow)
}

func TestSmoothGroups_DoesNotCrossGroups(t *testing.T) {
	points := []domain.AggregatedPoint{
		{GroupKey: "A", Bucket: week("2020-01-06"), Ratio: 10},
		{GroupKey: "B", Bucket: week("2020-01-06"), Ratio: 90},
		{GroupKey: "A", Bucket: week("2020-01-13"), Ratio: 20},
		{GroupKey: "B", Bucket: week("2020-01-13"), Ratio: 90},
		{GroupKey: "A", Bucket: week("2020-01-20"), Ratio: 30},
	}

	out, err := pipeline.SmoothGroups(context.Background(), points, domain.GranularityWeek, 3)
	require.NoError(t, err)

	got := map[string][]float64{}
	for _, p := range out {
		require.NotNil(t, p.RatioSmoothed)
		got[p.GroupKey] = append(got[p.GroupKey], *p.RatioSmoothed)
	}

	assert.InDeltaSlice(t, []float64{15, 20, 25}, got["A"], 1e-9)
	assert.InDeltaSlice(t, []float64{90, 90}, got["B"], 1e-9)

	for _, p := range points {
		assert.Nil(t, p.RatioSmoothed, "input must not be mutated")
	}
}

func TestSmoothGroups_OrdersByBucketWithinGroup(t *testing.T) {
	points := []domain.AggregatedPoint{
		{GroupKey: "A", Bucket: week("2020-01-20"), Ratio: 30},
		{GroupKey: "A", Bucket: week("2020-01-06"), Ratio: 10},
		{GroupKey: "A", Bucket: week("2020-01-13"), Ratio: 20},
	}

	out, err := pipeline.SmoothGroups(context.Background(), points, domain.GranularityWeek, 3)
	require.NoError(t, err)

	assert.InDelta(t, 25, *out[0].RatioSmoothed, 1e-9)
	assert.InDelta(t, 15, *out[1].RatioSmoothed, 1e-9)
	assert.InDelta(t, 20, *out[2].RatioSmoothed, 1e-9)
}

func TestSmoothGroups_MonthKeepsRatio(t *testing.T) {
	points := []domain.AggregatedPoint{
		{GroupKey: "A", Bucket: week("2020-01-01"), Ratio: 10},
		{GroupKey: "A", Bucket: week("2020-02-01"), Ratio: 80},
		{GroupKey: "A", Bucket: week("2020-03-01"), Ratio: 30},
	}

	out, err := pipeline.SmoothGroups(context.Background(), points, domain.GranularityMonth, 3)
	require.NoError(t, err)

	for _, p := range out {
		require.NotNil(t, p.RatioSmoothed)
		assert.Equal(t, p.Ratio, *p.RatioSmoothed)
	}
}

func TestSmoothGroups_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	points := []domain.AggregatedPoint{{GroupKey: "A", Bucket: week("2020-01-06"), Ratio: 10}}

	_, err := pipeline.SmoothGroups(ctx, points, domain.GranularityWeek, 3)
	assert.ErrorIs(t, err, context.Canceled)
}
