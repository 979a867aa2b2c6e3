package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeliness-series-service/internal/series/core/domain"
	"timeliness-series-service/internal/series/core/pipeline"
)

func TestDetectBoundaries_Weekly(t *testing.T) {
	records := sampleRecords()
	// out of order on purpose
	records[0], records[len(records)-1] = records[len(records)-1], records[0]

	got := pipeline.DetectBoundaries(records, domain.GranularityWeek)

	require.Len(t, got, 3)
	assert.Equal(t, "before_covid", got[0].Label)
	assert.Equal(t, "during_covid", got[1].Label)
	assert.Equal(t, "after_covid", got[2].Label)

	assert.True(t, week("2020-02-17").Equal(got[0].StartBucket))
	assert.True(t, week("2020-02-24").Equal(got[0].EndBucket))
	assert.True(t, week("2020-03-02").Equal(got[1].StartBucket))
	assert.True(t, week("2020-03-09").Equal(got[1].EndBucket))
	assert.True(t, week("2023-06-26").Equal(got[2].StartBucket))
	assert.True(t, week("2023-06-26").Equal(got[2].EndBucket))

	// before: (8+30+5+60)/(10+100+10+80)
	assert.Equal(t, int64(103), got[0].TimelySum)
	assert.Equal(t, int64(200), got[0].TotalSum)
	assert.InDelta(t, 51.5, got[0].AggregateRatio, 1e-9)
	// during: (1+45+7+2)/(4+50+7+20)
	assert.InDelta(t, 55.0/81.0*100, got[1].AggregateRatio, 1e-9)
}

func TestDetectBoundaries_Monthly(t *testing.T) {
	got := pipeline.DetectBoundaries(sampleRecords(), domain.GranularityMonth)

	require.Len(t, got, 3)
	assert.True(t, week("2020-02-01").Equal(got[0].StartBucket))
	assert.True(t, week("2020-03-01").Equal(got[1].StartBucket))
	assert.True(t, week("2023-06-01").Equal(got[2].EndBucket))
}

func TestDetectBoundaries_SortedByStart(t *testing.T) {
	records := []domain.InputRecord{
		rec("2021-01-04", "c", 1, 1),
		rec("2020-01-06", "a", 1, 1),
		rec("2020-06-01", "b", 1, 1),
		rec("2020-01-06", "a2", 1, 1),
		rec("2022-01-03", "a", 1, 1),
	}

	got := pipeline.DetectBoundaries(records, domain.GranularityWeek)

	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].StartBucket.Before(got[i-1].StartBucket))
	}
	assert.Equal(t, []string{"a", "a2", "b", "c"}, []string{got[0].Label, got[1].Label, got[2].Label, got[3].Label})
	assert.True(t, week("2022-01-03").Equal(got[0].EndBucket))
}

func TestDetectBoundaries_IgnoresUnlabelledRecords(t *testing.T) {
	got := pipeline.DetectBoundaries([]domain.InputRecord{rec("2020-01-06", "", 1, 1)}, domain.GranularityWeek)
	assert.Empty(t, got)
}
