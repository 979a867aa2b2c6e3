package domain

import "time"

// OverallGroup is the group key of the synthesized whole-population series.
const OverallGroup = "Overall"

type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func (g Granularity) Valid() bool {
	return g == GranularityWeek || g == GranularityMonth
}

// Dimension names a categorical column records can be grouped by.
type Dimension string

const (
	DimensionRegion    Dimension = "region"
	DimensionSex       Dimension = "sex"
	DimensionAreaType  Dimension = "area_type"
	DimensionDoseStage Dimension = "dose_stage"
)

var knownDimensions = []Dimension{
	DimensionRegion,
	DimensionSex,
	DimensionAreaType,
	DimensionDoseStage,
}

func KnownDimensions() []Dimension {
	out := make([]Dimension, len(knownDimensions))
	copy(out, knownDimensions)
	return out
}

func (d Dimension) Known() bool {
	for _, k := range knownDimensions {
		if d == k {
			return true
		}
	}
	return false
}

// DefaultVocabulary returns the restricted value set of a dimension, or nil
// when every value is accepted.
func DefaultVocabulary(d Dimension) []string {
	switch d {
	case DimensionDoseStage:
		return []string{"dose_1", "dose_2", "dose_3", "booster"}
	default:
		return nil
	}
}

// InputRecord is one normalized weekly observation.
type InputRecord struct {
	WeekStart  time.Time
	Categories map[Dimension]string
	Regime     string
	Timely     int64
	Untimely   int64
	Total      int64
}

// Ratio returns Timely/Total*100; ok is false when Total is zero.
func (r InputRecord) Ratio() (float64, bool) {
	if r.Total == 0 {
		return 0, false
	}
	return float64(r.Timely) / float64(r.Total) * 100, true
}

type AggregatedPoint struct {
	Bucket      time.Time
	GroupKey    string
	Regime      string
	TimelySum   int64
	UntimelySum int64
	TotalSum    int64
	Ratio       float64

	// RatioSmoothed is nil until the smoother has run.
	RatioSmoothed *float64
}

type RegimeBoundary struct {
	Label          string
	StartBucket    time.Time
	EndBucket      time.Time
	TimelySum      int64
	TotalSum       int64
	AggregateRatio float64
}

// Params is the immutable configuration of one pipeline invocation.
type Params struct {
	Granularity    Granularity
	WindowSize     int
	GroupDimension Dimension // empty: overall-only mode
	IncludeOverall bool

	// SelectedRegimes nil means all labels; non-nil empty means none.
	SelectedRegimes []string

	// CategoryFilter nil means the dimension's default vocabulary; non-nil
	// narrows it, or stands in for it when the dimension has none.
	CategoryFilter []string
}

type Span struct {
	Start time.Time
	End   time.Time
}

type Result struct {
	Points     []AggregatedPoint
	Boundaries []RegimeBoundary
	Span       *Span
}

func (r *Result) Empty() bool {
	return r == nil || len(r.Points) == 0
}
