package pipeline_test

import (
	"time"

	"timeliness-series-service/internal/series/core/domain"
)

func week(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type recOpt func(*domain.InputRecord)

func withCat(d domain.Dimension, v string) recOpt {
	return func(r *domain.InputRecord) { r.Categories[d] = v }
}

func rec(weekStart, regime string, timely, total int64, opts ...recOpt) domain.InputRecord {
	r := domain.InputRecord{
		WeekStart:  week(weekStart),
		Categories: map[domain.Dimension]string{},
		Regime:     regime,
		Timely:     timely,
		Untimely:   total - timely,
		Total:      total,
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

func region(v string) recOpt { return withCat(domain.DimensionRegion, v) }
func dose(v string) recOpt   { return withCat(domain.DimensionDoseStage, v) }
func sex(v string) recOpt    { return withCat(domain.DimensionSex, v) }

// sampleRecords spans three regimes, two regions, two sexes and a few dose
// stages with unequal group sizes.
func sampleRecords() []domain.InputRecord {
	return []domain.InputRecord{
		rec("2020-02-17", "before_covid", 8, 10, region("A"), sex("F"), dose("dose_1")),
		rec("2020-02-17", "before_covid", 30, 100, region("B"), sex("M"), dose("dose_2")),
		rec("2020-02-24", "before_covid", 5, 10, region("A"), sex("M"), dose("unknown")),
		rec("2020-02-24", "before_covid", 60, 80, region("B"), sex("F"), dose("booster")),
		rec("2020-03-02", "during_covid", 1, 4, region("A"), sex("F"), dose("dose_1")),
		rec("2020-03-02", "during_covid", 45, 50, region("B"), sex("M"), dose("dose_3")),
		rec("2020-03-09", "during_covid", 7, 7, region("A"), sex("F"), dose("dose_2")),
		rec("2020-03-09", "during_covid", 2, 20, region("B"), sex("M"), dose("dose_1")),
		rec("2023-06-26", "after_covid", 9, 12, region("A"), sex("M"), dose("booster")),
		rec("2023-06-26", "after_covid", 3, 3, region("B"), sex("F"), dose("dose_3")),
	}
}
