package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"timeliness-series-service/internal/records/core/domain"
	"timeliness-series-service/internal/records/core/ports"
	series "timeliness-series-service/internal/series/core/domain"
	seriesPorts "timeliness-series-service/internal/series/core/ports"
)

var ErrNoCodesSelected = errors.New("at least one code must be selected")

type DropReason string

const (
	DropMissingCount     DropReason = "missing_count"
	DropUnparsableWeek   DropReason = "unparsable_week"
	DropNegativeCount    DropReason = "negative_count"
	DropZeroTotal        DropReason = "zero_total"
	DropNonPositiveRatio DropReason = "non_positive_ratio"
	DropCodeNotSelected  DropReason = "code_not_selected"
)

var weekLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

type LoadStats struct {
	Read    int
	Kept    int
	Dropped map[DropReason]int
}

type LoadRecordsInput struct {
	Codes []int
}

type LoadRecordsUseCase struct {
	reader   ports.RecapReaderPort
	observer ports.DropObserver
	logger   zerolog.Logger
}

func NewLoadRecordsUseCase(reader ports.RecapReaderPort, observer ports.DropObserver, logger zerolog.Logger) *LoadRecordsUseCase {
	return &LoadRecordsUseCase{reader: reader, observer: observer, logger: logger}
}

var _ seriesPorts.RecordSourcePort = (*LoadRecordsUseCase)(nil)

// Execute reads the recaps of the selected codes and normalizes them.
func (uc *LoadRecordsUseCase) Execute(ctx context.Context, in LoadRecordsInput) ([]series.InputRecord, LoadStats, error) {
	if len(in.Codes) == 0 {
		return nil, LoadStats{}, ErrNoCodesSelected
	}

	recaps, err := uc.reader.ReadRecaps(ctx, ports.RecapFilter{Codes: in.Codes})
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("read recaps: %w", err)
	}

	records, stats := Normalize(recaps, in.Codes)

	if uc.observer != nil {
		for reason, n := range stats.Dropped {
			uc.observer.ObserveDropped(string(reason), n)
		}
	}

	ev := uc.logger.Debug().Int("read", stats.Read).Int("kept", stats.Kept)
	for reason, n := range stats.Dropped {
		ev = ev.Int("dropped_"+string(reason), n)
	}
	ev.Ints("codes", in.Codes).Msg("records normalized")

	return records, stats, nil
}

// LoadRecords implements the series record source.
func (uc *LoadRecordsUseCase) LoadRecords(ctx context.Context, q seriesPorts.RecordQuery) ([]series.InputRecord, error) {
	records, _, err := uc.Execute(ctx, LoadRecordsInput{Codes: q.Codes})
	return records, err
}

// Normalize turns raw recaps into input records. Rows with blank counts, an
// unparsable week, negative counts, a zero total, a missing or non-positive
// ratio, or a code outside codes are dropped and counted per reason. Empty
// codes keep every code.
func Normalize(recaps []domain.Recap, codes []int) ([]series.InputRecord, LoadStats) {
	stats := LoadStats{Read: len(recaps), Dropped: map[DropReason]int{}}

	selected := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		selected[c] = struct{}{}
	}

	out := make([]series.InputRecord, 0, len(recaps))
	for _, rc := range recaps {
		if len(selected) > 0 {
			if _, ok := selected[rc.Code]; !ok {
				stats.Dropped[DropCodeNotSelected]++
				continue
			}
		}

		if rc.MissingCounts {
			stats.Dropped[DropMissingCount]++
			continue
		}

		weekStart, ok := parseWeek(rc.WeekStart)
		if !ok {
			stats.Dropped[DropUnparsableWeek]++
			continue
		}

		if rc.Timely < 0 || rc.Untimely < 0 || rc.Total < 0 {
			stats.Dropped[DropNegativeCount]++
			continue
		}
		if rc.Total == 0 {
			stats.Dropped[DropZeroTotal]++
			continue
		}

		ratio := float64(rc.Timely) / float64(rc.Total) * 100
		if rc.Ratio != nil {
			ratio = *rc.Ratio
		}
		if math.IsNaN(ratio) || ratio <= 0 {
			stats.Dropped[DropNonPositiveRatio]++
			continue
		}

		out = append(out, series.InputRecord{
			WeekStart:  weekStart,
			Categories: categoriesOf(rc),
			Regime:     strings.TrimSpace(rc.Regime),
			Timely:     rc.Timely,
			Untimely:   rc.Untimely,
			Total:      rc.Total,
		})
	}

	stats.Kept = len(out)
	return out, stats
}

func parseWeek(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range weekLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func categoriesOf(rc domain.Recap) map[series.Dimension]string {
	cats := make(map[series.Dimension]string, 4)
	set := func(d series.Dimension, v string) {
		if v = strings.TrimSpace(v); v != "" {
			cats[d] = v
		}
	}
	set(series.DimensionRegion, rc.Region)
	set(series.DimensionSex, rc.Sex)
	set(series.DimensionAreaType, rc.AreaType)
	set(series.DimensionDoseStage, canonicalDoseStage(rc.DoseStage))
	return cats
}

// canonicalDoseStage maps the export's "dosis_N" spelling to "dose_N".
func canonicalDoseStage(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if rest, ok := strings.CutPrefix(v, "dosis_"); ok {
		return "dose_" + rest
	}
	return v
}
