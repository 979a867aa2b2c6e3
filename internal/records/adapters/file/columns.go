package file

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"timeliness-series-service/internal/records/core/domain"
)

var ErrMissingColumn = errors.New("missing required column")

type column int

const (
	colWeekStart column = iota
	colCode
	colRegion
	colSex
	colAreaType
	colDoseStage
	colRegime
	colTimely
	colUntimely
	colTotal
	colRatio
	numColumns
)

// aliases lists the accepted header names per column; the second name is the
// Indonesian name used by the weekly recap export.
var aliases = [numColumns][]string{
	colWeekStart: {"week_start", "tanggal_awal_minggu"},
	colCode:      {"code", "kode"},
	colRegion:    {"region", "kabupaten"},
	colSex:       {"sex"},
	colAreaType:  {"area_type", "jenis_wilayah"},
	colDoseStage: {"dose_stage", "dosis"},
	colRegime:    {"regime", "periode_covid"},
	colTimely:    {"timely"},
	colUntimely:  {"untimely"},
	colTotal:     {"total"},
	colRatio:     {"ratio", "ratio_timely"},
}

var required = []column{colWeekStart, colCode, colRegime, colTimely, colUntimely, colTotal}

type layout [numColumns]int

func newLayout(header []string) (layout, error) {
	var l layout
	for i := range l {
		l[i] = -1
	}

	for idx, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		for c, names := range aliases {
			for _, a := range names {
				if name == a && l[c] < 0 {
					l[c] = idx
				}
			}
		}
	}

	for _, c := range required {
		if l[c] < 0 {
			return l, fmt.Errorf("%w: %s", ErrMissingColumn, aliases[c][0])
		}
	}
	return l, nil
}

func (l layout) cell(row []string, c column) string {
	idx := l[c]
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (l layout) recap(row []string) (domain.Recap, error) {
	rc := domain.Recap{
		WeekStart: l.cell(row, colWeekStart),
		Region:    l.cell(row, colRegion),
		Sex:       l.cell(row, colSex),
		AreaType:  l.cell(row, colAreaType),
		DoseStage: l.cell(row, colDoseStage),
		Regime:    l.cell(row, colRegime),
	}

	code, err := parseCount(l.cell(row, colCode))
	if err != nil {
		return rc, fmt.Errorf("code: %w", err)
	}
	rc.Code = int(code)

	ratio := l.cell(row, colRatio)
	if missing(ratio) && (missing(l.cell(row, colTimely)) || missing(l.cell(row, colUntimely)) || missing(l.cell(row, colTotal))) {
		rc.MissingCounts = true
		return rc, nil
	}

	if rc.Timely, err = parseCount(l.cell(row, colTimely)); err != nil {
		return rc, fmt.Errorf("timely: %w", err)
	}
	if rc.Untimely, err = parseCount(l.cell(row, colUntimely)); err != nil {
		return rc, fmt.Errorf("untimely: %w", err)
	}
	if rc.Total, err = parseCount(l.cell(row, colTotal)); err != nil {
		return rc, fmt.Errorf("total: %w", err)
	}

	if !missing(ratio) {
		v, err := strconv.ParseFloat(ratio, 64)
		if err != nil {
			return rc, fmt.Errorf("ratio: %w", err)
		}
		rc.Ratio = &v
	}

	return rc, nil
}

// missing reports an empty cell or the "NaN" an export writes for one.
func missing(s string) bool {
	return s == "" || strings.EqualFold(s, "nan")
}

// parseCount accepts integers written as floats ("12.0"), which is how
// spreadsheet exports often store them.
func parseCount(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int64(f), nil
}
