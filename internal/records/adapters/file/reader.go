package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"timeliness-series-service/internal/records/core/domain"
	"timeliness-series-service/internal/records/core/ports"
)

var ErrUnsupportedFormat = errors.New("unsupported recap file format")

// Reader reads weekly recaps from a CSV or XLSX file. The file is re-read on
// every call.
type Reader struct {
	path  string
	sheet string
	rows  func(path, sheet string) ([][]string, error)
}

var _ ports.RecapReaderPort = (*Reader)(nil)

type Option func(*Reader)

// WithSheet selects the workbook sheet for XLSX files; the first sheet is
// used otherwise.
func WithSheet(name string) Option {
	return func(r *Reader) { r.sheet = name }
}

func NewReader(path string, opts ...Option) (*Reader, error) {
	r := &Reader{path: path}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		r.rows = func(path, _ string) ([][]string, error) { return readCSV(path) }
	case ".xlsx":
		r.rows = readXLSX
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	for _, o := range opts {
		o(r)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("recap file: %w", err)
	}
	return r, nil
}

func (r *Reader) ReadRecaps(ctx context.Context, f ports.RecapFilter) ([]domain.Recap, error) {
	rows, err := r.rows(r.path, r.sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	l, err := newLayout(rows[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	codes := make(map[int]struct{}, len(f.Codes))
	for _, c := range f.Codes {
		codes[c] = struct{}{}
	}

	recaps := make([]domain.Recap, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if blank(row) {
			continue
		}

		rc, err := l.recap(row)
		if err != nil {
			// header is line 1
			return nil, fmt.Errorf("%s line %d: %w", r.path, i+2, err)
		}

		if len(codes) > 0 {
			if _, ok := codes[rc.Code]; !ok {
				continue
			}
		}
		recaps = append(recaps, rc)
	}

	return recaps, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
