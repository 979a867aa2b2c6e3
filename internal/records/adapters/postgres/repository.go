package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"timeliness-series-service/internal/records/core/domain"
	"timeliness-series-service/internal/records/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type RecapRepository struct {
	db DB
}

func NewRecapRepository(db DB) *RecapRepository {
	return &RecapRepository{db: db}
}

var _ ports.RecapReaderPort = (*RecapRepository)(nil)

const selectRecapsSQL = `
SELECT
    week_start,
    code,
    COALESCE(region, '')     AS region,
    COALESCE(sex, '')        AS sex,
    COALESCE(area_type, '')  AS area_type,
    COALESCE(dose_stage, '') AS dose_stage,
    COALESCE(regime, '')     AS regime,
    timely,
    untimely,
    total,
    ratio
FROM weekly_recaps`

func (r *RecapRepository) ReadRecaps(ctx context.Context, f ports.RecapFilter) ([]domain.Recap, error) {
	query := selectRecapsSQL
	var args []any

	if len(f.Codes) > 0 {
		codes := make([]int64, len(f.Codes))
		for i, c := range f.Codes {
			codes[i] = int64(c)
		}
		query += "\nWHERE code = ANY($1)"
		args = append(args, pq.Array(codes))
	}
	query += "\nORDER BY week_start, code"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recaps []domain.Recap
	for rows.Next() {
		var (
			weekStart time.Time
			code      int64
			ratio     sql.NullFloat64
			rc        domain.Recap
		)

		if err := rows.Scan(
			&weekStart,
			&code,
			&rc.Region,
			&rc.Sex,
			&rc.AreaType,
			&rc.DoseStage,
			&rc.Regime,
			&rc.Timely,
			&rc.Untimely,
			&rc.Total,
			&ratio,
		); err != nil {
			return nil, err
		}

		rc.WeekStart = weekStart.Format("2006-01-02")
		rc.Code = int(code)
		if ratio.Valid {
			v := ratio.Float64
			rc.Ratio = &v
		}
		recaps = append(recaps, rc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recaps, nil
}
