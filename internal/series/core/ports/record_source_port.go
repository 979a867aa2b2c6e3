package ports

import (
	"context"
	"time"

	"timeliness-series-service/internal/series/core/domain"
)

type RecordQuery struct {
	Codes []int
}

// RecordSourcePort supplies normalized records: parsable week starts and a
// positive total on every record.
type RecordSourcePort interface {
	LoadRecords(ctx context.Context, q RecordQuery) ([]domain.InputRecord, error)
}

type RunReport struct {
	Granularity domain.Granularity
	Dimension   domain.Dimension
	Outcome     string // "ok", "empty", "invalid", "error"
	Duration    time.Duration
	Points      int
	Boundaries  int
}

type RunObserver interface {
	ObserveRun(r RunReport)
}
