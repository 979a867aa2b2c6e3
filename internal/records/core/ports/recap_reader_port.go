package ports

import (
	"context"

	"timeliness-series-service/internal/records/core/domain"
)

type RecapFilter struct {
	Codes []int // empty: every code
}

type RecapReaderPort interface {
	ReadRecaps(ctx context.Context, f RecapFilter) ([]domain.Recap, error)
}

type DropObserver interface {
	ObserveDropped(reason string, n int)
}
