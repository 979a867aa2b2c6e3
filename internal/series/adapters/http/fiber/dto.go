package fiber

import (
	"timeliness-series-service/internal/series/core/usecase"
)

const dateLayout = "2006-01-02"

type SeriesPointResponse struct {
	Bucket        string   `json:"bucket" example:"2020-03-02"`
	Group         string   `json:"group" example:"Overall"`
	Regime        string   `json:"regime" example:"during_covid"`
	Timely        int64    `json:"timely"`
	Untimely      int64    `json:"untimely"`
	Total         int64    `json:"total"`
	Ratio         float64  `json:"ratio"`
	RatioSmoothed *float64 `json:"ratio_smoothed"`
}

type RegimeBoundaryResponse struct {
	Label  string  `json:"label" example:"during_covid"`
	Start  string  `json:"start" example:"2020-03-02"`
	End    string  `json:"end" example:"2023-06-19"`
	Timely int64   `json:"timely"`
	Total  int64   `json:"total"`
	Ratio  float64 `json:"ratio"`
}

type SpanResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SeriesResponse struct {
	RunID          string                   `json:"run_id"`
	Granularity    string                   `json:"granularity"`
	Window         int                      `json:"window"`
	GroupBy        string                   `json:"group_by,omitempty"`
	IncludeOverall bool                     `json:"include_overall"`
	Empty          bool                     `json:"empty"`
	RecordsUsed    int                      `json:"records_used"`
	Points         []SeriesPointResponse    `json:"points"`
	Boundaries     []RegimeBoundaryResponse `json:"boundaries"`
	Span           *SpanResponse            `json:"span,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"invalid window 0: window size must be at least 1"`
}

// NewSeriesResponse maps a use case output to its JSON shape.
func NewSeriesResponse(out *usecase.GetSeriesOutput) SeriesResponse {
	resp := SeriesResponse{
		RunID:          out.RunID,
		Granularity:    string(out.Params.Granularity),
		Window:         out.Params.WindowSize,
		GroupBy:        string(out.Params.GroupDimension),
		IncludeOverall: out.Params.IncludeOverall,
		Empty:          out.Empty,
		RecordsUsed:    out.RecordsUsed,
		Points:         []SeriesPointResponse{},
		Boundaries:     []RegimeBoundaryResponse{},
	}

	if out.Result == nil {
		return resp
	}

	for _, p := range out.Result.Points {
		resp.Points = append(resp.Points, SeriesPointResponse{
			Bucket:        p.Bucket.Format(dateLayout),
			Group:         p.GroupKey,
			Regime:        p.Regime,
			Timely:        p.TimelySum,
			Untimely:      p.UntimelySum,
			Total:         p.TotalSum,
			Ratio:         p.Ratio,
			RatioSmoothed: p.RatioSmoothed,
		})
	}

	for _, b := range out.Result.Boundaries {
		resp.Boundaries = append(resp.Boundaries, RegimeBoundaryResponse{
			Label:  b.Label,
			Start:  b.StartBucket.Format(dateLayout),
			End:    b.EndBucket.Format(dateLayout),
			Timely: b.TimelySum,
			Total:  b.TotalSum,
			Ratio:  b.AggregateRatio,
		})
	}

	if s := out.Result.Span; s != nil {
		resp.Span = &SpanResponse{
			Start: s.Start.Format(dateLayout),
			End:   s.End.Format(dateLayout),
		}
	}

	return resp
}
