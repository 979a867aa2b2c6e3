package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"timeliness-series-service/internal/series/core/domain"
	"timeliness-series-service/internal/series/core/pipeline"
	"timeliness-series-service/internal/series/core/ports"
)

const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

type GetSeriesInput struct {
	Granularity    string
	Window         int
	GroupBy        string // "" = overall only
	IncludeOverall bool

	// nil = defaults, non-nil empty = nothing selected
	Regimes    []string
	Categories []string
	Codes      []int
}

type GetSeriesOutput struct {
	RunID       string
	Params      domain.Params
	RecordsUsed int
	Empty       bool
	Result      *domain.Result
}

type Options struct {
	MaxWindow    int
	DefaultCodes []int
}

type GetSeriesUseCase struct {
	source   ports.RecordSourcePort
	observer ports.RunObserver
	logger   zerolog.Logger
	opts     Options
}

func NewGetSeriesUseCase(source ports.RecordSourcePort, observer ports.RunObserver, logger zerolog.Logger, opts Options) *GetSeriesUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	return &GetSeriesUseCase{
		source:   source,
		observer: observer,
		logger:   logger,
		opts:     opts,
	}
}

// Execute validates the input, loads records and runs the pipeline. A
// configuration error is returned before any record is loaded.
func (uc *GetSeriesUseCase) Execute(ctx context.Context, in GetSeriesInput) (*GetSeriesOutput, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := uc.logger.With().Str("run_id", runID).Logger()

	params, err := uc.buildParams(in)
	if err != nil {
		log.Warn().Err(err).Msg("rejected series query")
		uc.report(params, OutcomeInvalid, started, nil)
		return nil, err
	}

	out := &GetSeriesOutput{RunID: runID, Params: params}

	codes := in.Codes
	if codes == nil {
		codes = uc.opts.DefaultCodes
	}
	if len(codes) == 0 {
		log.Info().Msg("no codes selected, nothing to display")
		out.Empty = true
		out.Result = &domain.Result{Points: []domain.AggregatedPoint{}, Boundaries: []domain.RegimeBoundary{}}
		uc.report(params, OutcomeEmpty, started, out.Result)
		return out, nil
	}

	records, err := uc.source.LoadRecords(ctx, ports.RecordQuery{Codes: codes})
	if err != nil {
		log.Error().Err(err).Msg("failed to load records")
		uc.report(params, OutcomeError, started, nil)
		return nil, fmt.Errorf("load records: %w", err)
	}

	res, err := pipeline.Run(ctx, records, params)
	if err != nil {
		outcome := OutcomeError
		var cfgErr *pipeline.ConfigurationError
		if errors.As(err, &cfgErr) {
			outcome = OutcomeInvalid
		}
		log.Error().Err(err).Msg("series pipeline failed")
		uc.report(params, outcome, started, nil)
		return nil, err
	}

	out.RecordsUsed = len(records)
	out.Result = res
	out.Empty = res.Empty()

	outcome := OutcomeOK
	if out.Empty {
		outcome = OutcomeEmpty
	}
	uc.report(params, outcome, started, res)

	log.Info().
		Str("granularity", string(params.Granularity)).
		Str("group_by", string(params.GroupDimension)).
		Int("window", params.WindowSize).
		Int("records", len(records)).
		Int("points", len(res.Points)).
		Int("boundaries", len(res.Boundaries)).
		Dur("took", time.Since(started)).
		Msg("series computed")

	return out, nil
}

func (uc *GetSeriesUseCase) buildParams(in GetSeriesInput) (domain.Params, error) {
	p := domain.Params{
		Granularity:     domain.Granularity(strings.ToLower(strings.TrimSpace(in.Granularity))),
		WindowSize:      in.Window,
		GroupDimension:  domain.Dimension(strings.ToLower(strings.TrimSpace(in.GroupBy))),
		IncludeOverall:  in.IncludeOverall,
		SelectedRegimes: in.Regimes,
		CategoryFilter:  in.Categories,
	}

	if p.GroupDimension == "" {
		p.IncludeOverall = true
	}

	if err := pipeline.Validate(p); err != nil {
		return p, err
	}

	if uc.opts.MaxWindow > 0 && p.WindowSize > uc.opts.MaxWindow {
		return p, &pipeline.ConfigurationError{
			Field: "window",
			Value: p.WindowSize,
			Err:   fmt.Errorf("%w: maximum is %d", pipeline.ErrInvalidWindow, uc.opts.MaxWindow),
		}
	}

	return p, nil
}

func (uc *GetSeriesUseCase) report(p domain.Params, outcome string, started time.Time, res *domain.Result) {
	r := ports.RunReport{
		Granularity: p.Granularity,
		Dimension:   p.GroupDimension,
		Outcome:     outcome,
		Duration:    time.Since(started),
	}
	if res != nil {
		r.Points = len(res.Points)
		r.Boundaries = len(res.Boundaries)
	}
	uc.observer.ObserveRun(r)
}

type noopObserver struct{}

func (noopObserver) ObserveRun(ports.RunReport) {}
