package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"timeliness-series-service/internal/series/core/domain"
	"timeliness-series-service/internal/series/core/ports"
	"timeliness-series-service/internal/series/core/usecase"
)

// Collector records series runs and dropped input rows.
type Collector struct {
	runs        *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	points      *prometheus.GaugeVec
	boundaries  prometheus.Gauge
	dropped     *prometheus.CounterVec
}

var _ ports.RunObserver = (*Collector)(nil)

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeliness_series_runs_total",
				Help: "Series pipeline runs by granularity and outcome",
			},
			[]string{"granularity", "outcome"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "timeliness_series_run_duration_seconds",
				Help:    "Duration of series pipeline runs in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"granularity"},
		),
		points: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "timeliness_series_last_points",
				Help: "Number of aggregated points emitted by the last successful run",
			},
			[]string{"group_by"},
		),
		boundaries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "timeliness_series_last_boundaries",
				Help: "Number of regime boundaries emitted by the last successful run",
			},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timeliness_records_dropped_total",
				Help: "Input rows dropped during normalization by reason",
			},
			[]string{"reason"},
		),
	}

	reg.MustRegister(c.runs, c.runDuration, c.points, c.boundaries, c.dropped)
	return c
}

func (c *Collector) ObserveRun(r ports.RunReport) {
	g := string(r.Granularity)
	if !r.Granularity.Valid() {
		g = "invalid"
	}

	c.runs.WithLabelValues(g, r.Outcome).Inc()
	c.runDuration.WithLabelValues(g).Observe(r.Duration.Seconds())

	if r.Outcome == usecase.OutcomeOK || r.Outcome == usecase.OutcomeEmpty {
		c.points.WithLabelValues(groupLabel(r.Dimension)).Set(float64(r.Points))
		c.boundaries.Set(float64(r.Boundaries))
	}
}

func (c *Collector) ObserveDropped(reason string, n int) {
	c.dropped.WithLabelValues(reason).Add(float64(n))
}

func groupLabel(d domain.Dimension) string {
	switch {
	case d == "":
		return "overall"
	case d.Known():
		return string(d)
	default:
		return "invalid"
	}
}
