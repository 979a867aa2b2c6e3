package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"timeliness-series-service/internal/config"
	"timeliness-series-service/internal/logging"

	recapsFile "timeliness-series-service/internal/records/adapters/file"
	recapsPg "timeliness-series-service/internal/records/adapters/postgres"
	recordsPorts "timeliness-series-service/internal/records/core/ports"
	recordsUsecase "timeliness-series-service/internal/records/core/usecase"

	seriesHttp "timeliness-series-service/internal/series/adapters/http/fiber"
	seriesMetrics "timeliness-series-service/internal/series/adapters/metrics"
	seriesUsecase "timeliness-series-service/internal/series/core/usecase"

	_ "timeliness-series-service/docs"
)

// @title Timeliness Series API
// @version 1.0
// @description Smoothed timely/untimely ratio series with regime boundaries.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	// Recap source
	reader, closeReader, err := newRecapReader(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.Source.Kind).Msg("failed to open recap source")
	}
	defer func() {
		if err := closeReader(); err != nil {
			logger.Warn().Err(err).Msg("failed to close recap source")
		}
	}()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := seriesMetrics.NewCollector(registry)

	// Usecases
	loadRecordsUC := recordsUsecase.NewLoadRecordsUseCase(reader, collector, logger)
	getSeriesUC := seriesUsecase.NewGetSeriesUseCase(loadRecordsUC, collector, logger, seriesUsecase.Options{
		MaxWindow:    cfg.Series.MaxWindow,
		DefaultCodes: cfg.Series.DefaultCodes,
	})

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	seriesHandler := seriesHttp.NewSeriesHandler(getSeriesUC, cfg.Series.DefaultWindow)
	app.Get("/series", seriesHandler.GetSeries)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/internal/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logger.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logger.Info().Str("addr", cfg.Server.Addr).Str("source", cfg.Source.Kind).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("fiber shutdown error")
	}

	logger.Info().Msg("server exiting")
}

func newRecapReader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (recordsPorts.RecapReaderPort, func() error, error) {
	switch cfg.Source.Kind {
	case config.SourceFile:
		r, err := recapsFile.NewReader(cfg.Source.File, recapsFile.WithSheet(cfg.Source.Sheet))
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("file", cfg.Source.File).Msg("reading recaps from file")
		return r, func() error { return nil }, nil

	default:
		db, err := recapsPg.Open(ctx, cfg.Postgres.DSN, recapsPg.PoolOptions{
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return recapsPg.NewRecapRepository(recapsPg.NewSQLDB(db)), db.Close, nil
	}
}
