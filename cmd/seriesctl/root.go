package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"timeliness-series-service/internal/logging"
	recapsFile "timeliness-series-service/internal/records/adapters/file"
	recordsUsecase "timeliness-series-service/internal/records/core/usecase"
	seriesUsecase "timeliness-series-service/internal/series/core/usecase"
)

const maxWindow = 100

type rootOptions struct {
	file      string
	sheet     string
	codes     []int
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "seriesctl",
		Short:         "Compute timeliness ratio series from a weekly recap file",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.file, "file", "rekap_mingguan.csv", "weekly recap file (.csv or .xlsx)")
	root.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "workbook sheet for .xlsx files (default: first sheet)")
	root.PersistentFlags().IntSliceVar(&opts.codes, "codes", []int{1, 2}, "recap codes to include")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log format: console | json")

	root.AddCommand(newComputeCmd(opts))
	root.AddCommand(newBoundariesCmd(opts))

	return root
}

func (o *rootOptions) useCase(errOut io.Writer) (*seriesUsecase.GetSeriesUseCase, error) {
	logger := logging.NewWithWriter(errOut, o.logLevel, o.logFormat)

	reader, err := recapsFile.NewReader(o.file, recapsFile.WithSheet(o.sheet))
	if err != nil {
		return nil, err
	}

	loadRecordsUC := recordsUsecase.NewLoadRecordsUseCase(reader, nil, logger)
	return seriesUsecase.NewGetSeriesUseCase(loadRecordsUC, nil, logger, seriesUsecase.Options{
		MaxWindow:    maxWindow,
		DefaultCodes: o.codes,
	}), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
