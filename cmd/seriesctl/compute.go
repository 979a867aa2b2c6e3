package main

import (
	"github.com/spf13/cobra"

	seriesHttp "timeliness-series-service/internal/series/adapters/http/fiber"
	seriesUsecase "timeliness-series-service/internal/series/core/usecase"
)

func newComputeCmd(root *rootOptions) *cobra.Command {
	var (
		granularity string
		window      int
		groupBy     string
		overall     bool
		regimes     []string
		categories  []string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Print the smoothed series and regime boundaries as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := root.useCase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			in := seriesUsecase.GetSeriesInput{
				Granularity:    granularity,
				Window:         window,
				GroupBy:        groupBy,
				IncludeOverall: overall,
				Codes:          root.codes,
			}
			if cmd.Flags().Changed("regimes") {
				in.Regimes = nonNil(regimes)
			}
			if cmd.Flags().Changed("categories") {
				in.Categories = nonNil(categories)
			}

			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), seriesHttp.NewSeriesResponse(out))
		},
	}

	f := cmd.Flags()
	f.StringVar(&granularity, "granularity", "week", "week | month")
	f.IntVar(&window, "window", 30, "centered smoothing window")
	f.StringVar(&groupBy, "group-by", "", "region | sex | area_type | dose_stage (empty: overall only)")
	f.BoolVar(&overall, "overall", true, "include the Overall series")
	f.StringSliceVar(&regimes, "regimes", nil, "regime labels to include (default: all)")
	f.StringSliceVar(&categories, "categories", nil, "category values to include (default: dimension vocabulary)")

	return cmd
}

func newBoundariesCmd(root *rootOptions) *cobra.Command {
	var granularity string

	cmd := &cobra.Command{
		Use:   "boundaries",
		Short: "Print regime boundaries and per-regime ratios as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := root.useCase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out, err := uc.Execute(cmd.Context(), seriesUsecase.GetSeriesInput{
				Granularity: granularity,
				Window:      1,
				Codes:       root.codes,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), seriesHttp.NewSeriesResponse(out).Boundaries)
		},
	}

	cmd.Flags().StringVar(&granularity, "granularity", "week", "week | month")
	return cmd
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
