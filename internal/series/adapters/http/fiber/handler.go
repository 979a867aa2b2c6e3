package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"timeliness-series-service/internal/series/core/pipeline"
	"timeliness-series-service/internal/series/core/usecase"
)

type GetSeriesUseCase interface {
	Execute(ctx context.Context, in usecase.GetSeriesInput) (*usecase.GetSeriesOutput, error)
}

type SeriesHandler struct {
	uc            GetSeriesUseCase
	defaultWindow int
}

func NewSeriesHandler(uc GetSeriesUseCase, defaultWindow int) *SeriesHandler {
	return &SeriesHandler{uc: uc, defaultWindow: defaultWindow}
}

// GetSeries godoc
// @Summary Smoothed timeliness ratio series
// @Description Aggregates weekly timely/untimely counts per group, smooths them and returns regime boundaries
// @Tags Series
// @Produce json
// @Param granularity query string false "week | month" default(week)
// @Param window query int false "Centered smoothing window (weeks)"
// @Param group_by query string false "region | sex | area_type | dose_stage; empty for overall only"
// @Param overall query bool false "Include the Overall series" default(true)
// @Param regimes query string false "Comma separated regime labels; present but empty selects none"
// @Param categories query string false "Comma separated category values; narrows the dimension vocabulary"
// @Param codes query string false "Comma separated recap codes"
// @Success 200 {object} SeriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /series [get]
func (h *SeriesHandler) GetSeries(c *fiber.Ctx) error {
	window := h.defaultWindow
	if s := c.Query("window", ""); s != "" {
		w, err := strconv.Atoi(s)
		if err != nil {
			return badRequest(c, "invalid 'window' parameter")
		}
		window = w
	}

	includeOverall := true
	if s := c.Query("overall", ""); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return badRequest(c, "invalid 'overall' parameter")
		}
		includeOverall = b
	}

	var codes []int
	if raw, ok := listParam(c, "codes"); ok {
		codes = make([]int, 0, len(raw))
		for _, s := range raw {
			n, err := strconv.Atoi(s)
			if err != nil {
				return badRequest(c, "invalid 'codes' parameter")
			}
			codes = append(codes, n)
		}
	}

	in := usecase.GetSeriesInput{
		Granularity:    c.Query("granularity", "week"),
		Window:         window,
		GroupBy:        c.Query("group_by", ""),
		IncludeOverall: includeOverall,
		Codes:          codes,
	}
	if v, ok := listParam(c, "regimes"); ok {
		in.Regimes = v
	}
	if v, ok := listParam(c, "categories"); ok {
		in.Categories = v
	}

	out, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		var cfgErr *pipeline.ConfigurationError
		switch {
		case errors.As(err, &cfgErr):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(http.StatusOK).JSON(NewSeriesResponse(out))
}

// listParam splits a comma separated query parameter. ok is false when the
// parameter is absent; a present but empty parameter yields an empty slice.
func listParam(c *fiber.Ctx, name string) ([]string, bool) {
	if !c.Context().QueryArgs().Has(name) {
		return nil, false
	}

	out := []string{}
	for _, part := range strings.Split(c.Query(name), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, true
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_query",
		Message: msg,
	})
}
