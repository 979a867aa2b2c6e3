package pipeline

import (
	"errors"
	"fmt"

	"timeliness-series-service/internal/series/core/domain"
)

var (
	ErrInvalidWindow      = errors.New("window size must be at least 1")
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrUnknownDimension   = errors.New("unknown group dimension")
)

// ConfigurationError reports a parameter the pipeline refuses to run with.
type ConfigurationError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Validate checks p before any aggregation runs.
func Validate(p domain.Params) error {
	if !p.Granularity.Valid() {
		return &ConfigurationError{Field: "granularity", Value: fmt.Sprintf("%q", p.Granularity), Err: ErrInvalidGranularity}
	}
	if p.WindowSize < 1 {
		return &ConfigurationError{Field: "window", Value: p.WindowSize, Err: ErrInvalidWindow}
	}
	if p.GroupDimension != "" && !p.GroupDimension.Known() {
		return &ConfigurationError{Field: "group_by", Value: fmt.Sprintf("%q", p.GroupDimension), Err: ErrUnknownDimension}
	}
	return nil
}
