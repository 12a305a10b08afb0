package services

import "errors"

// Stage-level failures. The first four abort the pipeline with a reported
// reason; a dashboard failure only degrades the output.
var (
	ErrBenchmarkUnavailable = errors.New("benchmark unavailable")
	ErrFitUnavailable       = errors.New("fit evaluation unavailable")
	ErrInvalidResponse      = errors.New("invalid generative response")
	ErrGrowthUnavailable    = errors.New("growth simulation unavailable")
	ErrDashboardUnavailable = errors.New("dashboard summary unavailable")
)
