package sweep

import "errors"

var (
	ErrNoTemperatures = errors.New("sweep: no temperatures")
	ErrNoRuns         = errors.New("sweep: runs must be at least 1")
	ErrEmptyResult    = errors.New("sweep: result has no runs")
)
