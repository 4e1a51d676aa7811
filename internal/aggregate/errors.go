package aggregate

import "errors"

// Sentinel errors for the aggregate package.
var (
	// ErrTableShape means a pruning table or symmetry map does not cover the
	// cross x corner x edge space the aggregator walks.
	ErrTableShape = errors.New("aggregate: table shape mismatch")

	// ErrDepthRange means a table holds a distance the histograms cannot.
	ErrDepthRange = errors.New("aggregate: distance out of histogram range")

	// ErrRange means a requested cross sub-range is empty or out of bounds.
	ErrRange = errors.New("aggregate: invalid cross range")
)
