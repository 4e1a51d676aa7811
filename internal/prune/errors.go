package prune

import "errors"

// Sentinel errors for the prune package.
var (
	// ErrUnreached means the search converged with feasible entries left
	// unvisited: the generators did not reach the whole feasible space.
	ErrUnreached = errors.New("prune: unreached entries after convergence")

	// ErrInfeasibleReached means the search reached an entry the
	// feasibility predicate rules out: the predicate or the axes are wrong.
	ErrInfeasibleReached = errors.New("prune: infeasible entries reached")

	// ErrDepthOverflow means a distance would collide with the sentinel.
	ErrDepthOverflow = errors.New("prune: depth reached the unvisited sentinel")

	// ErrStart means the start coordinate is outside an axis.
	ErrStart = errors.New("prune: start coordinate out of range")
)
