// Package subspace: sentinel error set.
// All exported functions return these sentinels (possibly wrapped with
// fmt.Errorf("Op: ctx: %w", Err...)); callers and tests match via errors.Is.
// No function panics on user-triggered conditions.

package subspace

import "errors"

var (
	// ErrDegenerateInput indicates the training data cannot yield a valid
	// basis: empty matrix, fewer than two rows, a zero-variance feature, or
	// a requested width exceeding the available number of components.
	ErrDegenerateInput = errors.New("subspace: degenerate input")

	// ErrNumericalFailure indicates a singular value decomposition failed
	// to converge. Deterministic on a given input, so never retried.
	ErrNumericalFailure = errors.New("subspace: numerical failure")

	// ErrBadDimension indicates a Dimension selector that is not
	// constructible by FixedCount or VarianceThreshold (zero value, count
	// < 1, or threshold outside (0,1)).
	ErrBadDimension = errors.New("subspace: invalid dimension selector")
)
