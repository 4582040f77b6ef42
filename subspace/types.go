// Package subspace: width selectors and numeric policy constants.

package subspace

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// DefaultEps is the singular-value threshold below which a value is treated
// as numerically zero (rank detection in Complement).
const DefaultEps = 1e-20

// minSamples is the smallest row count for which per-feature standard
// deviation is meaningful.
const minSamples = 2

// Dimension selects how many leading principal components a fitted Basis
// keeps. It is a tagged variant: construct it with FixedCount or
// VarianceThreshold, never directly.
//
//   - FixedCount(k)        — keep exactly k components.
//   - VarianceThreshold(t) — keep the smallest prefix of components whose
//     cumulative explained-variance ratio strictly exceeds t ∈ (0,1),
//     scanning from the most significant component.
//
// The zero value is invalid and rejected by Fit with ErrBadDimension.
type Dimension struct {
	count      int
	threshold  float64
	fractional bool
	set        bool
}

// FixedCount returns a Dimension keeping exactly count components.
func FixedCount(count int) Dimension {
	return Dimension{count: count, set: true}
}

// VarianceThreshold returns a Dimension keeping the minimal leading prefix
// whose cumulative explained-variance ratio strictly exceeds t.
func VarianceThreshold(t float64) Dimension {
	return Dimension{threshold: t, fractional: true, set: true}
}

// Validate reports whether the selector is well-formed.
func (d Dimension) Validate() error {
	if !d.set {
		return fmt.Errorf("Dimension: zero value: %w", ErrBadDimension)
	}
	if d.fractional {
		if d.threshold <= 0 || d.threshold >= 1 {
			return fmt.Errorf("Dimension: threshold %v outside (0,1): %w", d.threshold, ErrBadDimension)
		}
		return nil
	}
	if d.count < 1 {
		return fmt.Errorf("Dimension: count %d < 1: %w", d.count, ErrBadDimension)
	}
	return nil
}

// String renders the selector for logs and error context.
func (d Dimension) String() string {
	switch {
	case !d.set:
		return "Dimension(unset)"
	case d.fractional:
		return fmt.Sprintf("VarianceThreshold(%g)", d.threshold)
	default:
		return fmt.Sprintf("FixedCount(%d)", d.count)
	}
}

// resolve maps the selector onto a concrete width given the descending
// variance spectrum. Assumes Validate passed.
func (d Dimension) resolve(variances []float64) (int, error) {
	if !d.fractional {
		if d.count > len(variances) {
			return 0, fmt.Errorf("Dimension: requested %d components, only %d available: %w",
				d.count, len(variances), ErrDegenerateInput)
		}
		return d.count, nil
	}
	total := floats.Sum(variances)
	if total <= 0 {
		return 0, fmt.Errorf("Dimension: variance spectrum sums to %v: %w", total, ErrDegenerateInput)
	}
	// Smallest prefix whose cumulative ratio strictly exceeds the threshold.
	var cum float64
	for i, v := range variances {
		cum += v
		if cum/total > d.threshold {
			return i + 1, nil
		}
	}
	// Unreachable for t < 1 since the full prefix ratio is exactly 1.
	return len(variances), nil
}
