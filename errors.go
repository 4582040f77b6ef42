// Package gfk: sentinel error set.
// Every exported operation returns one of these sentinels (or a subspace
// sentinel), wrapped with stage context via fmt.Errorf("Op: ctx: %w", Err).
// Tests and callers match with errors.Is; nothing here panics on
// user-triggered conditions.

package gfk

import "errors"

var (
	// ErrBadOptions indicates an Options value that cannot configure a
	// trainer: non-positive principal-angle width, non-positive epsilon, or
	// an invalid subspace width selector.
	ErrBadOptions = errors.New("gfk: invalid options")

	// ErrNumericalFailure indicates a dense decomposition did not converge
	// or the GSVD output violated the cosine/sine identity ΓᵀΓ + ΣᵀΣ = I.
	// Deterministic for a given input; never retried.
	ErrNumericalFailure = errors.New("gfk: numerical failure")

	// ErrDimensionMismatch indicates operands whose shapes cannot combine:
	// source/target data with different feature counts, or evaluation
	// vectors whose length differs from the trained feature dimensionality.
	ErrDimensionMismatch = errors.New("gfk: dimension mismatch")

	// ErrCorruptState indicates a persisted machine whose decoded shape is
	// inconsistent — most importantly a kernel matrix whose size does not
	// match both bases' feature dimensionality. Never auto-repaired.
	ErrCorruptState = errors.New("gfk: corrupt persisted state")

	// ErrNotTrained indicates a Machine method called on a nil or
	// incompletely constructed machine.
	ErrNotTrained = errors.New("gfk: machine not trained")
)
