// Package gfk: trainer configuration.

package gfk

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/gfk/subspace"
)

// Numeric policy defaults.
const (
	// DefaultEps floors the denominator 2·max(θ, eps) in the kernel
	// coefficients, guarding the θ→0 removable singularity.
	DefaultEps = 1e-20

	// DefaultVarianceThreshold is the cumulative explained-variance ratio
	// used for both domains when no explicit width is requested.
	DefaultVarianceThreshold = 0.99

	// gsvdIdentityTol bounds the L1 deviation of ΓᵀΓ + ΣᵀΣ from I when
	// certifying the GSVD output.
	gsvdIdentityTol = 1e-10

	// thetaZeroTol is the angle below which the kernel coefficients switch
	// to their exact θ→0 limits instead of the eps-floored quotients,
	// avoiding systematic bias for near-aligned subspaces.
	thetaZeroTol = 1e-10
)

// Options configures a Trainer.
//
// Fields:
//   - PrincipalAngles — how many leading target components enter the
//     principal-angle computation. Must be ≥ 1 and, at Train time, no
//     larger than the trained target width and at most half the feature
//     count (the flow construction needs room for the complement block).
//   - SourceDim / TargetDim — per-domain subspace width selectors
//     (subspace.FixedCount or subspace.VarianceThreshold).
//   - Eps — positive floor for near-zero principal angles.
//   - Logger — structured stage logging, injected; defaults to a no-op
//     logger so the core stays silent unless asked.
//
// Example:
//
//	opts := gfk.DefaultOptions()
//	opts.PrincipalAngles = 10
//	opts.SourceDim = subspace.FixedCount(10)
//	opts.TargetDim = subspace.FixedCount(10)
//	trainer, err := gfk.New(opts)
type Options struct {
	PrincipalAngles int
	SourceDim       subspace.Dimension
	TargetDim       subspace.Dimension
	Eps             float64
	Logger          zerolog.Logger
}

// DefaultOptions returns the documented defaults: one principal angle,
// 0.99 variance threshold for both domains, Eps = 1e-20, no-op logger.
func DefaultOptions() Options {
	return Options{
		PrincipalAngles: 1,
		SourceDim:       subspace.VarianceThreshold(DefaultVarianceThreshold),
		TargetDim:       subspace.VarianceThreshold(DefaultVarianceThreshold),
		Eps:             DefaultEps,
		Logger:          zerolog.Nop(),
	}
}

// validate enforces the constructible subset of Options.
func (o Options) validate() error {
	if o.PrincipalAngles < 1 {
		return fmt.Errorf("Options: PrincipalAngles %d < 1: %w", o.PrincipalAngles, ErrBadOptions)
	}
	if o.Eps <= 0 {
		return fmt.Errorf("Options: Eps %v must be positive: %w", o.Eps, ErrBadOptions)
	}
	if err := o.SourceDim.Validate(); err != nil {
		return fmt.Errorf("Options: SourceDim: %v: %w", err, ErrBadOptions)
	}
	if err := o.TargetDim.Validate(); err != nil {
		return fmt.Errorf("Options: TargetDim: %v: %w", err, ErrBadOptions)
	}
	return nil
}
