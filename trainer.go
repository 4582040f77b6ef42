// Package gfk: training orchestration — PCA per domain, principal angles,
// kernel assembly.

package gfk

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gfk/subspace"
)

// Trainer builds Machines from paired domain data. Immutable once
// constructed; a single Trainer may run any number of independent Train
// calls.
type Trainer struct {
	opts Options
	log  zerolog.Logger
}

// New validates opts and returns a Trainer. Returns ErrBadOptions when the
// configuration is not constructible.
func New(opts Options) (*Trainer, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	return &Trainer{opts: opts, log: opts.Logger}, nil
}

// Train fits both domain subspaces and assembles the geodesic-flow kernel.
//
// source and target are samples×features matrices and must share the same
// feature count D. The pipeline is strictly sequential:
//
//	z-norm + PCA (source, target)
//	→ Ps_full = [Ps | Complement(Psᵀ)]  (D×D, full rank)
//	→ principal angles of (Ps_full, Pt truncated to PrincipalAngles)
//	→ closed-form kernel K (D×D)
//
// Errors: ErrDimensionMismatch for incompatible shapes,
// subspace.ErrDegenerateInput for unusable data or widths beyond the
// available rank, ErrNumericalFailure from the decompositions. The whole
// call fails on the first error; nothing is retried.
func (t *Trainer) Train(source, target *mat.Dense) (*Machine, error) {
	if source == nil || target == nil {
		return nil, fmt.Errorf("Train: nil data matrix: %w", subspace.ErrDegenerateInput)
	}
	_, sf := source.Dims()
	_, tf := target.Dims()
	if sf != tf {
		return nil, fmt.Errorf("Train: source has %d features, target %d: %w", sf, tf, ErrDimensionMismatch)
	}

	t.log.Info().Msg("normalizing data per domain")

	t.log.Info().Stringer("dim", t.opts.SourceDim).Msg("computing PCA for the source domain")
	src, err := subspace.Fit(source, t.opts.SourceDim)
	if err != nil {
		return nil, fmt.Errorf("Train: source PCA: %w", err)
	}
	t.log.Info().Int("kept", src.Dim()).Msg("source subspace trained")

	t.log.Info().Stringer("dim", t.opts.TargetDim).Msg("computing PCA for the target domain")
	tgt, err := subspace.Fit(target, t.opts.TargetDim)
	if err != nil {
		return nil, fmt.Errorf("Train: target PCA: %w", err)
	}
	t.log.Info().Int("kept", tgt.Dim()).Msg("target subspace trained")

	dim := t.opts.PrincipalAngles
	if dim > tgt.Dim() {
		return nil, fmt.Errorf("Train: %d principal angles exceed the %d-wide target subspace: %w",
			dim, tgt.Dim(), subspace.ErrDegenerateInput)
	}
	if 2*dim > sf {
		return nil, fmt.Errorf("Train: %d principal angles need 2·%d ≤ %d features for the flow blocks: %w",
			dim, dim, sf, subspace.ErrDegenerateInput)
	}

	psFull, err := extendToFullRank(src, t.opts.Eps)
	if err != nil {
		return nil, fmt.Errorf("Train: %w", err)
	}
	pt := truncate(tgt.Weights(), dim)

	factors, err := principalAngles(psFull, pt)
	if err != nil {
		return nil, fmt.Errorf("Train: %w", err)
	}

	t.log.Info().Int("angles", dim).Msg("assembling geodesic-flow kernel")
	k := assembleKernel(factors, psFull, t.opts.Eps)

	return &Machine{source: src, target: tgt, k: k}, nil
}

// extendToFullRank concatenates a trained basis's components with the
// orthonormal complement of their span, yielding a full-rank D×D basis.
func extendToFullRank(src *subspace.Basis, eps float64) (*mat.Dense, error) {
	d := src.Features()
	weights := src.Weights()

	comp, err := subspace.Complement(weights.T(), eps)
	if err != nil {
		return nil, fmt.Errorf("extendToFullRank: %w", err)
	}

	full := mat.NewDense(d, d, nil)
	_, kept := weights.Dims()
	for i := 0; i < d; i++ {
		for j := 0; j < kept; j++ {
			full.Set(i, j, weights.At(i, j))
		}
	}
	if comp != nil {
		_, extra := comp.Dims()
		if kept+extra != d {
			return nil, fmt.Errorf("extendToFullRank: %d components + %d complement ≠ %d features: %w",
				kept, extra, d, ErrNumericalFailure)
		}
		for i := 0; i < d; i++ {
			for j := 0; j < extra; j++ {
				full.Set(i, kept+j, comp.At(i, j))
			}
		}
	} else if kept != d {
		return nil, fmt.Errorf("extendToFullRank: empty complement for a %d-of-%d basis: %w",
			kept, d, ErrNumericalFailure)
	}
	return full, nil
}

// truncate copies the leading dim columns of w.
func truncate(w mat.Matrix, dim int) *mat.Dense {
	r, _ := w.Dims()
	out := mat.NewDense(r, dim, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < dim; j++ {
			out.Set(i, j, w.At(i, j))
		}
	}
	return out
}
