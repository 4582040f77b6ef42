// Package subspace: the Basis entity — an orthonormal projection plus the
// per-feature normalization applied before projection.

package subspace

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// orthoTol bounds |WᵀW − I| entry-wise when certifying orthonormality.
const orthoTol = 1e-8

// Basis is an immutable trained subspace: a D×d weight matrix with
// orthonormal columns, and the length-D mean and scale vectors of the
// z-normalization the training data went through. Construct it with Fit
// (or NewBasis for pre-computed factors); never mutate it afterwards.
type Basis struct {
	weights *mat.Dense // D×d, columns orthonormal
	mean    []float64  // length D
	scale   []float64  // length D, all entries > 0
}

// NewBasis wraps pre-computed factors into a Basis. The weight matrix must
// be D×d with d ≤ D and orthonormal columns; mean and scale must both have
// length D and scale must be strictly positive. Returns ErrDegenerateInput
// when the shapes or the positivity constraint are violated.
func NewBasis(weights *mat.Dense, mean, scale []float64) (*Basis, error) {
	if weights == nil {
		return nil, fmt.Errorf("NewBasis: nil weights: %w", ErrDegenerateInput)
	}
	rows, cols := weights.Dims()
	if cols > rows {
		return nil, fmt.Errorf("NewBasis: %d columns exceed %d features: %w", cols, rows, ErrDegenerateInput)
	}
	if len(mean) != rows || len(scale) != rows {
		return nil, fmt.Errorf("NewBasis: mean/scale length %d/%d, want %d: %w",
			len(mean), len(scale), rows, ErrDegenerateInput)
	}
	for i, s := range scale {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("NewBasis: scale[%d]=%v not positive finite: %w", i, s, ErrDegenerateInput)
		}
	}
	b := &Basis{weights: weights, mean: mean, scale: scale}
	if err := b.checkOrthonormal(); err != nil {
		return nil, err
	}
	return b, nil
}

// Features returns D, the raw feature dimensionality.
func (b *Basis) Features() int {
	r, _ := b.weights.Dims()
	return r
}

// Dim returns d, the number of retained components.
func (b *Basis) Dim() int {
	_, c := b.weights.Dims()
	return c
}

// Weights exposes the D×d projection matrix as a read-only view.
func (b *Basis) Weights() mat.Matrix { return b.weights }

// Mean returns a copy of the per-feature training mean.
func (b *Basis) Mean() []float64 {
	out := make([]float64, len(b.mean))
	copy(out, b.mean)
	return out
}

// Scale returns a copy of the per-feature training standard deviation.
func (b *Basis) Scale() []float64 {
	out := make([]float64, len(b.scale))
	copy(out, b.scale)
	return out
}

// Normalize applies the stored z-normalization to a raw feature vector:
// (x − mean) / scale. If dst is non-nil it receives the result and is
// returned; otherwise a fresh slice is allocated. Returns
// ErrDegenerateInput when len(x) ≠ D.
func (b *Basis) Normalize(x, dst []float64) ([]float64, error) {
	if len(x) != len(b.mean) {
		return nil, fmt.Errorf("Normalize: vector length %d, want %d: %w", len(x), len(b.mean), ErrDegenerateInput)
	}
	if dst == nil {
		dst = make([]float64, len(x))
	} else if len(dst) != len(x) {
		return nil, fmt.Errorf("Normalize: dst length %d, want %d: %w", len(dst), len(x), ErrDegenerateInput)
	}
	for i, v := range x {
		dst[i] = (v - b.mean[i]) / b.scale[i]
	}
	return dst, nil
}

// Project normalizes x and maps it into subspace coordinates: Wᵀ·norm(x),
// a length-d vector. dst semantics mirror Normalize.
func (b *Basis) Project(x, dst []float64) ([]float64, error) {
	norm, err := b.Normalize(x, nil)
	if err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}
	d := b.Dim()
	if dst == nil {
		dst = make([]float64, d)
	} else if len(dst) != d {
		return nil, fmt.Errorf("Project: dst length %d, want %d: %w", len(dst), d, ErrDegenerateInput)
	}
	out := mat.NewVecDense(d, dst)
	out.MulVec(b.weights.T(), mat.NewVecDense(len(norm), norm))
	return dst, nil
}

// checkOrthonormal certifies WᵀW = I within orthoTol.
func (b *Basis) checkOrthonormal() error {
	d := b.Dim()
	var gram mat.Dense
	gram.Mul(b.weights.T(), b.weights)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(gram.At(i, j)-want) > orthoTol {
				return fmt.Errorf("Basis: columns not orthonormal at (%d,%d): |%v−%v| > %v: %w",
					i, j, gram.At(i, j), want, orthoTol, ErrNumericalFailure)
			}
		}
	}
	return nil
}
