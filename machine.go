// Package gfk: the trained artifact — kernel evaluation and Grassmann
// subspace distances.

package gfk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gfk/subspace"
)

// Machine is a trained geodesic-flow kernel: the two domain bases and the
// D×D kernel matrix. Constructed only by Trainer.Train or Load; read-only
// afterwards, therefore safe for concurrent readers.
type Machine struct {
	source *subspace.Basis
	target *subspace.Basis
	k      *mat.Dense // D×D, symmetric
}

// Source returns the trained source-domain basis.
func (m *Machine) Source() *subspace.Basis { return m.source }

// Target returns the trained target-domain basis.
func (m *Machine) Target() *subspace.Basis { return m.target }

// Kernel exposes the kernel matrix as a read-only view.
func (m *Machine) Kernel() mat.Matrix { return m.k }

// Shape returns the kernel matrix dimensions (D, D).
func (m *Machine) Shape() (int, int) { return m.k.Dims() }

// Evaluate computes the domain-invariant similarity xs·K·xtᵀ between one
// raw source vector and one raw target vector. Each vector is first
// z-normalized with its own basis's stored mean and scale. The result is
// bilinear in both arguments.
func (m *Machine) Evaluate(xs, xt []float64) (float64, error) {
	if err := m.ready(); err != nil {
		return 0, fmt.Errorf("Evaluate: %w", err)
	}
	ns, err := m.source.Normalize(xs, nil)
	if err != nil {
		return 0, fmt.Errorf("Evaluate: source vector: %w", err)
	}
	nt, err := m.target.Normalize(xt, nil)
	if err != nil {
		return 0, fmt.Errorf("Evaluate: target vector: %w", err)
	}

	d := len(ns)
	var kt mat.VecDense
	kt.MulVec(m.k, mat.NewVecDense(d, nt))
	return mat.Dot(mat.NewVecDense(d, ns), &kt), nil
}

// EvaluateBatch computes the full similarity matrix between row batches:
// result(i,j) = Evaluate(source row i, target row j). Both matrices must
// have D columns; the result is len(source)×len(target).
func (m *Machine) EvaluateBatch(source, target *mat.Dense) (*mat.Dense, error) {
	if err := m.ready(); err != nil {
		return nil, fmt.Errorf("EvaluateBatch: %w", err)
	}
	if source == nil || target == nil {
		return nil, fmt.Errorf("EvaluateBatch: nil batch: %w", ErrDimensionMismatch)
	}
	d := m.source.Features()
	_, sc := source.Dims()
	_, tc := target.Dims()
	if sc != d || tc != d {
		return nil, fmt.Errorf("EvaluateBatch: batches have %d/%d columns, want %d: %w", sc, tc, d, ErrDimensionMismatch)
	}

	ns := normalizeRows(source, m.source)
	nt := normalizeRows(target, m.target)

	var kt, out mat.Dense
	kt.Mul(m.k, nt.T())
	out.Mul(ns, &kt)
	return &out, nil
}

// PrincipalAngleDistance is the squared-angle Grassmann distance between
// the two trained subspaces: Σ arccos(σᵢ)² over the singular values of
// Psᵀ·Pt (the trained widths, not the padded full bases). Zero when the
// subspaces coincide; independent of the kernel matrix.
func (m *Machine) PrincipalAngleDistance() (float64, error) {
	if err := m.ready(); err != nil {
		return 0, fmt.Errorf("PrincipalAngleDistance: %w", err)
	}

	var overlap mat.Dense
	overlap.Mul(m.source.Weights().T(), m.target.Weights())

	var svd mat.SVD
	if ok := svd.Factorize(&overlap, mat.SVDNone); !ok {
		r, c := overlap.Dims()
		return 0, fmt.Errorf("PrincipalAngleDistance: SVD of %dx%d overlap did not converge: %w", r, c, ErrNumericalFailure)
	}

	var sum float64
	for _, sigma := range svd.Values(nil) {
		if sigma > 1 {
			sigma = 1 // rounding above cos 0
		}
		a := math.Acos(sigma)
		sum += a * a
	}
	return sum, nil
}

// BinetCauchyDistance is the Binet–Cauchy Grassmann distance
// 1 − det(Y1ᵀ·Y2)², where Yᵢ extends each trained basis with the
// orthonormal complement of its span. Bounded in [0,1] for orthonormal
// inputs; zero when the subspaces coincide.
func (m *Machine) BinetCauchyDistance() (float64, error) {
	if err := m.ready(); err != nil {
		return 0, fmt.Errorf("BinetCauchyDistance: %w", err)
	}

	y1, err := extendToFullRank(m.source, subspace.DefaultEps)
	if err != nil {
		return 0, fmt.Errorf("BinetCauchyDistance: source span: %w", err)
	}
	y2, err := extendToFullRank(m.target, subspace.DefaultEps)
	if err != nil {
		return 0, fmt.Errorf("BinetCauchyDistance: target span: %w", err)
	}

	var overlap mat.Dense
	overlap.Mul(y1.T(), y2)
	det := mat.Det(&overlap)
	return 1 - det*det, nil
}

// ready guards against a nil or partially constructed machine.
func (m *Machine) ready() error {
	if m == nil || m.source == nil || m.target == nil || m.k == nil {
		return ErrNotTrained
	}
	return nil
}

// normalizeRows z-normalizes every row of data with the basis's moments.
func normalizeRows(data *mat.Dense, b *subspace.Basis) *mat.Dense {
	r, c := data.Dims()
	mean := b.Mean()
	scale := b.Scale()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (data.At(i, j)-mean[j])/scale[j])
		}
	}
	return out
}
