// Package gfk: closed-form assembly of the geodesic-flow kernel matrix.
//
// This is the most shape-sensitive routine in the module: a single
// transposition or sign slip still multiplies through but yields a
// non-symmetric or indefinite kernel. The block layout is kept explicit
// and the symmetry invariant is covered by tests.

package gfk

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// flowCoefficients evaluates the closed-form integral coefficients for one
// principal angle:
//
//	b1 = ½(1 + sin(2θ)/(2·max(θ,eps)))
//	b2 = ½((cos(2θ) − 1)/(2·max(θ,eps)))
//	b4 = ½(1 − sin(2θ)/(2·max(θ,eps)))
//
// Below thetaZeroTol the exact θ→0 limits are used instead: sin(2θ)/(2θ)→1
// and (cos(2θ)−1)/(2θ)→0, so b1→1, b2→0, b4→0 — the flow collapses onto
// the source projector.
func flowCoefficients(theta, eps float64) (b1, b2, b4 float64) {
	if theta < thetaZeroTol {
		return 1, 0, 0
	}
	den := 2 * math.Max(theta, eps)
	b1 = 0.5 * (1 + math.Sin(2*theta)/den)
	b2 = 0.5 * ((math.Cos(2*theta) - 1) / den)
	b4 = 0.5 * (1 - math.Sin(2*theta)/den)
	return b1, b2, b4
}

// assembleKernel builds K = Ps_full·Δ1·Δ2·Δ3·Ps_fullᵀ from the certified
// angle factors.
//
// With N the feature count and dim the number of angles:
//
//	Δ1 = | V1  0  |   Δ2 = | B1 B2 0 |   Δ3 = Δ1ᵀ
//	     | 0   V2 |        | B3 B4 0 |
//	                       | 0  0  0 |
//
// V1 occupies the top-left dim×dim block, V2 the full bottom-right
// (N−dim)×(N−dim) block, and the Bᵢ are dim×dim diagonals (B3 = B2, which
// together with orthogonal V1, V2 makes K symmetric). All blocks are
// zero-padded to N×N.
func assembleKernel(f *angleFactors, psFull *mat.Dense, eps float64) *mat.Dense {
	n, _ := psFull.Dims()
	dim := len(f.theta)

	// Δ1: blockdiag(V1, V2).
	delta1 := mat.NewDense(n, n, nil)
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			delta1.Set(i, j, f.v1.At(i, j))
		}
	}
	for i := 0; i < n-dim; i++ {
		for j := 0; j < n-dim; j++ {
			delta1.Set(dim+i, dim+j, f.v2.At(i, j))
		}
	}

	// Δ2: 2×2 diagonal-block layout over the leading 2·dim rows/cols.
	delta2 := mat.NewDense(n, n, nil)
	for i, th := range f.theta {
		b1, b2, b4 := flowCoefficients(th, eps)
		delta2.Set(i, i, b1)
		delta2.Set(i, dim+i, b2)
		delta2.Set(dim+i, i, b2) // B3 = B2
		delta2.Set(dim+i, dim+i, b4)
	}

	// K = Ps_full · Δ1 · Δ2 · Δ1ᵀ · Ps_fullᵀ.
	var inner, flow, left, k mat.Dense
	inner.Mul(delta2, delta1.T())
	flow.Mul(delta1, &inner)
	left.Mul(psFull, &flow)
	k.Mul(&left, psFull.T())
	return &k
}
