// Package gfk: principal angles between the source and target subspaces
// via the generalized singular value decomposition.

package gfk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// angleFactors carries the certified GSVD output the kernel assembly needs.
type angleFactors struct {
	theta []float64  // principal angles, each in [0, π/2], length dim
	v1    *mat.Dense // dim×dim orthogonal
	v2    *mat.Dense // (N−dim)×(N−dim) orthogonal, sign-flipped
}

// principalAngles computes the canonical angles between the source and
// target subspaces.
//
// psFull is the N×N full source basis (principal components concatenated
// with their null-space complement), pt the N×dim truncated target basis.
// The overlap Q = psFullᵀ·pt is partitioned by rows at dim into A (top)
// and B (bottom), and GSVD(A, B) = (V1·Γ·Vᵀ, V2·Σ·Vᵀ) yields
// θᵢ = arccos(Γᵢᵢ).
//
// The factorization is certified before use: ΓᵀΓ + ΣᵀΣ must equal I within
// gsvdIdentityTol in L1 norm, otherwise the GSVD output cannot represent a
// cosine/sine pair and the call fails with ErrNumericalFailure. V2 is
// negated so the downstream assembly integrates a continuous rotation
// rather than a reflection.
func principalAngles(psFull, pt *mat.Dense) (*angleFactors, error) {
	n, nc := psFull.Dims()
	_, dim := pt.Dims()
	if n != nc {
		return nil, fmt.Errorf("principalAngles: full source basis %dx%d not square: %w", n, nc, ErrDimensionMismatch)
	}

	// Q = Ps_fullᵀ · Pt, split at row dim.
	var q mat.Dense
	q.Mul(psFull.T(), pt)
	a := q.Slice(0, dim, 0, dim)
	b := q.Slice(dim, n, 0, dim)

	var gsvd mat.GSVD
	if ok := gsvd.Factorize(a, b, mat.GSVDAll); !ok {
		return nil, fmt.Errorf("principalAngles: GSVD of %dx%d / %dx%d partition did not converge: %w",
			dim, dim, n-dim, dim, ErrNumericalFailure)
	}

	var v1, v2, gam, sig mat.Dense
	gsvd.UTo(&v1)
	gsvd.VTo(&v2)
	gsvd.SigmaATo(&gam)
	gsvd.SigmaBTo(&sig)

	// Rank deficiency in the partition shrinks the joint factor below dim,
	// which the flow construction cannot absorb.
	if _, kl := gam.Dims(); kl < dim {
		return nil, fmt.Errorf("principalAngles: partition rank %d below requested width %d: %w",
			kl, dim, ErrNumericalFailure)
	}

	if err := checkCosSinIdentity(&gam, &sig); err != nil {
		return nil, err
	}

	// Sign convention for the flow construction.
	v2.Scale(-1, &v2)

	theta := make([]float64, dim)
	for i := 0; i < dim; i++ {
		// Clamp against |cos| marginally above 1 from rounding.
		c := gam.At(i, i)
		if c > 1 {
			c = 1
		} else if c < -1 {
			c = -1
		}
		theta[i] = math.Acos(c)
	}

	return &angleFactors{theta: theta, v1: &v1, v2: &v2}, nil
}

// checkCosSinIdentity certifies ΓᵀΓ + ΣᵀΣ = I within gsvdIdentityTol (L1).
func checkCosSinIdentity(gam, sig *mat.Dense) error {
	_, k := gam.Dims()
	var gg, ss mat.Dense
	gg.Mul(gam.T(), gam)
	ss.Mul(sig.T(), sig)

	var deviation float64
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			deviation += math.Abs(gg.At(i, j) + ss.At(i, j) - want)
		}
	}
	if deviation > gsvdIdentityTol {
		return fmt.Errorf("principalAngles: GSVD cosine/sine identity off by %v over a %dx%d check (tol %v): %w",
			deviation, k, k, gsvdIdentityTol, ErrNumericalFailure)
	}
	return nil
}
