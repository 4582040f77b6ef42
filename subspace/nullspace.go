// Package subspace: orthogonal complement of a column space by
// singular-value thresholding.

package subspace

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Complement returns an orthonormal basis (n×k) for the orthogonal
// complement of the column space of a, where a is m×n and
// k = n − rank(a). A singular value is treated as numerically zero when
// ≤ eps. A full decomposition over a non-square matrix reports only
// min(m,n) singular values, so the "extra" right-singular vectors beyond
// that count belong to the complement by construction and are included
// unconditionally.
//
// A nil result with a nil error means the complement is empty (k = 0),
// which is exactly the outcome for any full-column-rank square input.
// Returns ErrNumericalFailure if the decomposition does not converge.
func Complement(a mat.Matrix, eps float64) (*mat.Dense, error) {
	if a == nil {
		return nil, fmt.Errorf("Complement: nil matrix: %w", ErrDegenerateInput)
	}
	m, n := a.Dims()
	if m == 0 || n == 0 {
		return nil, fmt.Errorf("Complement: empty %dx%d matrix: %w", m, n, ErrDegenerateInput)
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFullV); !ok {
		return nil, fmt.Errorf("Complement: SVD of %dx%d matrix did not converge: %w", m, n, ErrNumericalFailure)
	}
	s := svd.Values(nil)

	// Null mask over the n right-singular vectors: reported values ≤ eps,
	// plus every index past the min(m,n) reported ones.
	null := make([]bool, n)
	k := 0
	for i := 0; i < n; i++ {
		if i >= len(s) || s[i] <= eps {
			null[i] = true
			k++
		}
	}
	if k == 0 {
		return nil, nil
	}

	var v mat.Dense
	svd.VTo(&v)

	out := mat.NewDense(n, k, nil)
	col := 0
	for i := 0; i < n; i++ {
		if !null[i] {
			continue
		}
		for r := 0; r < n; r++ {
			out.Set(r, col, v.At(r, i))
		}
		col++
	}
	return out, nil
}
