// Package subspace: principal-component training.
//
// Fit implements the PCA stage: z-normalize the data, decompose, pick the
// subspace width, truncate, and attach the normalization to the basis.

package subspace

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Fit trains a Basis from a samples×features data matrix.
//
// Steps:
//  1. Compute per-feature mean and (population) standard deviation over the
//     rows and z-normalize. A zero-variance feature makes the division
//     undefined and fails with ErrDegenerateInput.
//  2. Decompose the normalized data with a thin SVD; the right-singular
//     vectors are an orthonormal basis ordered by descending explained
//     variance, with variances sᵢ²/(m−1).
//  3. Resolve dim to a concrete width (see Dimension) and truncate the
//     basis to that many leading columns. Truncating an orthonormal basis
//     preserves orthonormality of the retained columns.
//
// Complexity: O(m·n·min(m,n)) time for the decomposition, O(n·d) memory
// for the result.
func Fit(data *mat.Dense, dim Dimension) (*Basis, error) {
	if err := dim.Validate(); err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("Fit: nil data: %w", ErrDegenerateInput)
	}
	m, n := data.Dims()
	if m < minSamples || n == 0 {
		return nil, fmt.Errorf("Fit: %dx%d data, need at least %d rows and 1 column: %w",
			m, n, minSamples, ErrDegenerateInput)
	}

	// Stage 1: z-normalize into a fresh matrix, keeping the caller's data
	// intact. Population std, matching the training convention downstream
	// evaluation relies on.
	mean, scale, err := moments(data)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}
	normalized := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			normalized.Set(i, j, (data.At(i, j)-mean[j])/scale[j])
		}
	}

	// Stage 2: thin SVD of the normalized data. X = U·S·Vᵀ, columns of V
	// are the principal directions, eigen-spectrum of the covariance is
	// sᵢ²/(m−1).
	var svd mat.SVD
	if ok := svd.Factorize(normalized, mat.SVDThin); !ok {
		return nil, fmt.Errorf("Fit: SVD of %dx%d normalized data did not converge: %w", m, n, ErrNumericalFailure)
	}
	s := svd.Values(nil)
	variances := make([]float64, len(s))
	for i, sv := range s {
		variances[i] = sv * sv / float64(m-1)
	}

	// Stage 3: resolve the requested width and truncate.
	width, err := dim.resolve(variances)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", err)
	}
	var v mat.Dense
	svd.VTo(&v)
	weights := mat.NewDense(n, width, nil)
	for r := 0; r < n; r++ {
		for c := 0; c < width; c++ {
			weights.Set(r, c, v.At(r, c))
		}
	}

	return NewBasis(weights, mean, scale)
}

// moments returns the per-feature mean and population standard deviation
// of the rows of data, rejecting zero-variance features.
func moments(data *mat.Dense) (mean, scale []float64, err error) {
	m, n := data.Dims()
	mean = make([]float64, n)
	scale = make([]float64, n)
	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i < m; i++ {
			sum += data.At(i, j)
		}
		mean[j] = sum / float64(m)
	}
	for j := 0; j < n; j++ {
		var ss float64
		for i := 0; i < m; i++ {
			d := data.At(i, j) - mean[j]
			ss += d * d
		}
		sd := ss / float64(m)
		if sd == 0 {
			return nil, nil, fmt.Errorf("moments: feature %d has zero variance: %w", j, ErrDegenerateInput)
		}
		scale[j] = math.Sqrt(sd)
	}
	return mean, scale, nil
}
