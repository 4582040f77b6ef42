// Package subspace builds low-dimensional linear subspaces from raw data
// matrices, the building block underneath the geodesic-flow kernel.
//
// 🚀 What does subspace provide?
//
//	A Basis couples an orthonormal projection matrix with the per-feature
//	normalization (mean, scale) that was applied before projection:
//	  • Fit — principal-component analysis with z-normalization, selecting
//	    the subspace width either as a fixed count or by a cumulative
//	    explained-variance threshold
//	  • Complement — the orthogonal complement of a matrix's column space,
//	    computed by singular-value thresholding
//	  • Basis.Normalize / Basis.Project — apply the stored normalization
//	    and the learned projection to raw feature vectors
//
// ✨ Key guarantees:
//   - Basis columns are orthonormal (WᵀW = I within floating tolerance),
//     and truncation to any leading prefix preserves that
//   - Fit is deterministic: no randomness, no global state
//   - Degenerate data (zero-variance features, empty or single-row input)
//     is rejected up front with ErrDegenerateInput, never silently patched
//
// ⚙️ Usage:
//
//	basis, err := subspace.Fit(data, subspace.VarianceThreshold(0.99))
//	if err != nil { ... }
//	coords := basis.Project(x, nil)
//
// All heavy lifting runs on gonum's dense SVD; a factorization that fails
// to converge surfaces as ErrNumericalFailure.
package subspace
