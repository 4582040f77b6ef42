// Package gfk computes the Geodesic Flow Kernel (GFK) for unsupervised
// domain adaptation: comparing feature vectors drawn from two related but
// distributionally different domains through one closed-form kernel.
//
// 🚀 What is the Geodesic Flow Kernel?
//
//	Both domains are summarized by low-dimensional PCA subspaces. Those
//	subspaces are two points on the Grassmann manifold, joined by a
//	geodesic — a continuous path of intermediate subspaces. GFK integrates
//	the inner product along that whole path in closed form, producing a
//	single D×D kernel matrix K such that xs·K·xtᵀ is a domain-invariant
//	similarity between a raw source vector and a raw target vector.
//
// ✨ Pipeline (one Train call):
//   - subspace.Fit ×2 — per-domain z-normalization + PCA basis
//   - principal angles — GSVD of the row-partitioned overlap Ps_fullᵀ·Pt
//   - kernel assembly — closed-form block construction from the angles
//   - Machine — the immutable trained artifact: Evaluate, batch
//     evaluation, two Grassmann subspace distances, Save/Load
//
// ⚙️ Usage:
//
//	trainer, err := gfk.New(gfk.DefaultOptions())
//	if err != nil { ... }
//	machine, err := trainer.Train(sourceData, targetData)
//	if err != nil { ... }
//	sim, err := machine.Evaluate(xs, xt)
//
// Everything is deterministic and synchronous: no goroutines, no I/O
// besides explicit Save/Load, no global state. A Machine is read-only
// after construction and safe for concurrent readers; independent Train
// calls never share state.
//
// Numerical failures (a decomposition that does not converge, a GSVD
// output violating the cosine/sine identity) surface as
// ErrNumericalFailure with the failing stage and matrix shape in the
// message — they are deterministic and are never retried.
//
// Reference: Gong et al., "Geodesic flow kernel for unsupervised domain
// adaptation", CVPR 2012.
package gfk
