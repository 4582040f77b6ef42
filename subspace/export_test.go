// Package subspace: narrow export surface for white-box assertions from the
// external test package. Test-only; never ship logic here.

package subspace

// ResolveForTest exposes Dimension.resolve to the external test package.
func (d Dimension) ResolveForTest(variances []float64) (int, error) {
	return d.resolve(variances)
}
