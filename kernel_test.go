package gfk_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gfk"
)

const (
	symTol   = 1e-8
	angleTol = 1e-8
)

// identity returns an n×n identity matrix.
func identity(n int) *mat.Dense {
	eye := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		eye.Set(i, i, 1)
	}
	return eye
}

// rotation2 returns the 2×2 rotation by angle a.
func rotation2(a float64) *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		math.Cos(a), -math.Sin(a),
		math.Sin(a), math.Cos(a),
	})
}

// maxAsymmetry returns max|K − Kᵀ| over all entries.
func maxAsymmetry(k mat.Matrix) float64 {
	n, _ := k.Dims()
	var worst float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if d := math.Abs(k.At(i, j) - k.At(j, i)); d > worst {
				worst = d
			}
		}
	}
	return worst
}

// TestFlowCoefficients_Limits pins the θ→0 exact limits and a closed-form
// value at θ=π/2.
func TestFlowCoefficients_Limits(t *testing.T) {
	b1, b2, b4 := gfk.FlowCoefficientsForTest(0, gfk.DefaultEps)
	assert.Equal(t, 1.0, b1, "θ=0: flow collapses onto the source projector")
	assert.Equal(t, 0.0, b2)
	assert.Equal(t, 0.0, b4)

	// Just below the switch tolerance the limits still apply.
	b1, b2, b4 = gfk.FlowCoefficientsForTest(1e-12, gfk.DefaultEps)
	assert.Equal(t, 1.0, b1)
	assert.Equal(t, 0.0, b2)
	assert.Equal(t, 0.0, b4)

	// θ=π/2: sin(2θ)=0, cos(2θ)=−1.
	b1, b2, b4 = gfk.FlowCoefficientsForTest(math.Pi/2, gfk.DefaultEps)
	assert.InDelta(t, 0.5, b1, angleTol)
	assert.InDelta(t, -1/math.Pi, b2, angleTol)
	assert.InDelta(t, 0.5, b4, angleTol)
}

// TestFlowCoefficients_Continuity checks the eps-floored quotient agrees
// with the exact limit as θ crosses the switch tolerance.
func TestFlowCoefficients_Continuity(t *testing.T) {
	b1, b2, b4 := gfk.FlowCoefficientsForTest(1e-9, gfk.DefaultEps)
	assert.InDelta(t, 1.0, b1, 1e-12)
	assert.InDelta(t, 0.0, b2, 1e-9)
	assert.InDelta(t, 0.0, b4, 1e-12)
}

// TestAssembleKernel_Symmetric verifies symmetry for generic orthogonal
// factors and non-trivial angles.
func TestAssembleKernel_Symmetric(t *testing.T) {
	theta := []float64{0.3, 0.7}
	v1 := rotation2(0.4)
	v2 := rotation2(-1.1)
	psFull := identity(4)

	k := gfk.AssembleKernelForTest(theta, v1, v2, psFull, gfk.DefaultEps)

	r, c := k.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 4, c)
	assert.Less(t, maxAsymmetry(k), symTol, "kernel must be symmetric")
}

// TestAssembleKernel_PositiveSemiDefinite checks the eigen-spectrum of the
// assembled kernel is non-negative for angles in [0, π/2].
func TestAssembleKernel_PositiveSemiDefinite(t *testing.T) {
	theta := []float64{0.2, 1.1}
	v1 := rotation2(0.9)
	v2 := rotation2(0.25)
	psFull := identity(4)

	k := gfk.AssembleKernelForTest(theta, v1, v2, psFull, gfk.DefaultEps)

	sym := mat.NewSymDense(4, nil)
	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			sym.SetSym(i, j, 0.5*(k.At(i, j)+k.At(j, i)))
		}
	}
	var es mat.EigenSym
	require.True(t, es.Factorize(sym, false), "eigen decomposition must converge")
	for _, v := range es.Values(nil) {
		assert.GreaterOrEqual(t, v, -symTol, "kernel must be positive semi-definite")
	}
}

// TestAssembleKernel_ZeroAngles verifies the θ=0 reduction: the kernel
// becomes the projector onto the source components.
func TestAssembleKernel_ZeroAngles(t *testing.T) {
	theta := []float64{0, 0}
	v1 := identity(2)
	v2 := identity(2)
	psFull := identity(4)

	k := gfk.AssembleKernelForTest(theta, v1, v2, psFull, gfk.DefaultEps)

	// Expect diag(1,1,0,0): Ps·Psᵀ for Ps = the first two columns of I.
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j && i < 2 {
				want = 1.0
			}
			assert.InDelta(t, want, k.At(i, j), symTol, "K(%d,%d)", i, j)
		}
	}
}

// TestPrincipalAngles_KnownGeometry builds a target subspace sharing one
// direction with the source block and tilting the other by a known angle.
func TestPrincipalAngles_KnownGeometry(t *testing.T) {
	const tilt = 0.6
	psFull := identity(4)
	// Columns: (cos tilt)e1 + (sin tilt)e3, and e2.
	pt := mat.NewDense(4, 2, []float64{
		math.Cos(tilt), 0,
		0, 1,
		math.Sin(tilt), 0,
		0, 0,
	})

	theta, v1, v2, err := gfk.PrincipalAnglesForTest(psFull, pt)
	require.NoError(t, err)
	require.Len(t, theta, 2)

	sorted := append([]float64(nil), theta...)
	sort.Float64s(sorted)
	assert.InDelta(t, 0, sorted[0], angleTol, "shared direction has zero angle")
	assert.InDelta(t, tilt, sorted[1], angleTol, "tilted direction recovers the tilt angle")

	// Orthogonality of the returned factors.
	var g mat.Dense
	g.Mul(v1.T(), v1)
	assert.InDelta(t, 1, g.At(0, 0), angleTol)
	assert.InDelta(t, 0, g.At(0, 1), angleTol)
	g.Mul(v2.T(), v2)
	assert.InDelta(t, 1, g.At(0, 0), angleTol)
}

// TestPrincipalAngles_CoincidingSubspaces: when the target block equals the
// source block, all angles vanish.
func TestPrincipalAngles_CoincidingSubspaces(t *testing.T) {
	psFull := identity(5)
	pt := mat.NewDense(5, 2, []float64{
		1, 0,
		0, 1,
		0, 0,
		0, 0,
		0, 0,
	})

	theta, _, _, err := gfk.PrincipalAnglesForTest(psFull, pt)
	require.NoError(t, err)
	for i, th := range theta {
		assert.InDelta(t, 0, th, angleTol, "theta[%d]", i)
	}
}
