package subspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gfk/subspace"
)

// identityBasis builds a D×d basis of standard unit columns with the given
// normalization, for hand-checkable projections.
func identityBasis(t *testing.T, features, dim int, mean, scale []float64) *subspace.Basis {
	t.Helper()
	w := mat.NewDense(features, dim, nil)
	for i := 0; i < dim; i++ {
		w.Set(i, i, 1)
	}
	b, err := subspace.NewBasis(w, mean, scale)
	require.NoError(t, err)
	return b
}

// TestBasis_Normalize checks (x − mean) / scale element-wise.
func TestBasis_Normalize(t *testing.T) {
	b := identityBasis(t, 3, 2, []float64{1, 2, 3}, []float64{2, 4, 8})

	out, err := b.Normalize([]float64{3, 10, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 0}, out)

	_, err = b.Normalize([]float64{1, 2}, nil)
	assert.ErrorIs(t, err, subspace.ErrDegenerateInput, "length mismatch must fail")
}

// TestBasis_Project checks normalization followed by Wᵀ·x.
func TestBasis_Project(t *testing.T) {
	b := identityBasis(t, 3, 2, []float64{0, 0, 0}, []float64{1, 1, 1})

	out, err := b.Project([]float64{5, 7, 9}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7}, out, "identity columns pick the first two coordinates")
}

// TestNewBasis_Rejections covers shape, positivity and orthonormality.
func TestNewBasis_Rejections(t *testing.T) {
	w := mat.NewDense(3, 2, []float64{1, 0, 0, 1, 0, 0})

	_, err := subspace.NewBasis(w, []float64{0, 0}, []float64{1, 1, 1})
	assert.ErrorIs(t, err, subspace.ErrDegenerateInput, "short mean must fail")

	_, err = subspace.NewBasis(w, []float64{0, 0, 0}, []float64{1, 0, 1})
	assert.ErrorIs(t, err, subspace.ErrDegenerateInput, "zero scale must fail")

	skewed := mat.NewDense(3, 2, []float64{1, 1, 0, 1, 0, 0})
	_, err = subspace.NewBasis(skewed, []float64{0, 0, 0}, []float64{1, 1, 1})
	assert.ErrorIs(t, err, subspace.ErrNumericalFailure, "non-orthonormal columns must fail")

	wide := mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0})
	_, err = subspace.NewBasis(wide, []float64{0, 0}, []float64{1, 1})
	assert.ErrorIs(t, err, subspace.ErrDegenerateInput, "more columns than features must fail")
}

// TestBasis_AccessorsCopy ensures Mean/Scale hand out copies, keeping the
// trained basis immutable.
func TestBasis_AccessorsCopy(t *testing.T) {
	b := identityBasis(t, 2, 1, []float64{1, 2}, []float64{3, 4})

	m := b.Mean()
	m[0] = 99
	assert.Equal(t, []float64{1, 2}, b.Mean(), "mutating the returned slice must not touch the basis")

	s := b.Scale()
	s[1] = 99
	assert.Equal(t, []float64{3, 4}, b.Scale())
}
