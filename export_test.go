// Package gfk: narrow export surface for white-box assertions from the
// external test package. Test-only; never ship logic here.

package gfk

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gfk/subspace"
)

// FlowCoefficientsForTest exposes the closed-form integral coefficients.
func FlowCoefficientsForTest(theta, eps float64) (b1, b2, b4 float64) {
	return flowCoefficients(theta, eps)
}

// PrincipalAnglesForTest runs the GSVD stage and returns its raw output.
func PrincipalAnglesForTest(psFull, pt *mat.Dense) (theta []float64, v1, v2 *mat.Dense, err error) {
	f, err := principalAngles(psFull, pt)
	if err != nil {
		return nil, nil, nil, err
	}
	return f.theta, f.v1, f.v2, nil
}

// AssembleKernelForTest runs the block assembly on explicit factors.
func AssembleKernelForTest(theta []float64, v1, v2, psFull *mat.Dense, eps float64) *mat.Dense {
	return assembleKernel(&angleFactors{theta: theta, v1: v1, v2: v2}, psFull, eps)
}

// NewMachineForTest builds a Machine from explicit parts, bypassing Train.
func NewMachineForTest(source, target *subspace.Basis, k *mat.Dense) *Machine {
	return &Machine{source: source, target: target, k: k}
}
