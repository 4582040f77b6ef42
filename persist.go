// Package gfk: persistence of trained machines.
//
// The on-disk shape is a fixed nested schema — a container holding the two
// per-domain sub-containers (weights, mean, scale each) plus the kernel
// matrix — encoded with encoding/gob over explicit state structs. gob
// preserves float64 bit patterns, so a Save/Load round trip is exact.

package gfk

import (
	"encoding/gob"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gfk/subspace"
)

// denseState is the raw row-major form of one dense matrix.
type denseState struct {
	Rows, Cols int
	Data       []float64
}

// basisState mirrors one per-domain sub-container.
type basisState struct {
	Weights denseState
	Mean    []float64
	Scale   []float64
}

// machineState is the top-level container: two nested machines and K.
type machineState struct {
	SourceMachine basisState
	TargetMachine basisState
	K             denseState
}

// Save writes the machine to w in the fixed nested schema.
func (m *Machine) Save(w io.Writer) error {
	if err := m.ready(); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	state := machineState{
		SourceMachine: encodeBasis(m.source),
		TargetMachine: encodeBasis(m.target),
		K:             encodeDense(m.k),
	}
	if err := gob.NewEncoder(w).Encode(&state); err != nil {
		return fmt.Errorf("Save: encoding machine state: %w", err)
	}
	return nil
}

// Load reads a machine previously written by Save. The decoded shape is
// validated before any part of it is used: the kernel must be square and
// its size must match both bases' feature dimensionality, the per-domain
// factors must reconstruct into valid orthonormal bases. Any violation is
// ErrCorruptState; nothing is repaired.
func Load(r io.Reader) (*Machine, error) {
	var state machineState
	if err := gob.NewDecoder(r).Decode(&state); err != nil {
		return nil, fmt.Errorf("Load: decoding machine state: %v: %w", err, ErrCorruptState)
	}

	source, err := decodeBasis(state.SourceMachine, "source_machine")
	if err != nil {
		return nil, err
	}
	target, err := decodeBasis(state.TargetMachine, "target_machine")
	if err != nil {
		return nil, err
	}

	k, err := decodeDense(state.K)
	if err != nil {
		return nil, fmt.Errorf("Load: K: %v: %w", err, ErrCorruptState)
	}
	kr, kc := k.Dims()
	if kr != kc {
		return nil, fmt.Errorf("Load: K is %dx%d, want square: %w", kr, kc, ErrCorruptState)
	}
	if kr != source.Features() || kr != target.Features() {
		return nil, fmt.Errorf("Load: K is %dx%d but bases describe %d/%d features: %w",
			kr, kc, source.Features(), target.Features(), ErrCorruptState)
	}

	return &Machine{source: source, target: target, k: k}, nil
}

func encodeDense(d *mat.Dense) denseState {
	r, c := d.Dims()
	out := denseState{Rows: r, Cols: c, Data: make([]float64, 0, r*c)}
	for i := 0; i < r; i++ {
		out.Data = append(out.Data, d.RawRowView(i)...)
	}
	return out
}

func decodeDense(s denseState) (*mat.Dense, error) {
	if s.Rows < 1 || s.Cols < 1 {
		return nil, fmt.Errorf("empty %dx%d matrix", s.Rows, s.Cols)
	}
	if len(s.Data) != s.Rows*s.Cols {
		return nil, fmt.Errorf("%dx%d matrix carries %d values", s.Rows, s.Cols, len(s.Data))
	}
	return mat.NewDense(s.Rows, s.Cols, s.Data), nil
}

func encodeBasis(b *subspace.Basis) basisState {
	w, ok := b.Weights().(*mat.Dense)
	if !ok {
		// Basis always stores a Dense; copy defensively if that changes.
		w = mat.DenseCopyOf(b.Weights())
	}
	return basisState{Weights: encodeDense(w), Mean: b.Mean(), Scale: b.Scale()}
}

func decodeBasis(s basisState, name string) (*subspace.Basis, error) {
	w, err := decodeDense(s.Weights)
	if err != nil {
		return nil, fmt.Errorf("Load: %s weights: %v: %w", name, err, ErrCorruptState)
	}
	b, err := subspace.NewBasis(w, s.Mean, s.Scale)
	if err != nil {
		return nil, fmt.Errorf("Load: %s: %v: %w", name, err, ErrCorruptState)
	}
	return b, nil
}
