// Package kernel implements the dense pre-activation compute kernel.
//
// This is the hot loop of the forward pass. Weights are stored
// input-feature-major: weights[i][j] connects input feature i to output
// neuron j. Output neurons are independent of each other, so the j dimension
// is the parallelization seam; a future vectorized or accelerated
// implementation slots in behind the same contract.
package kernel

import (
	"errors"
	"fmt"

	"github.com/nrx-ml/nrx/internal/parallel"
)

// ErrShapeMismatch is returned when vector or matrix dimensions disagree.
// Concrete failures are reported as a *ShapeError wrapping this sentinel.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeError describes a dimension mismatch between two values that must agree.
type ShapeError struct {
	Op   string // Operation or value being checked (e.g. "input", "bias").
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: %s: expected length %d, got %d", e.Op, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error { return ErrShapeMismatch }

// Mismatch builds a *ShapeError. Shared by the codec and runtime so every
// dimension failure matches ErrShapeMismatch under errors.Is.
func Mismatch(op string, want, got int) error {
	return &ShapeError{Op: op, Want: want, Got: got}
}

// Threshold above which Forward fans the per-neuron loop out across CPUs.
// Each output slot is written by exactly one goroutine.
const parallelWidth = 256

// Forward computes the pre-activation vector of one dense layer:
//
//	z[j] = biases[j] + Σ_i input[i] * weights[i][j]
//
// Constraints: len(input) == len(weights) (fan-in) and
// len(biases) == len(weights[i]) for every row (fan-out). Any violation
// returns a *ShapeError; the inputs are never modified.
func Forward(input []float64, weights [][]float64, biases []float64) ([]float64, error) {
	fanIn := len(weights)
	if len(input) != fanIn {
		return nil, Mismatch("input", fanIn, len(input))
	}
	fanOut := len(biases)
	for i, row := range weights {
		if len(row) != fanOut {
			return nil, Mismatch(fmt.Sprintf("weights row %d", i), fanOut, len(row))
		}
	}

	z := make([]float64, fanOut)
	cfg := parallel.Sequential()
	if fanOut >= parallelWidth {
		cfg = parallel.DefaultConfig()
	}
	parallel.For(fanOut, func(j int) {
		sum := biases[j]
		for i, x := range input {
			sum += x * weights[i][j]
		}
		z[j] = sum
	}, cfg)

	return z, nil
}
