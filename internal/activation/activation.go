// Package activation provides the activation function registry for the NRX runtime.
//
// Activation names stored in a model container are resolved once, at load time,
// into typed handles; the forward pass never re-parses a name. Each entry carries
// both the forward function and its derivative. The derivative is not used by
// inference but is part of the registry contract for a future training path.
package activation

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknown is returned when an activation name is not registered.
var ErrUnknown = errors.New("unknown activation")

// Func is a scalar activation applied element-wise to a pre-activation value.
type Func func(float64) float64

// VectorFunc is an activation applied to the whole pre-activation vector of a
// layer. Softmax is the only registered vector activation.
type VectorFunc func([]float64) []float64

// Activation is a resolved registry entry.
//
// Exactly one of Forward or VectorForward is non-nil. Scalar activations set
// Forward and Derivative; vector activations set VectorForward and
// VectorDerivative.
type Activation struct {
	Name             string
	Forward          Func
	Derivative       Func
	VectorForward    VectorFunc
	VectorDerivative VectorFunc
}

// Apply computes the activated output for a pre-activation vector z.
// The input is never modified; a new slice is returned.
func (a Activation) Apply(z []float64) []float64 {
	if a.VectorForward != nil {
		return a.VectorForward(z)
	}
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = a.Forward(v)
	}
	return out
}

// registry is the static name → activation table. Entries are fixed at compile
// time; Resolve is the only lookup path.
var registry = map[string]Activation{
	"relu": {
		Name:    "relu",
		Forward: relu,
		Derivative: func(x float64) float64 {
			if x > 0 {
				return 1
			}
			return 0
		},
	},
	"sigmoid": {
		Name:    "sigmoid",
		Forward: sigmoid,
		Derivative: func(x float64) float64 {
			s := sigmoid(x)
			return s * (1 - s)
		},
	},
	"tanh": {
		Name:    "tanh",
		Forward: math.Tanh,
		Derivative: func(x float64) float64 {
			t := math.Tanh(x)
			return 1 - t*t
		},
	},
	"linear": {
		Name:       "linear",
		Forward:    func(x float64) float64 { return x },
		Derivative: func(float64) float64 { return 1 },
	},
	"softmax": {
		Name:             "softmax",
		VectorForward:    Softmax,
		VectorDerivative: softmaxDerivative,
	},
}

// Resolve looks up an activation by name, case-insensitively.
func Resolve(name string) (Activation, error) {
	act, ok := registry[strings.ToLower(name)]
	if !ok {
		return Activation{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return act, nil
}

// Names returns the registered activation names, for error messages and docs.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Softmax converts a vector of logits into a probability distribution.
//
// The maximum logit is subtracted before exponentiating. Without this, inputs
// around 710 overflow float64 and the result is NaN; with it, softmax is exact
// for any finite input and invariant under adding a constant to every logit.
func Softmax(z []float64) []float64 {
	if len(z) == 0 {
		return nil
	}
	maxLogit := z[0]
	for _, v := range z[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	out := make([]float64, len(z))
	var sum float64
	for i, v := range z {
		e := math.Exp(v - maxLogit)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// softmaxDerivative returns the diagonal s_i*(1-s_i) of the softmax Jacobian,
// which is what a cross-entropy training path consumes.
func softmaxDerivative(z []float64) []float64 {
	s := Softmax(z)
	for i, v := range s {
		s[i] = v * (1 - v)
	}
	return s
}
