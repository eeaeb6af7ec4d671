// Package layer defines the layer descriptors reconstructed from a model
// container and the dense feedforward step.
//
// The set of layer kinds is closed: Input, Dense, Flatten. Dispatch is an
// explicit switch over Kind rather than an interface, so a missing case is a
// compile-visible gap instead of a silent dynamic-dispatch hole. Input and
// Flatten are structural: they carry no parameters and have no feedforward.
package layer

import (
	"fmt"

	"github.com/nrx-ml/nrx/internal/activation"
	"github.com/nrx-ml/nrx/internal/kernel"
)

// Kind identifies a layer variant.
type Kind int

const (
	// Input declares the expected input vector length; never executed.
	Input Kind = iota
	// Dense is a fully connected layer with an activation.
	Dense
	// Flatten is an identity reshape marker; never executed.
	Flatten
)

// String returns the container tag for the kind.
func (k Kind) String() string {
	switch k {
	case Input:
		return "input_layer"
	case Dense:
		return "connected_layer"
	case Flatten:
		return "flatten_layer"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Layer is a tagged-variant layer descriptor.
//
// Size is the feature count for Input and the neuron count for Dense; zero
// for Flatten. Activation is resolved from the container's activation name at
// load time and is set only on Dense layers.
type Layer struct {
	Kind       Kind
	Size       int
	Activation activation.Activation
}

// NewInput builds an Input descriptor declaring featureCount input features.
func NewInput(featureCount int) Layer {
	return Layer{Kind: Input, Size: featureCount}
}

// NewDense builds a Dense descriptor with neuronCount neurons and the named
// activation. The name is resolved immediately; an unregistered name fails
// here, at load time, not during a forward pass.
func NewDense(activationName string, neuronCount int) (Layer, error) {
	act, err := activation.Resolve(activationName)
	if err != nil {
		return Layer{}, err
	}
	return Layer{Kind: Dense, Size: neuronCount, Activation: act}, nil
}

// NewFlatten builds a Flatten descriptor.
func NewFlatten() Layer {
	return Layer{Kind: Flatten}
}

// Feedforward runs one dense layer: the dot-product kernel produces the
// pre-activation vector z, then the layer's activation is applied: element-wise
// for scalar activations, over the whole vector for softmax.
//
// Returns (activated output, z). The pre-activation vector is not needed to
// produce predictions but is part of the contract for gradient computation.
// Calling Feedforward on a non-Dense layer is a programming error.
func (l Layer) Feedforward(input []float64, weights [][]float64, biases []float64) ([]float64, []float64, error) {
	if l.Kind != Dense {
		return nil, nil, fmt.Errorf("layer %s has no feedforward", l.Kind)
	}
	z, err := kernel.Forward(input, weights, biases)
	if err != nil {
		return nil, nil, err
	}
	return l.Activation.Apply(z), z, nil
}
