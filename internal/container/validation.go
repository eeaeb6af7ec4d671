package container

import (
	"fmt"

	"github.com/nrx-ml/nrx/internal/kernel"
	"github.com/nrx-ml/nrx/internal/layer"
)

// validate cross-checks a reconstructed model against its payload before it
// is ever handed to a caller. Shape errors surface here, at load time, not as
// a crash somewhere inside a forward pass.
func validate(m *Model, p *Payload) error {
	if m.InputSize <= 0 {
		return fmt.Errorf("%w: input_size must be positive, got %d", ErrMalformedMetadata, m.InputSize)
	}
	if m.OutputSize <= 0 {
		return fmt.Errorf("%w: output_size must be positive, got %d", ErrMalformedMetadata, m.OutputSize)
	}
	if p.NumLayers != len(p.Layers) {
		return kernel.Mismatch("num_layers", p.NumLayers, len(p.Layers))
	}
	if m.HasInput && m.Input.Size != m.InputSize {
		return kernel.Mismatch("input layer size", m.InputSize, m.Input.Size)
	}

	if len(m.Weights) != len(m.Layers) {
		return kernel.Mismatch("weights count", len(m.Layers), len(m.Weights))
	}
	if len(m.Biases) != len(m.Layers) {
		return kernel.Mismatch("biases count", len(m.Layers), len(m.Biases))
	}

	// Walk the layer chain, threading the running vector width from the
	// declared input size through every layer.
	width := m.InputSize
	for i, l := range m.Layers {
		switch l.Kind {
		case layer.Dense:
			if len(m.Weights[i]) != width {
				return kernel.Mismatch(fmt.Sprintf("layer %d fan-in", i), width, len(m.Weights[i]))
			}
			for f, row := range m.Weights[i] {
				if len(row) != l.Size {
					return kernel.Mismatch(fmt.Sprintf("layer %d weights row %d", i, f), l.Size, len(row))
				}
			}
			if len(m.Biases[i]) != l.Size {
				return kernel.Mismatch(fmt.Sprintf("layer %d biases", i), l.Size, len(m.Biases[i]))
			}
			width = l.Size
		case layer.Flatten:
			// Identity reshape: parameterless, width unchanged.
			if len(m.Weights[i]) != 0 {
				return kernel.Mismatch(fmt.Sprintf("layer %d weights (flatten)", i), 0, len(m.Weights[i]))
			}
			if len(m.Biases[i]) != 0 {
				return kernel.Mismatch(fmt.Sprintf("layer %d biases (flatten)", i), 0, len(m.Biases[i]))
			}
		case layer.Input:
			return fmt.Errorf("%w: input layer inside parameter-bearing sequence", ErrMalformedMetadata)
		}
	}
	if width != m.OutputSize {
		return kernel.Mismatch("output width", m.OutputSize, width)
	}
	return nil
}
