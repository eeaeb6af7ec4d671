// Package runtime executes forward propagation over a loaded NRX model.
//
// A Runtime holds at most one fully validated Model. Load replaces the model
// atomically: on any decode failure the previously loaded model stays usable.
// Predict is read-only over parameters, so concurrent Predict calls against
// one loaded model are safe; replacing the model while a Predict is in flight
// must be serialized by the caller.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/nrx-ml/nrx/internal/container"
	"github.com/nrx-ml/nrx/internal/kernel"
	"github.com/nrx-ml/nrx/internal/layer"
	"github.com/nrx-ml/nrx/internal/parallel"
)

var (
	// ErrNotLoaded is returned by Predict and Describe before a successful Load.
	ErrNotLoaded = errors.New("no model loaded")
	// ErrEmptyInput is returned by Predict for an empty batch.
	ErrEmptyInput = errors.New("empty input batch")
)

// Runtime owns one loaded model and runs inference over it.
type Runtime struct {
	model *container.Model
}

// New returns a Runtime with no model loaded.
func New() *Runtime {
	return &Runtime{}
}

// Load decodes an NRX2 container and installs the resulting model. On failure
// the previous model, if any, is left untouched and the decode error is
// returned unchanged.
func (r *Runtime) Load(data []byte) error {
	model, err := container.Decode(data)
	if err != nil {
		return err
	}
	r.model = model
	return nil
}

// LoadFile reads and loads a container from disk.
func (r *Runtime) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read model file: %w", err)
	}
	return r.Load(data)
}

// Loaded reports whether a model is present.
func (r *Runtime) Loaded() bool {
	return r.model != nil
}

// Model returns the loaded model, or nil.
func (r *Runtime) Model() *container.Model {
	return r.model
}

// Predict runs forward propagation over a batch of input vectors and returns
// one output vector per sample, in order. The batch must be non-empty and
// every sample must have length InputSize. Deterministic for a fixed model.
func (r *Runtime) Predict(batch [][]float64) ([][]float64, error) {
	m, err := r.checkBatch(batch)
	if err != nil {
		return nil, err
	}

	outputs := make([][]float64, len(batch))
	for k, sample := range batch {
		out, err := forward(m, sample)
		if err != nil {
			return nil, err
		}
		outputs[k] = out
	}
	return outputs, nil
}

// PredictContext is Predict with per-sample parallelism. Samples are
// independent and parameters are read-only, so they fan out across a bounded
// worker group; results are identical to Predict. The context cancels
// remaining samples.
func (r *Runtime) PredictContext(ctx context.Context, batch [][]float64) ([][]float64, error) {
	m, err := r.checkBatch(batch)
	if err != nil {
		return nil, err
	}

	outputs := make([][]float64, len(batch))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel.DefaultConfig().NumWorkers)
	for k, sample := range batch {
		k, sample := k, sample
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := forward(m, sample)
			if err != nil {
				return err
			}
			outputs[k] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// checkBatch validates the Predict preconditions and returns the model.
func (r *Runtime) checkBatch(batch [][]float64) (*container.Model, error) {
	m := r.model
	if m == nil {
		return nil, ErrNotLoaded
	}
	if len(batch) == 0 {
		return nil, ErrEmptyInput
	}
	for k, sample := range batch {
		if len(sample) != m.InputSize {
			return nil, kernel.Mismatch(fmt.Sprintf("input vector %d", k), m.InputSize, len(sample))
		}
	}
	return m, nil
}

// forward folds one sample through the parameter-bearing layer sequence,
// threading each layer's output into the next layer's input. Flatten layers
// pass the vector through unchanged; they are structural and are never
// dispatched through Feedforward.
func forward(m *container.Model, input []float64) ([]float64, error) {
	vec := input
	for i, l := range m.Layers {
		switch l.Kind {
		case layer.Dense:
			out, _, err := l.Feedforward(vec, m.Weights[i], m.Biases[i])
			if err != nil {
				return nil, fmt.Errorf("layer %d: %w", i, err)
			}
			vec = out
		case layer.Flatten:
			// Identity over vector input.
		default:
			return nil, fmt.Errorf("layer %d: unexpected %s in executable sequence", i, l.Kind)
		}
	}
	return vec, nil
}

// LayerSummary describes one parameter-bearing layer for Describe.
type LayerSummary struct {
	Name        string
	OutputWidth int
	Activation  string
}

// Summary is the architecture report returned by Describe.
type Summary struct {
	Meta       container.Metadata
	InputSize  int
	OutputSize int
	LayerCount int
	Layers     []LayerSummary
	ParamCount int
}

// Describe returns a summary of the loaded model: sizes, per-layer shape and
// activation, training provenance, and the total learnable parameter count.
func (r *Runtime) Describe() (Summary, error) {
	m := r.model
	if m == nil {
		return Summary{}, ErrNotLoaded
	}

	s := Summary{
		Meta:       m.Meta,
		InputSize:  m.InputSize,
		OutputSize: m.OutputSize,
		LayerCount: len(m.Layers),
		ParamCount: m.ParamCount(),
	}
	width := m.InputSize
	for _, l := range m.Layers {
		ls := LayerSummary{Name: l.Kind.String()}
		if l.Kind == layer.Dense {
			width = l.Size
			ls.Activation = l.Activation.Name
		}
		ls.OutputWidth = width
		s.Layers = append(s.Layers, ls)
	}
	return s, nil
}
