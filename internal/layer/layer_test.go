package layer

import (
	"errors"
	"math"
	"testing"

	"github.com/nrx-ml/nrx/internal/activation"
	"github.com/nrx-ml/nrx/internal/kernel"
)

func TestNewDenseResolvesActivation(t *testing.T) {
	l, err := NewDense("ReLU", 4)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}
	if l.Kind != Dense || l.Size != 4 || l.Activation.Name != "relu" {
		t.Errorf("unexpected layer: %+v", l)
	}
}

func TestNewDenseUnknownActivation(t *testing.T) {
	_, err := NewDense("gelu6", 4)
	if !errors.Is(err, activation.ErrUnknown) {
		t.Fatalf("NewDense error = %v, want activation.ErrUnknown", err)
	}
}

// TestFeedforwardRelu verifies both return values: activated output and the
// raw pre-activation vector.
func TestFeedforwardRelu(t *testing.T) {
	l, err := NewDense("relu", 2)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}

	weights := [][]float64{{1, -1}, {2, -2}}
	biases := []float64{0.5, 0.5}

	// z = [1*1+2*2+0.5, 1*-1+2*-2+0.5] = [5.5, -4.5]
	out, z, err := l.Feedforward([]float64{1, 2}, weights, biases)
	if err != nil {
		t.Fatalf("Feedforward failed: %v", err)
	}
	if z[0] != 5.5 || z[1] != -4.5 {
		t.Errorf("pre-activation = %v, want [5.5 -4.5]", z)
	}
	if out[0] != 5.5 || out[1] != 0 {
		t.Errorf("output = %v, want [5.5 0]", out)
	}
}

// TestFeedforwardSoftmax verifies the activation is applied over the whole
// vector, not element-wise.
func TestFeedforwardSoftmax(t *testing.T) {
	l, err := NewDense("softmax", 3)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}

	weights := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	biases := []float64{0, 0, 0}

	out, z, err := l.Feedforward([]float64{1, 2, 3}, weights, biases)
	if err != nil {
		t.Fatalf("Feedforward failed: %v", err)
	}
	if z[0] != 1 || z[1] != 2 || z[2] != 3 {
		t.Errorf("pre-activation = %v, want [1 2 3]", z)
	}

	var sum float64
	for _, v := range out {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("softmax output sums to %v, want 1", sum)
	}
	if !(out[2] > out[1] && out[1] > out[0]) {
		t.Errorf("softmax output not monotone in logits: %v", out)
	}
}

func TestFeedforwardShapeMismatch(t *testing.T) {
	l, err := NewDense("linear", 2)
	if err != nil {
		t.Fatalf("NewDense failed: %v", err)
	}
	_, _, err = l.Feedforward([]float64{1}, [][]float64{{1, 0}, {0, 1}}, []float64{0, 0})
	if !errors.Is(err, kernel.ErrShapeMismatch) {
		t.Fatalf("Feedforward error = %v, want ErrShapeMismatch", err)
	}
}

// TestStructuralLayersHaveNoFeedforward: Input and Flatten are structural and
// must refuse dispatch.
func TestStructuralLayersHaveNoFeedforward(t *testing.T) {
	for _, l := range []Layer{NewInput(3), NewFlatten()} {
		if _, _, err := l.Feedforward([]float64{1, 2, 3}, nil, nil); err == nil {
			t.Errorf("%s.Feedforward succeeded, want error", l.Kind)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Input, "input_layer"},
		{Dense, "connected_layer"},
		{Flatten, "flatten_layer"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
