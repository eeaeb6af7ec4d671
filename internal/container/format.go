// Package container implements the NRX2 model container codec.
//
// An NRX2 file is a 4-byte ASCII magic, a single version byte, and a
// DEFLATE-compressed UTF-8 JSON payload describing the architecture, training
// provenance, and learned parameters of one model:
//
//	offset 0: "NRX2"
//	offset 4: 0x02
//	offset 5: flate(JSON payload)
//
// Decode validates eagerly: format, version, decompression, metadata keys,
// layer tags, activation names, and the full shape chain are all checked
// before a Model is returned. A model that decodes successfully will not fail
// a forward pass on its own shapes.
package container

import "github.com/nrx-ml/nrx/internal/layer"

// Format constants.
const (
	Magic      = "NRX2"
	Version    = 0x02
	headerSize = 5 // magic + version byte
	maxPayload = 1 << 30
)

// Layer tags used in the payload's layers array.
const (
	TagDense   = "connected_layer"
	TagInput   = "input_layer"
	TagFlatten = "flatten_layer"
)

// LayerSpec is one entry of the payload's layers array.
type LayerSpec struct {
	LayerName              string `json:"layer_name"`
	ActivationFunctionName string `json:"activation_function_name,omitempty"`
	LayerSize              int    `json:"layer_size,omitempty"`
}

// Payload is the JSON object carried by a container. All keys are required.
type Payload struct {
	Task         string        `json:"task"`
	LossFunction string        `json:"loss_function"`
	Epoch        int           `json:"epoch"`
	BatchSize    int           `json:"batch_size"`
	Optimizer    string        `json:"optimizer"`
	LearningRate float64       `json:"learning_rate"`
	InputSize    int           `json:"input_size"`
	OutputSize   int           `json:"output_size"`
	NumLayers    int           `json:"num_layers"`
	Weights      [][][]float64 `json:"weights"`
	Biases       [][]float64   `json:"biases"`
	Layers       []LayerSpec   `json:"layers"`
}

// requiredKeys are the payload keys whose absence is MalformedMetadata.
var requiredKeys = []string{
	"task", "loss_function", "epoch", "batch_size", "optimizer",
	"learning_rate", "input_size", "output_size", "num_layers",
	"weights", "biases", "layers",
}

// Metadata carries training provenance. Display-only; inference never reads it.
type Metadata struct {
	Task         string
	LossFunction string
	Optimizer    string
	Epoch        int
	BatchSize    int
	LearningRate float64
}

// Model is a fully validated, immutable model.
//
// Layers holds the parameter-bearing sequence (Dense and Flatten), aligned
// positionally with Weights and Biases. The leading Input descriptor carries
// no parameters and is recorded separately as Input; it must never be indexed
// against the parameter arrays. Weights are input-feature-major:
// Weights[i][f][n] connects input feature f to neuron n of layer i.
type Model struct {
	Meta       Metadata
	InputSize  int
	OutputSize int
	Input      layer.Layer
	HasInput   bool
	Layers     []layer.Layer
	Weights    [][][]float64
	Biases     [][]float64
}

// ParamCount returns the total number of learnable parameters.
func (m *Model) ParamCount() int {
	var n int
	for _, w := range m.Weights {
		for _, row := range w {
			n += len(row)
		}
	}
	for _, b := range m.Biases {
		n += len(b)
	}
	return n
}
