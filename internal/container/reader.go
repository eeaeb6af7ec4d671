package container

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/nrx-ml/nrx/internal/layer"
)

// Decode parses one NRX2 container into a validated Model.
//
// The stages run in order (magic, version, decompression, metadata decode,
// layer reconstruction, shape cross-validation) and the first failure is
// terminal. No partially decoded model is ever returned.
func Decode(data []byte) (*Model, error) {
	payload, err := DecodePayload(data)
	if err != nil {
		return nil, err
	}
	return Build(payload)
}

// DecodePayload runs the wire-format stages only: it validates the envelope
// and returns the raw decoded payload without reconstructing layers.
func DecodePayload(data []byte) (*Payload, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		got := data
		if len(got) > len(Magic) {
			got = got[:len(Magic)]
		}
		return nil, fmt.Errorf("%w: bad magic %q, expected %q", ErrInvalidFormat, got, Magic)
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidFormat)
	}
	if v := data[4]; v != Version {
		return nil, fmt.Errorf("%w: got %#02x, expected %#02x", ErrUnsupportedVersion, v, Version)
	}

	zr := flate.NewReader(bytes.NewReader(data[headerSize:]))
	defer zr.Close()
	raw, err := io.ReadAll(io.LimitReader(zr, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}

	return decodeMetadata(raw)
}

// decodeMetadata decodes the decompressed JSON payload, requiring every key
// and reporting the offending key on a type mismatch.
func decodeMetadata(raw []byte) (*Payload, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrMalformedMetadata, key)
		}
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: key %q: expected %s, got %s",
				ErrMalformedMetadata, typeErr.Field, typeErr.Type, typeErr.Value)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	return &p, nil
}

// Build reconstructs the layer sequence from a payload and cross-validates
// the result.
//
// The serialized layers array may include the leading input_layer descriptor;
// it carries no parameters, so it is split off into Model.Input and the
// returned Model.Layers holds only the parameter-bearing sequence, aligned
// 1:1 with Weights and Biases.
func Build(p *Payload) (*Model, error) {
	m := &Model{
		Meta: Metadata{
			Task:         p.Task,
			LossFunction: p.LossFunction,
			Optimizer:    p.Optimizer,
			Epoch:        p.Epoch,
			BatchSize:    p.BatchSize,
			LearningRate: p.LearningRate,
		},
		InputSize:  p.InputSize,
		OutputSize: p.OutputSize,
		Weights:    p.Weights,
		Biases:     p.Biases,
	}

	for _, spec := range p.Layers {
		switch spec.LayerName {
		case TagDense:
			l, err := layer.NewDense(spec.ActivationFunctionName, spec.LayerSize)
			if err != nil {
				return nil, err
			}
			m.Layers = append(m.Layers, l)
		case TagInput:
			if m.HasInput {
				return nil, fmt.Errorf("%w: multiple input layers", ErrMalformedMetadata)
			}
			m.Input = layer.NewInput(spec.LayerSize)
			m.HasInput = true
		case TagFlatten:
			m.Layers = append(m.Layers, layer.NewFlatten())
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownLayerType, spec.LayerName)
		}
	}

	if err := validate(m, p); err != nil {
		return nil, err
	}
	return m, nil
}
