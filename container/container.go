// Package container exposes the NRX2 model container codec: the versioned
// binary format holding a compressed, self-describing model payload.
//
// Most callers want the runtime package instead; this package is for tools
// that read, write, or inspect containers directly.
package container

import (
	"github.com/nrx-ml/nrx/internal/container"
)

// Model is a fully validated, immutable model decoded from a container.
type Model = container.Model

// Metadata carries a model's training provenance.
type Metadata = container.Metadata

// Payload is the JSON object carried by a container.
type Payload = container.Payload

// LayerSpec is one entry of the payload's layers array.
type LayerSpec = container.LayerSpec

// Wire-format constants.
const (
	Magic   = container.Magic
	Version = container.Version
)

// Layer tags used in the payload's layers array.
const (
	TagDense   = container.TagDense
	TagInput   = container.TagInput
	TagFlatten = container.TagFlatten
)

// Decode failure sentinels, one per stage of the decode state machine.
var (
	ErrInvalidFormat      = container.ErrInvalidFormat
	ErrUnsupportedVersion = container.ErrUnsupportedVersion
	ErrCorruptPayload     = container.ErrCorruptPayload
	ErrMalformedMetadata  = container.ErrMalformedMetadata
	ErrUnknownLayerType   = container.ErrUnknownLayerType
)

// Decode parses one NRX2 container into a validated Model.
func Decode(data []byte) (*Model, error) {
	return container.Decode(data)
}

// Encode serializes a payload into NRX2 wire format after validating it.
func Encode(p *Payload) ([]byte, error) {
	return container.Encode(p)
}
