package container

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/flate"
)

// Encode serializes a payload into NRX2 wire format: magic, version byte,
// DEFLATE-compressed JSON. The payload is validated by reconstruction first,
// so Encode never writes a container that Decode would reject.
func Encode(p *Payload) ([]byte, error) {
	if _, err := Build(p); err != nil {
		return nil, err
	}
	return EncodeRaw(p)
}

// EncodeRaw serializes a payload without validating it. Used by tests that
// need to produce deliberately broken containers.
func EncodeRaw(p *Payload) ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(Version)

	zw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("init compressor: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("flush compressor: %w", err)
	}

	return buf.Bytes(), nil
}
