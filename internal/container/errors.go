package container

import "errors"

// Decode failures, one sentinel per stage of the state machine. Each stage is
// terminal: the first failure is returned and nothing after it runs.
var (
	ErrInvalidFormat      = errors.New("invalid container format")
	ErrUnsupportedVersion = errors.New("unsupported container version")
	ErrCorruptPayload     = errors.New("corrupt container payload")
	ErrMalformedMetadata  = errors.New("malformed container metadata")
	ErrUnknownLayerType   = errors.New("unknown layer type")
)
