// Package runtime exposes the NRX inference runtime.
//
// This package wraps the internal runtime implementation and exports a clean
// public API for loading NRX2 model containers and running batched forward
// propagation.
//
// Example usage:
//
//	rt := runtime.New()
//	if err := rt.LoadFile("model.nrx"); err != nil {
//	    log.Fatal(err)
//	}
//
//	outputs, err := rt.Predict([][]float64{{1, 2, 3}})
//	if err != nil {
//	    log.Fatal(err)
//	}
package runtime

import (
	"github.com/nrx-ml/nrx/internal/runtime"
)

// Runtime owns one loaded model and runs inference over it.
type Runtime = runtime.Runtime

// Summary is the architecture report returned by Runtime.Describe.
type Summary = runtime.Summary

// LayerSummary describes one parameter-bearing layer in a Summary.
type LayerSummary = runtime.LayerSummary

// Predict precondition failures.
var (
	ErrNotLoaded  = runtime.ErrNotLoaded
	ErrEmptyInput = runtime.ErrEmptyInput
)

// New returns a Runtime with no model loaded.
func New() *Runtime {
	return runtime.New()
}
