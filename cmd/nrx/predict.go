package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nrx-ml/nrx/runtime"
)

// NewPredictCmd builds the predict command: run a batch of input vectors
// through a model and print the prediction batch as JSON.
func NewPredictCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "predict MODEL",
		Short: "Run forward propagation over a batch of input vectors",
		Long: `Run forward propagation over a batch of input vectors.

The input file (or stdin) holds a JSON array of numeric vectors, one per
sample; each vector's length must equal the model's input size. Output is a
JSON array of prediction vectors in the same order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtime.New()
			if err := rt.LoadFile(args[0]); err != nil {
				return err
			}

			batch, err := readBatch(inputPath)
			if err != nil {
				return err
			}
			slog.Debug("running inference", "model", args[0], "samples", len(batch))

			outputs, err := rt.PredictContext(cmd.Context(), batch)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			return enc.Encode(outputs)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "Input batch JSON file (- for stdin)")
	return cmd
}

func readBatch(path string) ([][]float64, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input batch: %w", err)
	}

	var batch [][]float64
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("parse input batch: %w", err)
	}
	return batch, nil
}
