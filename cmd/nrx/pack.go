package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nrx-ml/nrx/container"
)

// NewPackCmd builds the pack command: wrap a raw JSON model payload into an
// NRX2 container. The payload is validated before anything is written.
func NewPackCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "pack PAYLOAD",
		Short: "Pack a JSON model payload into an NRX2 container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			var payload container.Payload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("parse payload: %w", err)
			}

			data, err := container.Encode(&payload)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write container: %w", err)
			}

			slog.Debug("container written", "path", outPath, "bytes", len(data))
			fmt.Printf("wrote %s (%d bytes)\n", outPath, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "model.nrx", "Output container path")
	return cmd
}
