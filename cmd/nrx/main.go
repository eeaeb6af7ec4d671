// Package main provides the nrx CLI for inspecting and running NRX2 model
// containers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.1.0"

func main() {
	cobra.CheckErr(NewCLI().ExecuteContext(context.Background()))
}

// NewCLI builds the nrx command tree.
func NewCLI() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "nrx",
		Short: "NRX model container runtime",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nrx %s\n", version)
		},
	}

	rootCmd.AddCommand(
		NewDescribeCmd(),
		NewPredictCmd(),
		NewPackCmd(),
		versionCmd,
	)

	return rootCmd
}
