package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nrx-ml/nrx/runtime"
)

// NewDescribeCmd builds the describe command: load a container and print its
// architecture and provenance.
func NewDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe MODEL",
		Short: "Show the architecture of a model container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := runtime.New()
			if err := rt.LoadFile(args[0]); err != nil {
				return err
			}
			summary, err := rt.Describe()
			if err != nil {
				return err
			}
			slog.Debug("model loaded", "path", args[0], "layers", summary.LayerCount)

			fmt.Printf("task:           %s\n", summary.Meta.Task)
			fmt.Printf("loss function:  %s\n", summary.Meta.LossFunction)
			fmt.Printf("optimizer:      %s (lr=%g, epochs=%d, batch=%d)\n",
				summary.Meta.Optimizer, summary.Meta.LearningRate, summary.Meta.Epoch, summary.Meta.BatchSize)
			fmt.Printf("input size:     %d\n", summary.InputSize)
			fmt.Printf("output size:    %d\n", summary.OutputSize)
			fmt.Printf("parameters:     %d\n\n", summary.ParamCount)

			data := make([][]string, 0, len(summary.Layers))
			for i, l := range summary.Layers {
				data = append(data, []string{
					strconv.Itoa(i), l.Name, strconv.Itoa(l.OutputWidth), l.Activation,
				})
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"#", "LAYER", "WIDTH", "ACTIVATION"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}
}
