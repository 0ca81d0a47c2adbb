package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"QNNLogParser/pkg/graphing"
)

// NewGraphCmd creates the graph subcommand.
func NewGraphCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Aliases: []string{"g"},
		Use:     "graph <detail-table>",
		Short:   "Render duration charts from a detail table",
		Long: `Render per-unit duration charts from a previously written detail table.

Example:
  qnnlp graph run_details.csv
  qnnlp graph -o charts.html run_details.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				base := strings.TrimSuffix(input, filepath.Ext(input))
				output = base + "_graphs.html"
			}
			if err := graphing.GenerateFromDetail(input, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Charts written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "chart output path (default: <input>_graphs.html)")
	return cmd
}
