package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"QNNLogParser/pkg/logging"
	"QNNLogParser/pkg/profparse"
)

// NewProfileCmd creates the profile subcommand.
func NewProfileCmd() *cobra.Command {
	var (
		output     string
		noDerived  bool
		rawDetails bool
	)

	cmd := &cobra.Command{
		Aliases: []string{"p"},
		Use:     "profile <profiling-file>",
		Short:   "Parse a binary QNN profiling file",
		Long: `Scan a binary QNN profiling output file for known metric markers and
report timing/counter values plus derived metrics.

Example:
  qnnlp profile device/qnn-profiling-data_0.log
  qnnlp profile -o report.csv device/qnn-profiling-data_0.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := profparse.ParseFile(args[0])
			if err != nil {
				return err
			}

			if len(result.FailedExtractions) > 0 {
				logging.GetLogger().WithField("count", len(result.FailedExtractions)).
					Warn("Some metric patterns had no extractable value")
			}

			if output == "" {
				profparse.WriteText(os.Stdout, result, !noDerived, rawDetails)
				return nil
			}

			if err := profparse.SaveReport(output, result, !noDerived); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "write the report to a file (format by extension: csv, tsv, jsonl, parquet)")
	flags.BoolVar(&noDerived, "no-derived", false, "skip derived metrics")
	flags.BoolVar(&rawDetails, "raw-details", false, "include raw extraction positions in text output")

	return cmd
}
