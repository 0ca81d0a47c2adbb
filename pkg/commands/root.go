// Package commands wires the qnnlp command surface.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"QNNLogParser/pkg/logging"
)

var logLevel string

// NewRootCmd creates the qnnlp root command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qnnlp",
		Short: "Extract metrics from QNN on-device inference runs",
		Long: `qnnlp turns QNN SDK inference artifacts into structured metrics:
timestamped qnn-net-run logs into summary/detail tables, and binary
profiling files into timing reports.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.SetLogLevel(logLevel)
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (trace, debug, info, warn, error)")

	root.AddCommand(NewExtractCmd())
	root.AddCommand(NewProfileCmd())
	root.AddCommand(NewGraphCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
