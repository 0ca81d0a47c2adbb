package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"QNNLogParser/pkg/config"
	"QNNLogParser/pkg/database"
	"QNNLogParser/pkg/exporting"
	"QNNLogParser/pkg/graphing"
	"QNNLogParser/pkg/logging"
	"QNNLogParser/pkg/metrics"
	"QNNLogParser/pkg/utils"
)

// NewExtractCmd creates the extract subcommand.
func NewExtractCmd() *cobra.Command {
	cfg := config.New()

	cmd := &cobra.Command{
		Aliases: []string{"x"},
		Use:     "extract --log run.log --summary summary.csv",
		Short:   "Extract run metrics from a qnn-net-run log",
		Long: `Parse a timestamped qnn-net-run log, aggregate per-unit execution
statistics and phase durations, merge them into the pre-existing summary
record and emit a per-unit detail table.

Example:
  qnnlp extract --log device/run.log --summary results/summary.csv --graphs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.LogPath, "log", "", "path to the qnn-net-run log (required)")
	flags.StringVar(&cfg.SummaryPath, "summary", "", "path to the pre-existing summary record (required)")
	flags.StringVar(&cfg.DetailPath, "details", "", "detail table output path (default: <log>_details.<ext>)")
	flags.StringVar(&cfg.DetailFormat, "format", config.DefaultDetailFormat, "detail table format: csv, tsv, jsonl, parquet")
	flags.StringVar(&cfg.MarkersPath, "markers", "", "YAML file overriding the default event markers")
	flags.BoolVar(&cfg.GenerateGraphs, "graphs", false, "render duration charts after extraction")
	flags.StringVar(&cfg.GraphDir, "graph-dir", config.DefaultGraphDir, "chart output directory")
	flags.StringVar(&cfg.InfluxURL, "influx-url", "", "push the summary to this InfluxDB server")
	flags.StringVar(&cfg.InfluxOrg, "influx-org", "", "InfluxDB organization")
	flags.StringVar(&cfg.InfluxBucket, "influx-bucket", "", "InfluxDB bucket")
	_ = cmd.MarkFlagRequired("log")
	_ = cmd.MarkFlagRequired("summary")

	return cmd
}

func runExtract(cfg *config.Config) error {
	cfg.ApplyDefaults()
	logger := logging.GetLogger().WithField("run_id", cfg.RunID)

	cfg.LoadEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	markers, err := config.LoadMarkers(cfg.MarkersPath)
	if err != nil {
		// A broken marker file falls back to the defaults.
		logger.WithError(err).Warn("Using default markers")
	}

	raw, err := os.ReadFile(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}

	summary, diags, err := metrics.Collect(string(raw), markers)
	for _, d := range diags {
		logger.WithField("marker", d.Marker).WithField("stage", d.Stage).Warn(d.Message)
	}
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := exporting.MergeSummary(cfg.SummaryPath, summaryUpdates(summary)); err != nil {
		return err
	}
	logger.WithField("path", cfg.SummaryPath).Info("Summary record updated")

	if err := exporting.WriteDetail(cfg.DetailPath, summary.Units); err != nil {
		return err
	}
	logger.WithField("path", cfg.DetailPath).
		WithField("units", len(summary.Units)).Info("Detail table written")

	if cfg.GenerateGraphs {
		graphPath := cfg.GraphPath()
		if err := graphing.RenderRun(graphPath, summary.Units, summaryPhases(summary)); err != nil {
			logger.WithError(err).Warn("Failed to render charts")
		} else {
			logger.WithField("path", graphPath).Info("Charts rendered")
		}
	}

	if cfg.InfluxURL != "" {
		pushSummary(cfg, summary)
	}

	return nil
}

// summaryUpdates maps the aggregation result onto the pipeline-owned
// summary columns (10-24). Fixed-precision formatting keeps repeated runs
// byte-identical.
func summaryUpdates(s metrics.Summary) map[string]string {
	return map[string]string{
		"min_exec_ms":        utils.FormatMillis(s.Exec.MinMS),
		"min_exec_unit":      strconv.Itoa(s.Exec.MinUnit),
		"max_exec_ms":        utils.FormatMillis(s.Exec.MaxMS),
		"max_exec_unit":      strconv.Itoa(s.Exec.MaxUnit),
		"median_exec_ms":     utils.FormatMillis(s.Exec.MedianMS),
		"mean_exec_ms":       utils.FormatMillis(s.Exec.MeanMS),
		"backend_create_ms":  utils.FormatMillis(s.BackendCreateMS),
		"graph_compose_ms":   utils.FormatMillis(s.GraphComposeMS),
		"graph_finalize_ms":  utils.FormatMillis(s.GraphFinalizeMS),
		"graph_execute_ms":   utils.FormatMillis(s.GraphExecuteMS),
		"total_inference_ms": utils.FormatMillis(s.TotalInferenceMS),
		"spill_bytes":        strconv.FormatUint(s.Bandwidth.SpillBytes, 10),
		"fill_bytes":         strconv.FormatUint(s.Bandwidth.FillBytes, 10),
		"write_total_bytes":  strconv.FormatUint(s.Bandwidth.WriteTotalBytes, 10),
		"read_total_bytes":   strconv.FormatUint(s.Bandwidth.ReadTotalBytes, 10),
	}
}

func summaryPhases(s metrics.Summary) []graphing.Phase {
	return []graphing.Phase{
		{Name: "backend_create", DurationMS: s.BackendCreateMS},
		{Name: "graph_compose", DurationMS: s.GraphComposeMS},
		{Name: "graph_finalize", DurationMS: s.GraphFinalizeMS},
		{Name: "graph_execute", DurationMS: s.GraphExecuteMS},
		{Name: "total_inference", DurationMS: s.TotalInferenceMS},
	}
}

// pushSummary sends the summary point to InfluxDB. Sink failures are
// diagnostics, never fatal: the on-disk records are already written.
func pushSummary(cfg *config.Config, s metrics.Summary) {
	logger := logging.GetLogger()

	client, err := database.NewInfluxClient(database.InfluxConfig{
		URL:    cfg.InfluxURL,
		Org:    cfg.InfluxOrg,
		Bucket: cfg.InfluxBucket,
		Token:  cfg.InfluxToken,
	})
	if err != nil {
		logger.WithError(err).Warn("Skipping InfluxDB push")
		return
	}
	defer client.Close()

	tags := summaryTags(cfg.SummaryPath, cfg.RunID)
	fields := map[string]interface{}{
		"min_exec_ms":        s.Exec.MinMS,
		"max_exec_ms":        s.Exec.MaxMS,
		"median_exec_ms":     s.Exec.MedianMS,
		"mean_exec_ms":       s.Exec.MeanMS,
		"unit_count":         int64(s.Exec.Count),
		"backend_create_ms":  s.BackendCreateMS,
		"graph_compose_ms":   s.GraphComposeMS,
		"graph_finalize_ms":  s.GraphFinalizeMS,
		"graph_execute_ms":   s.GraphExecuteMS,
		"total_inference_ms": s.TotalInferenceMS,
		"spill_bytes":        int64(s.Bandwidth.SpillBytes),
		"fill_bytes":         int64(s.Bandwidth.FillBytes),
		"write_total_bytes":  int64(s.Bandwidth.WriteTotalBytes),
		"read_total_bytes":   int64(s.Bandwidth.ReadTotalBytes),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := client.PushSummary(ctx, tags, fields); err != nil {
		logger.WithError(err).Warn("Failed to push summary to InfluxDB")
		return
	}
	logger.WithField("url", cfg.InfluxURL).Info("Summary pushed to InfluxDB")
}

// summaryTags reads the upstream-owned identity columns back from the
// merged record to tag the InfluxDB point. When the record carries no
// run_id, the generated one identifies the run instead.
func summaryTags(path, runID string) map[string]string {
	tags := map[string]string{"run_id": runID}

	records, err := exporting.LoadRecords(path)
	if err != nil || len(records) == 0 {
		return tags
	}

	for _, col := range []string{"run_id", "model_name", "backend", "device_id", "perf_profile"} {
		if v := utils.ToString(records[0][col]); v != "" {
			tags[col] = v
		}
	}
	return tags
}
