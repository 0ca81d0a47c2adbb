package exporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// SummaryColumns is the fixed 24-column layout of the run summary record.
// Columns 1-9 are written by the upstream orchestration (run identity,
// device, success flag); this pipeline only ever overwrites columns 10-24.
var SummaryColumns = []string{
	"run_timestamp",
	"run_id",
	"model_name",
	"backend",
	"device_id",
	"perf_profile",
	"success",
	"total_time_s",
	"output_count",
	"min_exec_ms",
	"min_exec_unit",
	"max_exec_ms",
	"max_exec_unit",
	"median_exec_ms",
	"mean_exec_ms",
	"backend_create_ms",
	"graph_compose_ms",
	"graph_finalize_ms",
	"graph_execute_ms",
	"total_inference_ms",
	"spill_bytes",
	"fill_bytes",
	"write_total_bytes",
	"read_total_bytes",
}

// UpstreamColumns is the count of leading columns owned by the caller.
const UpstreamColumns = 9

// summaryIndex maps a column name to its fixed position.
var summaryIndex = func() map[string]int {
	m := make(map[string]int, len(SummaryColumns))
	for i, c := range SummaryColumns {
		m[c] = i
	}
	return m
}()

// MergeSummary overwrites pipeline-owned fields of the one-row summary CSV
// in place, leaving the upstream columns byte-for-byte untouched. The file
// must already exist with a header row and at least one data row; anything
// less is fatal. Updates addressing columns 1-9 are rejected.
func MergeSummary(path string, updates map[string]string) error {
	reader := &DelimitedReader{delimiter: ','}
	if err := reader.Open(path); err != nil {
		return fmt.Errorf("failed to open summary record: %w", err)
	}
	dataRows, err := reader.ReadRows()
	reader.Close()
	if err != nil {
		return fmt.Errorf("malformed summary record: %w", err)
	}
	if len(dataRows) == 0 {
		return fmt.Errorf("summary record %s has no data row", path)
	}

	rows := append([][]string{reader.Header()}, dataRows...)
	data := rows[1]
	if len(data) < len(SummaryColumns) {
		padded := make([]string, len(SummaryColumns))
		copy(padded, data)
		data = padded
		rows[1] = data
	}

	for name, val := range updates {
		idx, ok := summaryIndex[name]
		if !ok {
			return fmt.Errorf("unknown summary column %q", name)
		}
		if idx < UpstreamColumns {
			return fmt.Errorf("column %q is owned by the upstream caller", name)
		}
		data[idx] = val
	}

	return writeRowsAtomic(path, rows)
}

// writeRowsAtomic writes rows to a sibling temp file and renames it over the
// target, so a failed run never leaves a half-written summary behind.
func writeRowsAtomic(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".summary-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	writer := csv.NewWriter(tmp)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush summary record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace summary record: %w", err)
	}
	return nil
}
