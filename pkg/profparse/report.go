package profparse

import (
	"fmt"
	"io"
	"sort"

	"QNNLogParser/pkg/exporting"
)

// WriteText renders a result in the line-oriented METRIC_FLAG format meant
// for consumption by orchestration scripts.
func WriteText(w io.Writer, r *Result, includeDerived, rawDetails bool) {
	fmt.Fprintln(w, "QNN_PROFILING_PARSE_RESULTS")
	fmt.Fprintln(w, "============================================================")

	backend := r.FileInfo.BackendVersion
	if backend == "" {
		backend = "unknown"
	}
	graph := r.FileInfo.GraphName
	if graph == "" {
		graph = "unknown"
	}
	fmt.Fprintf(w, "FILE_INFO: path = %s\n", r.FileInfo.Path)
	fmt.Fprintf(w, "FILE_INFO: size_bytes = %d\n", r.FileInfo.SizeBytes)
	fmt.Fprintf(w, "FILE_INFO: backend_version = %s\n", backend)
	fmt.Fprintf(w, "FILE_INFO: graph_name = %s\n", graph)
	fmt.Fprintf(w, "EXTRACT_INFO: strings_found = %d\n", r.StringsFound)
	fmt.Fprintf(w, "EXTRACT_INFO: metrics_extracted = %d\n", len(r.Metrics))
	fmt.Fprintf(w, "EXTRACT_INFO: failed_extractions = %d\n", len(r.FailedExtractions))
	fmt.Fprintln(w)

	if len(r.Details) > 0 {
		fmt.Fprintln(w, "EXTRACTED_METRICS:")
		fmt.Fprintln(w, "------------------------------")

		timing, counter := splitDetails(r.Details)
		for _, d := range timing {
			fmt.Fprintf(w, "TIMING_METRIC: %s = %d %s [offset=%+d]\n", d.Key, d.Value, d.Unit, d.Offset)
		}
		for _, d := range counter {
			fmt.Fprintf(w, "COUNTER_METRIC: %s = %d %s [offset=%+d]\n", d.Key, d.Value, d.Unit, d.Offset)
		}
	}

	if includeDerived && len(r.Metrics) > 0 {
		derived := Derived(r.Metrics)
		if len(derived) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "DERIVED_METRICS:")
			fmt.Fprintln(w, "--------------------")
			for _, key := range sortedFloatKeys(derived) {
				fmt.Fprintf(w, "DERIVED_METRIC: %s = %.3f\n", key, derived[key])
			}
		}
	}

	if len(r.FailedExtractions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "FAILED_EXTRACTIONS:")
		fmt.Fprintln(w, "-------------------------")
		for _, marker := range r.FailedExtractions {
			fmt.Fprintf(w, "FAILED_EXTRACTION: %s\n", marker)
		}
	}

	if rawDetails && len(r.Details) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "RAW_EXTRACTION_DETAILS:")
		fmt.Fprintln(w, "------------------------------")
		for _, d := range r.Details {
			fmt.Fprintf(w, "DETAIL: pattern='%s' key=%s value=%d string_pos=0x%04x offset=%+d extract_pos=0x%04x type=%s\n",
				d.Pattern, d.Key, d.Value, d.StringPos, d.Offset, d.ExtractPos, d.Type)
		}
	}
}

// ToRecord flattens extracted and derived metrics into one exportable
// record.
func ToRecord(r *Result, includeDerived bool) exporting.Record {
	record := make(exporting.Record, len(r.Metrics))
	for key, value := range r.Metrics {
		record[key] = value
	}
	if includeDerived {
		for key, value := range Derived(r.Metrics) {
			record[key] = value
		}
	}
	return record
}

// SaveReport writes the metrics record in the format named by the file
// extension (csv, tsv, jsonl, parquet).
func SaveReport(path string, r *Result, includeDerived bool) error {
	record := ToRecord(r, includeDerived)
	if err := exporting.SaveRecords(path, nil, []exporting.Record{record}); err != nil {
		return fmt.Errorf("failed to save profiling report: %w", err)
	}
	return nil
}

func splitDetails(details []Extraction) (timing, counter []Extraction) {
	for _, d := range details {
		if d.Type == TypeTiming {
			timing = append(timing, d)
		} else {
			counter = append(counter, d)
		}
	}
	sort.Slice(timing, func(i, j int) bool { return timing[i].Key < timing[j].Key })
	sort.Slice(counter, func(i, j int) bool { return counter[i].Key < counter[j].Key })
	return timing, counter
}

func sortedFloatKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
