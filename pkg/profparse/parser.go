// Package profparse extracts performance metrics from binary QNN profiling
// output files by scanning for known strings and reading 32-bit values at
// fixed offsets around each occurrence.
package profparse

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

// Metric value classes.
const (
	TypeTiming  = "timing"
	TypeCounter = "counter"
)

// Validation caps: values above these are offset-collision noise, not
// metrics.
const (
	maxCounterValue = 1_000_000
	maxTimingValue  = 10_000_000 // 10s in microseconds
)

const minStringLength = 3

// Pattern maps one in-file marker string to a metric key.
type Pattern struct {
	Marker string
	Key    string
	Unit   string
	Type   string
}

// Patterns returns the recognized profiling markers in report order.
func Patterns() []Pattern {
	return []Pattern{
		{"QNN (deinit) time", "qnn_deinit_time_us", "microseconds", TypeTiming},
		{"Accelerator (deinit) time", "accelerator_deinit_time_us", "microseconds", TypeTiming},
		{"QNN Accelerator (deinit) time", "qnn_accelerator_deinit_time_us", "microseconds", TypeTiming},
		{"RPC (deinit) time", "rpc_deinit_time_us", "microseconds", TypeTiming},
		{"QNN (execute) time", "qnn_execute_time_us", "microseconds", TypeTiming},
		{"Accelerator (execute excluding wait) time", "accelerator_execute_excluding_wait_time_us", "microseconds", TypeTiming},
		{"Accelerator (execute) time", "accelerator_execute_time_us", "microseconds", TypeTiming},
		{"QNN accelerator (execute) time", "qnn_accelerator_execute_time_us", "microseconds", TypeTiming},
		{"RPC (execute) time", "rpc_execute_time_us", "microseconds", TypeTiming},
		{"QNN (finalize) time", "qnn_finalize_time_us", "microseconds", TypeTiming},
		{"Accelerator (finalize) time", "accelerator_finalize_time_us", "microseconds", TypeTiming},
		{"QNN accelerator (finalize) time", "qnn_accelerator_finalize_time_us", "microseconds", TypeTiming},
		{"RPC (finalize) time", "rpc_finalize_time_us", "microseconds", TypeTiming},
		{"duration", "duration_us", "microseconds", TypeTiming},
		{"numInferences", "num_inferences", "count", TypeCounter},
		{"Number of HVX threads used", "hvx_threads_used", "count", TypeCounter},
	}
}

// searchOffsets is the byte-offset table probed around each marker string,
// derived from layout analysis of qnn-profile-viewer output files.
var searchOffsets = []int{
	16, 20, 28, 36, 40, 52, 56, 64,
	-12, -16, -20, -28, -36, -40, -52, -56, -64, -68, -72, -76, -80, -84, -88, -92, -96, -100,
	8, 12, 24, 32, 44, 48, 60, 68, 72, 76, 80, 84, 88, 92, 96, 100,
}

// Extraction records where one metric value was found.
type Extraction struct {
	Pattern    string
	Key        string
	Value      int64
	StringPos  int
	Offset     int
	ExtractPos int
	Unit       string
	Type       string
}

// FileInfo identifies the parsed profiling file.
type FileInfo struct {
	Path           string
	SizeBytes      int
	BackendVersion string
	GraphName      string
}

// Result holds everything extracted from one profiling file.
type Result struct {
	FileInfo          FileInfo
	StringsFound      int
	FailedExtractions []string
	Metrics           map[string]int64
	Details           []Extraction
}

// ParseFile reads and parses a binary profiling file.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiling file: %w", err)
	}
	return Parse(data, path), nil
}

// Parse scans binary profiling data for every known pattern. Patterns whose
// value cannot be located land in FailedExtractions rather than failing the
// parse.
func Parse(data []byte, path string) *Result {
	positions := extractStrings(data)

	res := &Result{
		FileInfo: FileInfo{Path: path, SizeBytes: len(data)},
		Metrics:  make(map[string]int64),
	}
	res.StringsFound = len(positions)

	for s := range positions {
		switch {
		case strings.Contains(s, "v2.35.0"):
			res.FileInfo.BackendVersion = s
		case strings.Contains(s, "_quantized_htp"),
			strings.Contains(s, "_quantized_cpu"),
			strings.Contains(s, "_quantized_gpu"):
			res.FileInfo.GraphName = s
		}
	}

	for _, p := range Patterns() {
		pos, ok := positions[p.Marker]
		if !ok {
			continue
		}
		value, offset, found := searchValue(data, pos, p.Type)
		if !found {
			res.FailedExtractions = append(res.FailedExtractions, p.Marker)
			continue
		}
		res.Metrics[p.Key] = value
		res.Details = append(res.Details, Extraction{
			Pattern:    p.Marker,
			Key:        p.Key,
			Value:      value,
			StringPos:  pos[0],
			Offset:     offset,
			ExtractPos: pos[0] + offset,
			Unit:       p.Unit,
			Type:       p.Type,
		})
	}

	return res
}

// extractStrings finds every printable-ASCII run of at least three bytes and
// records its start positions.
func extractStrings(data []byte) map[string][]int {
	positions := make(map[string][]int)
	start := 0
	length := 0

	flush := func() {
		if length >= minStringLength {
			s := string(data[start : start+length])
			positions[s] = append(positions[s], start)
		}
		length = 0
	}

	for i, b := range data {
		if b >= 32 && b <= 126 {
			if length == 0 {
				start = i
			}
			length++
		} else {
			flush()
		}
	}
	flush()
	return positions
}

// valueAt reads a 32-bit little-endian value at position+offset.
func valueAt(data []byte, position, offset int) (uint32, bool) {
	p := position + offset
	if p < 0 || p > len(data)-4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[p : p+4]), true
}

// searchValue probes every occurrence of a marker string across the offset
// table and returns the first value passing the per-type validation cap.
func searchValue(data []byte, positions []int, metricType string) (int64, int, bool) {
	for _, pos := range positions {
		for _, offset := range searchOffsets {
			v, ok := valueAt(data, pos, offset)
			if !ok {
				continue
			}
			value := int64(v)
			if metricType == TypeCounter && value > maxCounterValue {
				continue
			}
			if metricType == TypeTiming && value > maxTimingValue {
				continue
			}
			return value, offset, true
		}
	}
	return 0, -1, false
}
