package exporting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"QNNLogParser/pkg/logparse"
)

func TestWriteDetailCSV(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "detail-csv")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	units := []logparse.UnitExecution{
		{Unit: 1, DurationMS: 20.5},
		{Unit: 2, DurationMS: 30},
		{Unit: 4, DurationMS: 15.25},
	}

	path := filepath.Join(tmpDir, "details.csv")
	if err := WriteDetail(path, units); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	rows := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	if rows[0] != "unit_identifier,duration_ms" {
		t.Errorf("header = %q; want unit_identifier,duration_ms", rows[0])
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d; want header + 3 units", len(rows))
	}
	if rows[1] != "1,20.5" {
		t.Errorf("rows[1] = %q; want 1,20.5", rows[1])
	}
	if rows[3] != "4,15.25" {
		t.Errorf("rows[3] = %q; want 4,15.25 (unit ids preserved)", rows[3])
	}
}

func TestWriteDetailJSONLRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "detail-jsonl")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	units := []logparse.UnitExecution{
		{Unit: 1, DurationMS: 12},
		{Unit: 2, DurationMS: 18},
	}

	path := filepath.Join(tmpDir, "details.jsonl")
	if err := WriteDetail(path, units); err != nil {
		t.Fatal(err)
	}

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d; want 2", len(records))
	}
	if records[0]["unit_identifier"] != float64(1) {
		t.Errorf("unit_identifier = %v; want 1", records[0]["unit_identifier"])
	}
	if records[1]["duration_ms"] != float64(18) {
		t.Errorf("duration_ms = %v; want 18", records[1]["duration_ms"])
	}
}

func TestWriteDetailEmptyTable(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "detail-empty")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "details.csv")
	if err := WriteDetail(path, nil); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimRight(string(data), "\n"); got != "unit_identifier,duration_ms" {
		t.Errorf("empty table = %q; want header only", got)
	}
}

func TestFormatRegistry(t *testing.T) {
	for _, name := range ValidFormats() {
		if _, ok := Get(name); !ok {
			t.Errorf("format %q not registered", name)
		}
	}

	if _, ok := GetByPath("run_details.parquet"); !ok {
		t.Error("parquet not resolvable by extension")
	}
	if _, ok := GetByPath("run_details.xlsx"); ok {
		t.Error("unknown extension should not resolve")
	}
}
