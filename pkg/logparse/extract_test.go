package logparse

import (
	"fmt"
	"strings"
	"testing"
)

func scanLog(t *testing.T, lines ...string) []Event {
	t.Helper()
	return NewScanner(DefaultMarkerSet()).Scan(Normalize(lines))
}

func TestScanEmitsEventsInDocumentOrder(t *testing.T) {
	events := scanLog(t,
		"10.0ms [ INFO ] Backend create started",
		"20.0ms [ INFO ] Backend create done successfully",
		"30.0ms [ INFO ] Graph execute started",
	)

	if len(events) != 3 {
		t.Fatalf("len(events) = %d; want 3", len(events))
	}
	if events[0].Label != PhaseBackendCreate || events[0].Kind != KindStart {
		t.Errorf("events[0] = %s/%s; want %s/start", events[0].Label, events[0].Kind, PhaseBackendCreate)
	}
	if events[2].Label != LabelUnitExecute {
		t.Errorf("events[2].Label = %s; want %s", events[2].Label, LabelUnitExecute)
	}
	if !events[0].HasTS || events[0].Timestamp != 10.0 {
		t.Errorf("events[0].Timestamp = %v (has=%v); want 10.0", events[0].Timestamp, events[0].HasTS)
	}
}

func TestPhaseDuration(t *testing.T) {
	events := scanLog(t,
		"10.0ms [ INFO ] Backend create started",
		"60.5ms [ INFO ] Backend create done successfully",
	)

	d, diags := PhaseDuration(events, PhaseBackendCreate)
	if d != 50.5 {
		t.Errorf("duration = %v; want 50.5", d)
	}
	if len(diags) != 0 {
		t.Errorf("diags = %v; want none", diags)
	}
}

func TestPhaseDurationFirstOccurrenceWins(t *testing.T) {
	events := scanLog(t,
		"10.0ms [ INFO ] Backend create started",
		"20.0ms [ INFO ] Backend create done successfully",
		"90.0ms [ INFO ] Backend create started",
		"99.0ms [ INFO ] Backend create done successfully",
	)

	d, _ := PhaseDuration(events, PhaseBackendCreate)
	if d != 10.0 {
		t.Errorf("duration = %v; want 10.0 (first occurrence of each side)", d)
	}
}

func TestPhaseDurationMissingMarkerDegrades(t *testing.T) {
	events := scanLog(t,
		"10.0ms [ INFO ] Finalizing Graphs",
		"80.0ms [ INFO ] All graphs finalized successfully",
	)

	d, diags := PhaseDuration(events, PhaseGraphCompose)
	if d != 0 {
		t.Errorf("duration = %v; want 0 for missing markers", d)
	}
	if len(diags) != 2 {
		t.Fatalf("len(diags) = %d; want 2 (start and end missing)", len(diags))
	}

	// The finalize phase is unaffected by the compose failure.
	d, diags = PhaseDuration(events, PhaseGraphFinalize)
	if d != 70.0 {
		t.Errorf("finalize duration = %v; want 70.0", d)
	}
	if len(diags) != 0 {
		t.Errorf("finalize diags = %v; want none", diags)
	}
}

func TestPhaseDurationUnparseableTimestamp(t *testing.T) {
	events := scanLog(t,
		"[ INFO ] Backend create started",
		"60.0ms [ INFO ] Backend create done successfully",
	)

	d, diags := PhaseDuration(events, PhaseBackendCreate)
	if d != 0 {
		t.Errorf("duration = %v; want 0", d)
	}
	if len(diags) != 1 {
		t.Errorf("len(diags) = %d; want 1", len(diags))
	}
}

func unitLines(pairs ...[2]float64) []string {
	var lines []string
	for _, p := range pairs {
		lines = append(lines, fmt.Sprintf("%.1fms [ INFO ] Graph execute started", p[0]))
		lines = append(lines, fmt.Sprintf("%.1fms [ INFO ] Graph execute done successfully", p[1]))
	}
	return lines
}

func TestUnitDurationsPositionalPairing(t *testing.T) {
	events := scanLog(t, unitLines(
		[2]float64{100, 120},
		[2]float64{130, 160},
		[2]float64{170, 180},
	)...)

	units, diags := UnitDurations(events, LabelUnitExecute)
	if len(diags) != 0 {
		t.Errorf("diags = %v; want none", diags)
	}
	if len(units) != 3 {
		t.Fatalf("len(units) = %d; want 3", len(units))
	}

	want := []UnitExecution{{1, 20}, {2, 30}, {3, 10}}
	for i, u := range want {
		if units[i] != u {
			t.Errorf("units[%d] = %+v; want %+v", i, units[i], u)
		}
	}
}

func TestUnitDurationsCountMismatch(t *testing.T) {
	lines := unitLines(
		[2]float64{100, 110},
		[2]float64{120, 130},
		[2]float64{140, 150},
		[2]float64{160, 170},
	)
	// A fifth start without a matching end.
	lines = append(lines, "180.0ms [ INFO ] Graph execute started")

	units, diags := UnitDurations(scanLog(t, lines...), LabelUnitExecute)
	if len(units) != 4 {
		t.Fatalf("len(units) = %d; want 4 (shorter side)", len(units))
	}
	if len(diags) != 1 {
		t.Fatalf("len(diags) = %d; want 1 mismatch warning", len(diags))
	}
	if !strings.Contains(diags[0].Message, "5 starts, 4 ends") {
		t.Errorf("diag = %q; want count mismatch message", diags[0].Message)
	}
}

func TestUnitDurationsNegativePairExcluded(t *testing.T) {
	events := scanLog(t, unitLines(
		[2]float64{100, 120},
		[2]float64{200, 150}, // end before start
		[2]float64{210, 240},
	)...)

	units, diags := UnitDurations(events, LabelUnitExecute)
	if len(units) != 2 {
		t.Fatalf("len(units) = %d; want 2 (negative pair dropped, not zero-filled)", len(units))
	}
	// Dropped pairs keep the identifiers of the surviving units intact.
	if units[0].Unit != 1 || units[1].Unit != 3 {
		t.Errorf("unit ids = %d,%d; want 1,3", units[0].Unit, units[1].Unit)
	}
	if len(diags) != 1 {
		t.Errorf("len(diags) = %d; want 1", len(diags))
	}
}

func TestUnitDurationsEmpty(t *testing.T) {
	units, diags := UnitDurations(nil, LabelUnitExecute)
	if len(units) != 0 {
		t.Errorf("len(units) = %d; want 0", len(units))
	}
	if len(diags) != 0 {
		t.Errorf("len(diags) = %d; want 0", len(diags))
	}
}

func TestHasMarker(t *testing.T) {
	lines := []string{
		"320.0ms [ INFO ] qnn-net-run complete",
		"qnn-net-run exit code: 0",
	}
	if !HasMarker(lines, "qnn-net-run exit code") {
		t.Error("HasMarker = false; want true for present sentinel")
	}
	if HasMarker(lines[:1], "qnn-net-run exit code") {
		t.Error("HasMarker = true; want false for absent sentinel")
	}
}

func TestMarkerSetMerge(t *testing.T) {
	m := DefaultMarkerSet()
	m.Merge(MarkerSet{
		GraphCompose: MarkerPair{Start: "Custom compose start"},
	})

	if m.GraphCompose.Start != "Custom compose start" {
		t.Errorf("GraphCompose.Start = %q; want override", m.GraphCompose.Start)
	}
	if m.GraphCompose.End != "All graphs composed successfully" {
		t.Errorf("GraphCompose.End = %q; want default preserved", m.GraphCompose.End)
	}
	if m.BackendCreate.Start != "Backend create started" {
		t.Errorf("BackendCreate.Start = %q; want default preserved", m.BackendCreate.Start)
	}
}
