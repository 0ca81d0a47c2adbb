package logparse

import (
	"fmt"
	"strings"
)

// Kind distinguishes the two sides of a marker pair.
type Kind int

const (
	KindStart Kind = iota
	KindEnd
)

func (k Kind) String() string {
	if k == KindEnd {
		return "end"
	}
	return "start"
}

// Event is one matched marker occurrence with its line timestamp.
type Event struct {
	Label     string
	Kind      Kind
	Timestamp float64
	HasTS     bool
	Line      int // 1-based line number in the normalized log
}

// Diagnostic records a non-fatal extraction anomaly. Degraded conditions
// never abort a run; they substitute a default and carry one of these.
type Diagnostic struct {
	Stage   string
	Marker  string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s/%s: %s", d.Stage, d.Marker, d.Message)
}

// UnitExecution is the duration of one inference pass over a single input,
// identified by its 1-based positional pair index.
type UnitExecution struct {
	Unit       int
	DurationMS float64
}

type matcher struct {
	label  string
	kind   Kind
	needle string
}

// Scanner matches a fixed marker set against normalized log lines in a
// single linear pass.
type Scanner struct {
	matchers []matcher
}

// NewScanner compiles one substring matcher per marker side.
func NewScanner(set MarkerSet) *Scanner {
	s := &Scanner{}
	for _, label := range set.Labels() {
		p, _ := set.pair(label)
		if p.Start != "" {
			s.matchers = append(s.matchers, matcher{label: label, kind: KindStart, needle: p.Start})
		}
		if p.End != "" {
			s.matchers = append(s.matchers, matcher{label: label, kind: KindEnd, needle: p.End})
		}
	}
	return s
}

// Scan emits events for every marker occurrence in document order. A line
// matching several markers emits one event per match.
func (s *Scanner) Scan(lines []string) []Event {
	var events []Event
	for i, line := range lines {
		for _, m := range s.matchers {
			if !strings.Contains(line, m.needle) {
				continue
			}
			ts, ok := LeadingTimestamp(line)
			events = append(events, Event{
				Label:     m.label,
				Kind:      m.kind,
				Timestamp: ts,
				HasTS:     ok,
				Line:      i + 1,
			})
		}
	}
	return events
}

// PhaseDuration computes end minus start for the first occurrence of each
// side of a phase pair. The two searches are independent; the end marker is
// not required to follow the start marker. Every failure mode degrades to a
// zero duration with a diagnostic.
func PhaseDuration(events []Event, label string) (float64, []Diagnostic) {
	start, startOK := firstEvent(events, label, KindStart)
	end, endOK := firstEvent(events, label, KindEnd)

	var diags []Diagnostic
	if !startOK {
		diags = append(diags, Diagnostic{Stage: "phase", Marker: label, Message: "start marker not found"})
	} else if !start.HasTS {
		diags = append(diags, Diagnostic{Stage: "phase", Marker: label,
			Message: fmt.Sprintf("start marker at line %d has no parseable timestamp", start.Line)})
	}
	if !endOK {
		diags = append(diags, Diagnostic{Stage: "phase", Marker: label, Message: "end marker not found"})
	} else if !end.HasTS {
		diags = append(diags, Diagnostic{Stage: "phase", Marker: label,
			Message: fmt.Sprintf("end marker at line %d has no parseable timestamp", end.Line)})
	}
	if len(diags) > 0 {
		return 0, diags
	}

	d := end.Timestamp - start.Timestamp
	if d < 0 {
		return 0, []Diagnostic{{Stage: "phase", Marker: label,
			Message: fmt.Sprintf("negative duration %.3fms", d)}}
	}
	return d, nil
}

// UnitDurations pairs the k-th start with the k-th end of a repeated marker
// for k up to the shorter side. Pairing is strictly positional: the log
// source is a synchronous execution loop, so occurrence order is pairing
// order. Concurrent or reordered emission upstream would mispair silently.
// Pairs with a missing or negative timestamp difference are excluded from
// the result, never zero-filled.
func UnitDurations(events []Event, label string) ([]UnitExecution, []Diagnostic) {
	var starts, ends []Event
	for _, ev := range events {
		if ev.Label != label {
			continue
		}
		if ev.Kind == KindStart {
			starts = append(starts, ev)
		} else {
			ends = append(ends, ev)
		}
	}

	var diags []Diagnostic
	n := len(starts)
	if len(ends) < n {
		n = len(ends)
	}
	if len(starts) != len(ends) {
		diags = append(diags, Diagnostic{Stage: "units", Marker: label,
			Message: fmt.Sprintf("start/end count mismatch: %d starts, %d ends; using %d pairs",
				len(starts), len(ends), n)})
	}

	units := make([]UnitExecution, 0, n)
	for k := 0; k < n; k++ {
		if !starts[k].HasTS || !ends[k].HasTS {
			diags = append(diags, Diagnostic{Stage: "units", Marker: label,
				Message: fmt.Sprintf("pair %d dropped: unparseable timestamp", k+1)})
			continue
		}
		d := ends[k].Timestamp - starts[k].Timestamp
		if d < 0 {
			diags = append(diags, Diagnostic{Stage: "units", Marker: label,
				Message: fmt.Sprintf("pair %d dropped: negative duration %.3fms", k+1, d)})
			continue
		}
		units = append(units, UnitExecution{Unit: k + 1, DurationMS: d})
	}
	return units, diags
}

// HasMarker reports whether any line contains the marker substring.
func HasMarker(lines []string, needle string) bool {
	for _, line := range lines {
		if strings.Contains(line, needle) {
			return true
		}
	}
	return false
}

func firstEvent(events []Event, label string, kind Kind) (Event, bool) {
	for _, ev := range events {
		if ev.Label == label && ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}
