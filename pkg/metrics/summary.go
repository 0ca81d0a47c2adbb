package metrics

import (
	"QNNLogParser/pkg/logparse"
)

// Summary is the immutable result of one aggregation pass over a log.
type Summary struct {
	Exec  ExecStats
	Units []logparse.UnitExecution

	BackendCreateMS  float64
	GraphComposeMS   float64
	GraphFinalizeMS  float64
	GraphExecuteMS   float64
	TotalInferenceMS float64

	Bandwidth Bandwidth
}

// Collect runs the full extraction pipeline over raw log text: normalize,
// scan once for marker events, extract phase and unit timings, aggregate.
// Every anomaly except an empty unit sequence degrades to a default value
// plus a diagnostic; phase failures degrade independently of each other.
func Collect(raw string, markers logparse.MarkerSet) (Summary, []logparse.Diagnostic, error) {
	lines := logparse.Normalize(logparse.SplitLines(raw))
	events := logparse.NewScanner(markers).Scan(lines)

	var s Summary
	var diags []logparse.Diagnostic

	phase := func(label string) float64 {
		d, pd := logparse.PhaseDuration(events, label)
		diags = append(diags, pd...)
		return d
	}
	s.BackendCreateMS = phase(logparse.PhaseBackendCreate)
	s.GraphComposeMS = phase(logparse.PhaseGraphCompose)
	s.GraphFinalizeMS = phase(logparse.PhaseGraphFinalize)
	s.GraphExecuteMS = phase(logparse.PhaseGraphExecute)
	s.TotalInferenceMS = phase(logparse.PhaseTotalInference)

	units, ud := logparse.UnitDurations(events, logparse.LabelUnitExecute)
	diags = append(diags, ud...)
	s.Units = units

	exec, err := Aggregate(units)
	if err != nil {
		return Summary{}, diags, err
	}
	s.Exec = exec

	bw, bd := ExtractBandwidth(lines, markers.BandwidthHeader)
	diags = append(diags, bd...)
	s.Bandwidth = bw

	// qnn-net-run prints the exit sentinel last; a log without it was cut
	// off before the run finished writing.
	if markers.ExitSentinel != "" && !logparse.HasMarker(lines, markers.ExitSentinel) {
		diags = append(diags, logparse.Diagnostic{
			Stage:   "sentinel",
			Marker:  markers.ExitSentinel,
			Message: "exit sentinel not found; log may be truncated",
		})
	}

	return s, diags, nil
}
