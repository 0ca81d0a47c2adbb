package logparse

// Phase names used as event labels throughout the pipeline.
const (
	PhaseBackendCreate  = "backend_create"
	PhaseGraphCompose   = "graph_compose"
	PhaseGraphFinalize  = "graph_finalize"
	PhaseGraphExecute   = "graph_execute"
	PhaseTotalInference = "total_inference"
	LabelUnitExecute    = "unit_execute"
)

// MarkerPair holds the start/end substrings bounding one timed region.
type MarkerPair struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// MarkerSet maps every recognized log marker to its matching substring.
// Fields left empty in a YAML override keep their defaults.
type MarkerSet struct {
	BackendCreate  MarkerPair `yaml:"backend_create"`
	GraphCompose   MarkerPair `yaml:"graph_compose"`
	GraphFinalize  MarkerPair `yaml:"graph_finalize"`
	GraphExecute   MarkerPair `yaml:"graph_execute"`
	TotalInference MarkerPair `yaml:"total_inference"`

	// UnitExecute repeats once per inference input; all other pairs are
	// expected to match a single line each.
	UnitExecute MarkerPair `yaml:"unit_execute"`

	BandwidthHeader string `yaml:"bandwidth_header"`
	ExitSentinel    string `yaml:"exit_sentinel"`
}

// DefaultMarkerSet returns the marker substrings emitted by qnn-net-run.
func DefaultMarkerSet() MarkerSet {
	return MarkerSet{
		BackendCreate: MarkerPair{
			Start: "Backend create started",
			End:   "Backend create done successfully",
		},
		GraphCompose: MarkerPair{
			Start: "Composing Graphs",
			End:   "All graphs composed successfully",
		},
		GraphFinalize: MarkerPair{
			Start: "Finalizing Graphs",
			End:   "All graphs finalized successfully",
		},
		GraphExecute: MarkerPair{
			Start: "Graph execution started",
			End:   "Graph execution done successfully",
		},
		TotalInference: MarkerPair{
			Start: "qnn-net-run begin",
			End:   "qnn-net-run complete",
		},
		UnitExecute: MarkerPair{
			Start: "Graph execute started",
			End:   "Graph execute done successfully",
		},
		BandwidthHeader: "DDR bandwidth summary",
		ExitSentinel:    "qnn-net-run exit code",
	}
}

// Merge overlays the non-empty fields of o onto m.
func (m *MarkerSet) Merge(o MarkerSet) {
	mergePair(&m.BackendCreate, o.BackendCreate)
	mergePair(&m.GraphCompose, o.GraphCompose)
	mergePair(&m.GraphFinalize, o.GraphFinalize)
	mergePair(&m.GraphExecute, o.GraphExecute)
	mergePair(&m.TotalInference, o.TotalInference)
	mergePair(&m.UnitExecute, o.UnitExecute)
	if o.BandwidthHeader != "" {
		m.BandwidthHeader = o.BandwidthHeader
	}
	if o.ExitSentinel != "" {
		m.ExitSentinel = o.ExitSentinel
	}
}

func mergePair(dst *MarkerPair, src MarkerPair) {
	if src.Start != "" {
		dst.Start = src.Start
	}
	if src.End != "" {
		dst.End = src.End
	}
}

// pair returns the marker pair registered under a phase or unit label.
func (m *MarkerSet) pair(label string) (MarkerPair, bool) {
	switch label {
	case PhaseBackendCreate:
		return m.BackendCreate, true
	case PhaseGraphCompose:
		return m.GraphCompose, true
	case PhaseGraphFinalize:
		return m.GraphFinalize, true
	case PhaseGraphExecute:
		return m.GraphExecute, true
	case PhaseTotalInference:
		return m.TotalInference, true
	case LabelUnitExecute:
		return m.UnitExecute, true
	}
	return MarkerPair{}, false
}

// Labels lists every pair label in scan registration order.
func (m *MarkerSet) Labels() []string {
	return []string{
		PhaseBackendCreate,
		PhaseGraphCompose,
		PhaseGraphFinalize,
		PhaseGraphExecute,
		PhaseTotalInference,
		LabelUnitExecute,
	}
}
