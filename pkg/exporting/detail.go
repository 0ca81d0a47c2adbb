package exporting

import (
	"fmt"

	"QNNLogParser/pkg/logparse"
)

// DetailColumns is the header of the per-unit detail table.
var DetailColumns = []string{"unit_identifier", "duration_ms"}

// WriteDetail emits a fresh per-unit duration table in unit-identifier
// order. The format is chosen by the file extension; unlike the summary
// record this table is always recreated, never merged.
func WriteDetail(path string, units []logparse.UnitExecution) error {
	records := make([]Record, len(units))
	for i, u := range units {
		records[i] = Record{
			"unit_identifier": u.Unit,
			"duration_ms":     u.DurationMS,
		}
	}

	if err := SaveRecords(path, DetailColumns, records); err != nil {
		return fmt.Errorf("failed to write detail table: %w", err)
	}
	return nil
}
