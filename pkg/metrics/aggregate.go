// Package metrics aggregates extracted log events into run-level statistics.
package metrics

import (
	"fmt"
	"sort"

	"QNNLogParser/pkg/logparse"
)

// ExecStats summarizes the per-unit execution durations of one run.
type ExecStats struct {
	MinMS   float64
	MinUnit int
	MaxMS   float64
	MaxUnit int
	// MedianMS is the middle duration, or the mean of the two middle
	// durations when the unit count is even.
	MedianMS float64
	MeanMS   float64
	Count    int
}

// ErrNoUnits is the single fatal aggregation condition: with no unit
// durations there is no summary row to produce.
var ErrNoUnits = fmt.Errorf("no unit execution durations extracted")

// Aggregate computes min, max, median and mean over the unit durations.
// Ties on min/max resolve to the first unit in identifier order.
func Aggregate(units []logparse.UnitExecution) (ExecStats, error) {
	if len(units) == 0 {
		return ExecStats{}, ErrNoUnits
	}

	stats := ExecStats{
		MinMS:   units[0].DurationMS,
		MinUnit: units[0].Unit,
		MaxMS:   units[0].DurationMS,
		MaxUnit: units[0].Unit,
		Count:   len(units),
	}

	sum := 0.0
	durations := make([]float64, len(units))
	for i, u := range units {
		durations[i] = u.DurationMS
		sum += u.DurationMS
		if u.DurationMS < stats.MinMS {
			stats.MinMS = u.DurationMS
			stats.MinUnit = u.Unit
		}
		if u.DurationMS > stats.MaxMS {
			stats.MaxMS = u.DurationMS
			stats.MaxUnit = u.Unit
		}
	}
	stats.MeanMS = sum / float64(len(units))

	sort.Float64s(durations)
	mid := len(durations) / 2
	if len(durations)%2 == 1 {
		stats.MedianMS = durations[mid]
	} else {
		stats.MedianMS = (durations[mid-1] + durations[mid]) / 2
	}

	return stats, nil
}
