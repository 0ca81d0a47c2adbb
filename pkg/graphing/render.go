package graphing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/components"

	"QNNLogParser/pkg/exporting"
	"QNNLogParser/pkg/logparse"
	"QNNLogParser/pkg/utils"
)

// RenderRun writes an HTML page with the unit-duration charts and, when
// phases are given, a phase comparison chart.
func RenderRun(outputPath string, units []logparse.UnitExecution, phases []Phase) error {
	if len(units) == 0 {
		return fmt.Errorf("no unit executions to chart")
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create graph directory: %w", err)
		}
	}

	page := components.NewPage()
	page.SetPageTitle("QNN Run Metrics")
	page.AddCharts(unitBarChart(units), unitLineChart(units))
	if len(phases) > 0 {
		page.AddCharts(phaseBarChart(phases))
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}

// GenerateFromDetail renders the unit charts from a previously written
// detail table (any registered format).
func GenerateFromDetail(inputPath, outputPath string) error {
	records, err := exporting.LoadRecords(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load detail table: %w", err)
	}

	units := make([]logparse.UnitExecution, 0, len(records))
	for _, r := range records {
		unit, ok := utils.ToInt64Ok(r["unit_identifier"])
		if !ok {
			continue
		}
		units = append(units, logparse.UnitExecution{
			Unit:       int(unit),
			DurationMS: utils.ToFloat64(r["duration_ms"]),
		})
	}
	return RenderRun(outputPath, units, nil)
}
