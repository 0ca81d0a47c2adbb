// Package graphing renders duration charts for extracted run metrics.
package graphing

import (
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"QNNLogParser/pkg/logparse"
)

// unitBarChart shows the duration of every unit execution.
func unitBarChart(units []logparse.UnitExecution) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Unit Execution Durations"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "unit", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms", Type: "value"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	xLabels := make([]string, len(units))
	data := make([]opts.BarData, len(units))
	for i, u := range units {
		xLabels[i] = strconv.Itoa(u.Unit)
		data[i] = opts.BarData{Value: u.DurationMS}
	}

	bar.SetXAxis(xLabels).AddSeries("duration_ms", data)
	return bar
}

// unitLineChart shows duration drift across the run.
func unitLineChart(units []logparse.UnitExecution) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Unit Execution Trend"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "unit", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms", Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	xLabels := make([]string, len(units))
	data := make([]opts.LineData, len(units))
	for i, u := range units {
		xLabels[i] = strconv.Itoa(u.Unit)
		data[i] = opts.LineData{Value: u.DurationMS}
	}

	line.SetXAxis(xLabels).AddSeries("duration_ms", data,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(true)}),
	)
	return line
}

// Phase is one named phase duration for the phase chart.
type Phase struct {
	Name       string
	DurationMS float64
}

// phaseBarChart compares the run's phase durations.
func phaseBarChart(phases []Phase) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Phase Durations"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: &opts.AxisLabel{Rotate: 30}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms", Type: "value"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	xLabels := make([]string, len(phases))
	data := make([]opts.BarData, len(phases))
	for i, p := range phases {
		xLabels[i] = p.Name
		data[i] = opts.BarData{Value: p.DurationMS}
	}

	bar.SetXAxis(xLabels).AddSeries("duration_ms", data)
	return bar
}
