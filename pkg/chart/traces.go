package chart

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// TraceSeries is one driver's telemetry line of a trace chart.
type TraceSeries struct {
	Name    string
	Color   string
	Samples []model.TelemetrySample
}

// SpeedTrace charts speed over distance for the given drivers.
func SpeedTrace(series []TraceSeries) *charts.Line {
	return newTrace("Speed Trace", "Speed (km/h)", series,
		func(s model.TelemetrySample) float64 { return s.Speed })
}

// GearTrace charts the selected gear over distance.
func GearTrace(series []TraceSeries) *charts.Line {
	return newTrace("Gear Trace", "Gear", series,
		func(s model.TelemetrySample) float64 { return float64(s.Gear) })
}

// DRSTrace charts the raw DRS code over distance.
func DRSTrace(series []TraceSeries) *charts.Line {
	return newTrace("DRS Trace", "DRS Status", series,
		func(s model.TelemetrySample) float64 { return float64(s.DRS) })
}

func newTrace(
	title, yName string,
	series []TraceSeries,
	value func(model.TelemetrySample) float64,
) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Distance (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: yName}),
	)
	for _, s := range series {
		data := make([]opts.LineData, 0, len(s.Samples))
		for _, sample := range s.Samples {
			data = append(data, opts.LineData{
				Value: []interface{}{sample.Distance, value(sample)},
			})
		}
		line.AddSeries(s.Name, data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
		)
	}
	return line
}
