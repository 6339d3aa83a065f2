package chart

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// TrackMap charts the track outline polyline with a square aspect so the
// circuit shape is not distorted.
func TrackMap(title string, outline model.TrackOutline) *charts.Line {
	line := charts.NewLine()
	xMin, xMax := floats.Min(outline.X), floats.Max(outline.X)
	yMin, yMax := floats.Min(outline.Y), floats.Max(outline.Y)
	// symmetric padding keeps the scale equal on both axes
	span := max(xMax-xMin, yMax-yMin) * 1.05
	xMid := (xMin + xMax) / 2
	yMid := (yMin + yMax) / 2

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "dark", Width: "800px", Height: "800px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value", Show: opts.Bool(false),
			Min: xMid - span/2, Max: xMid + span/2,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value", Show: opts.Bool(false),
			Min: yMid - span/2, Max: yMid + span/2,
		}),
	)
	data := make([]opts.LineData, 0, len(outline.X))
	for i := range outline.X {
		data = append(data, opts.LineData{
			Value: []interface{}{outline.X[i], outline.Y[i]},
		})
	}
	line.AddSeries("track", data,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#ffffff", Width: 4}),
	)
	return line
}
