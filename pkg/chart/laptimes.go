package chart

import (
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
)

// quickLapFactor mirrors the usual 107% rule for filtering in/out laps.
const quickLapFactor = 1.07

// QuickLaps filters out pit laps and obvious outliers: only laps marked
// quick by the provider and within 107% of the session's fastest lap.
func QuickLaps(laps []model.Lap) []model.Lap {
	valid := lo.Filter(laps, func(l model.Lap, _ int) bool {
		return l.Quick && l.LapTimeSecs > 0
	})
	if len(valid) == 0 {
		return valid
	}
	fastest := lo.MinBy(valid, func(a, b model.Lap) bool {
		return a.LapTimeSecs < b.LapTimeSecs
	}).LapTimeSecs
	return lo.Filter(valid, func(l model.Lap, _ int) bool {
		return l.LapTimeSecs <= fastest*quickLapFactor
	})
}

// LapScatter charts each driver's lap times per lap number.
func LapScatter(laps []model.Lap, roster *session.Roster) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark"}),
		charts.WithTitleOpts(opts.Title{Title: "Lap Times per Lap"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Lap"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Lap Time (s)", Scale: opts.Bool(true)}),
	)
	byCar := lo.GroupBy(QuickLaps(laps), func(l model.Lap) string { return l.CarID })
	for _, carID := range roster.CarIDs() {
		carLaps, ok := byCar[carID]
		if !ok {
			continue
		}
		data := make([]opts.ScatterData, 0, len(carLaps))
		for _, l := range carLaps {
			data = append(data, opts.ScatterData{
				Value: []interface{}{l.LapNumber, l.LapTimeSecs},
			})
		}
		scatter.AddSeries(roster.DriverName(carID), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: roster.Color(carID)}),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}),
		)
	}
	return scatter
}

// TeamBoxPlot charts the lap time distribution per team.
func TeamBoxPlot(laps []model.Lap, roster *session.Roster) *charts.BoxPlot {
	byTeam := map[string][]float64{}
	for _, l := range QuickLaps(laps) {
		entry, ok := roster.Entry(l.CarID)
		if !ok {
			continue
		}
		byTeam[entry.Team.Name] = append(byTeam[entry.Team.Name], l.LapTimeSecs)
	}
	teams := lo.Keys(byTeam)
	sort.Strings(teams)

	data := make([]opts.BoxPlotData, 0, len(teams))
	for _, team := range teams {
		data = append(data, opts.BoxPlotData{Value: fiveNumberSummary(byTeam[team])})
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark"}),
		charts.WithTitleOpts(opts.Title{Title: "Lap Time Distribution by Team"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Lap Time (s)", Scale: opts.Bool(true)}),
	)
	box.SetXAxis(teams).AddSeries("lap times", data)
	return box
}

// fiveNumberSummary returns [min, q1, median, q3, max] as expected by the
// box plot series.
func fiveNumberSummary(values []float64) []interface{} {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return []interface{}{
		sorted[0],
		stat.Quantile(0.25, stat.Empirical, sorted, nil),
		stat.Quantile(0.5, stat.Empirical, sorted, nil),
		stat.Quantile(0.75, stat.Empirical, sorted, nil),
		sorted[len(sorted)-1],
	}
}
