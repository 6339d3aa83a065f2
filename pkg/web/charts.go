package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/log"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/chart"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/render"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
)

type renderable interface {
	Render(w io.Writer) error
}

func (ws *WebServer) writeChart(w http.ResponseWriter, c renderable) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		ws.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (ws *WebServer) handleResultsTable(w http.ResponseWriter, r *http.Request) {
	results, err := ws.provider.Results(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	ws.writeText(w, render.ResultsTable(results))
}

func (ws *WebServer) handleStandingsTable(w http.ResponseWriter, r *http.Request) {
	standings, err := ws.provider.Standings(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	ws.writeText(w, render.StandingsTable(standings))
}

func (ws *WebServer) handleScheduleTable(w http.ResponseWriter, r *http.Request) {
	schedule, err := ws.provider.Schedule(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	ws.writeText(w, render.ScheduleTable(schedule))
}

// traceChartHandler serves one telemetry trace chart. Each driver's series
// comes from their fastest lap of the session.
func (ws *WebServer) traceChartHandler(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := ws.fastestLapSeries(r)
		if err != nil {
			ws.writeJSONError(w, http.StatusBadGateway, err.Error())
			return
		}
		switch kind {
		case "speed":
			ws.writeChart(w, chart.SpeedTrace(series))
		case "gear":
			ws.writeChart(w, chart.GearTrace(series))
		case "drs":
			ws.writeChart(w, chart.DRSTrace(series))
		default:
			ws.writeJSONError(w, http.StatusNotFound, "unknown trace "+kind)
		}
	}
}

// fastestLapSeries loads every roster car's fastest lap telemetry. Cars
// without a timed lap or without telemetry are skipped.
func (ws *WebServer) fastestLapSeries(r *http.Request) ([]chart.TraceSeries, error) {
	entries, err := ws.provider.Entries(r.Context())
	if err != nil {
		return nil, err
	}
	laps, err := ws.provider.Laps(r.Context())
	if err != nil {
		return nil, err
	}
	roster := session.NewRoster(entries)
	series := make([]chart.TraceSeries, 0, len(roster.CarIDs()))
	for _, carID := range roster.CarIDs() {
		best, ok := session.FastestLapOf(laps, carID)
		if !ok {
			continue
		}
		samples, err := ws.provider.CarTelemetry(r.Context(), carID,
			model.LapScope(best.LapNumber))
		if err != nil {
			ws.logger.Warn("skipping trace series",
				log.String("carId", carID), log.ErrorField(err))
			continue
		}
		series = append(series, chart.TraceSeries{
			Name:    roster.DriverName(carID),
			Color:   roster.Color(carID),
			Samples: samples,
		})
	}
	return series, nil
}

func (ws *WebServer) handleLapTimesChart(w http.ResponseWriter, r *http.Request) {
	entries, err := ws.provider.Entries(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	laps, err := ws.provider.Laps(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	roster := session.NewRoster(entries)
	if r.URL.Query().Get("by") == "team" {
		ws.writeChart(w, chart.TeamBoxPlot(laps, roster))
		return
	}
	ws.writeChart(w, chart.LapScatter(laps, roster))
}

func (ws *WebServer) handleTrackMapChart(w http.ResponseWriter, r *http.Request) {
	samples, err := ws.provider.ReferenceLap(r.Context())
	if err != nil {
		ws.writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	outline := model.TrackOutline{
		X: make([]float64, len(samples)),
		Y: make([]float64, len(samples)),
	}
	for i, s := range samples {
		outline.X[i] = s.X
		outline.Y[i] = s.Y
	}
	title := "Track Map"
	if ev, evErr := ws.provider.Event(r.Context()); evErr == nil {
		title = "Track Map - " + ev.Name
	}
	ws.writeChart(w, chart.TrackMap(title, outline))
}
