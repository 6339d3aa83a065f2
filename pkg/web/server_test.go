package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/testsupport/basedata"
)

func testServer(provider *basedata.Provider) *WebServer {
	return NewWebServer(provider, replay.NewPipeline(provider), "localhost:0")
}

func get(t *testing.T, ws *WebServer, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ws.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestAPIEndpoints(t *testing.T) {
	ws := testServer(basedata.NewProvider())
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "event", target: "/api/event", want: "Testland Grand Prix"},
		{name: "schedule", target: "/api/schedule", want: "Opener Grand Prix"},
		{name: "results", target: "/api/results", want: "Max Tester"},
		{name: "standings", target: "/api/standings", want: "Silver Arrows"},
		{name: "laps", target: "/api/laps", want: `"lapNumber"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, ws, tt.target)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json",
				rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestReplayEndpoint(t *testing.T) {
	ws := testServer(basedata.NewProvider())

	rec := get(t, ws, "/api/replay")
	require.Equal(t, http.StatusOK, rec.Code)

	var anim model.Animation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &anim))
	assert.NotEmpty(t, anim.RequestID)
	assert.Len(t, anim.Frames, 5)
	assert.Len(t, anim.Frames[0].Cars, 3)
}

func TestReplayEndpointCachesAnimations(t *testing.T) {
	ws := testServer(basedata.NewProvider())

	first := get(t, ws, "/api/replay?cars=1,44")
	require.Equal(t, http.StatusOK, first.Code)
	// same selection in a different parameter order hits the cache
	second := get(t, ws, "/api/replay?cars=44,1")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestReplayEndpointWithParams(t *testing.T) {
	ws := testServer(basedata.NewProvider())

	rec := get(t, ws, "/api/replay?lap=1&focus=44&cars=44,1")
	require.Equal(t, http.StatusOK, rec.Code)

	var anim model.Animation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &anim))
	assert.Equal(t, 1, anim.Scope.Lap)
	require.NotEmpty(t, anim.Frames)
	assert.Len(t, anim.Frames[0].Cars, 2)
	require.NotNil(t, anim.Frames[0].Focus)
	assert.Equal(t, "44", anim.Frames[0].Focus.CarID)
}

func TestReplayEndpointErrors(t *testing.T) {
	failing := basedata.NewProvider()
	failing.TelemetryErrs = map[string]error{
		"1":  errors.New("gone"),
		"16": errors.New("gone"),
		"44": errors.New("gone"),
	}
	noOutline := basedata.NewProvider()
	noOutline.RefLapErr = errors.New("no reference lap")

	tests := []struct {
		name     string
		provider *basedata.Provider
		target   string
		want     int
	}{
		{
			name: "invalid lap", provider: basedata.NewProvider(),
			target: "/api/replay?lap=x", want: http.StatusBadRequest,
		},
		{
			name: "negative lap", provider: basedata.NewProvider(),
			target: "/api/replay?lap=-1", want: http.StatusBadRequest,
		},
		{
			name: "focus car unusable", provider: basedata.NewProvider(),
			target: "/api/replay?lap=1&focus=99", want: http.StatusUnprocessableEntity,
		},
		{
			name: "no data", provider: failing,
			target: "/api/replay", want: http.StatusNotFound,
		},
		{
			name: "outline failure", provider: noOutline,
			target: "/api/replay", want: http.StatusBadGateway,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, testServer(tt.provider), tt.target)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestTableEndpoints(t *testing.T) {
	ws := testServer(basedata.NewProvider())
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "results", target: "/tables/results", want: "Max Tester"},
		{name: "standings", target: "/tables/standings", want: "Blue Racing"},
		{name: "schedule", target: "/tables/schedule", want: "Testring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, ws, tt.target)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestChartEndpoints(t *testing.T) {
	ws := testServer(basedata.NewProvider())
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "speed", target: "/charts/speed", want: "Speed Trace"},
		{name: "gear", target: "/charts/gear", want: "Gear Trace"},
		{name: "drs", target: "/charts/drs", want: "DRS Trace"},
		{name: "lap times", target: "/charts/laptimes", want: "Lap Times per Lap"},
		{
			name: "lap times by team", target: "/charts/laptimes?by=team",
			want: "Lap Time Distribution by Team",
		},
		{name: "track map", target: "/charts/trackmap", want: "Track Map"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, ws, tt.target)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestPages(t *testing.T) {
	ws := testServer(basedata.NewProvider())

	rec := get(t, ws, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/replay")

	rec = get(t, ws, "/replay")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "canvas")
}
