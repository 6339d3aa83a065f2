package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/testsupport/basedata"
)

func TestResultsTable(t *testing.T) {
	out := ResultsTable(basedata.SampleResults())
	assert.Contains(t, out, "Max Tester")
	assert.Contains(t, out, "1:30:12.345")
	assert.Contains(t, out, "+12.789")
}

func TestStandingsTable(t *testing.T) {
	out := StandingsTable(basedata.SampleStandings())
	assert.Contains(t, out, "Silver Arrows")
	assert.Contains(t, out, "110")
}

func TestScheduleTable(t *testing.T) {
	out := ScheduleTable(basedata.SampleSchedule())
	assert.Contains(t, out, "Testland Grand Prix")
	assert.Contains(t, out, "28 Apr 2024")
}

func TestLeaderboardTable(t *testing.T) {
	frame := model.Frame{
		TimeSecs: 124.0,
		Leaderboard: []model.LeaderboardEntry{
			{Rank: 1, Abbrev: "TES", LapNumber: 3},
			{Rank: 2, Abbrev: "EXA", LapNumber: 3, GapSecs: 2.345},
		},
	}

	out := LeaderboardTable(frame)
	assert.Contains(t, out, "Leaderboard @ 124.0s")
	assert.Contains(t, out, "TES")
	assert.Contains(t, out, "+2.3s")

	// leader shows a dash, not a gap
	leaderLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "TES") {
			leaderLine = line
		}
	}
	assert.Contains(t, leaderLine, "-")
}

func TestPlayerPage(t *testing.T) {
	anim := &model.Animation{
		RequestID: "req-1",
		Track:     model.TrackOutline{X: []float64{0, 100}, Y: []float64{0, 80}},
		Viewport:  model.Viewport{XMin: -500, XMax: 600, YMin: -500, YMax: 580},
		Frames: []model.Frame{
			{Index: 0, Cars: []model.CarState{{CarID: "44", Abbrev: "EXA"}}},
		},
		StepSecs:      2.0,
		FrameDuration: 100,
	}

	page, err := PlayerPage(anim)
	require.NoError(t, err)
	assert.Contains(t, page, `"requestId":"req-1"`)
	assert.Contains(t, page, "canvas")
	assert.Contains(t, page, `"frameDurationMs":100`)
}

func TestLeaderboardTableTruncatesToTopTen(t *testing.T) {
	frame := model.Frame{}
	for i := 1; i <= 15; i++ {
		frame.Leaderboard = append(frame.Leaderboard, model.LeaderboardEntry{
			Rank: i, Abbrev: fmt.Sprintf("D%02d", i), LapNumber: 1,
		})
	}

	out := LeaderboardTable(frame)
	assert.Contains(t, out, "D10")
	assert.NotContains(t, out, "D11")
}
