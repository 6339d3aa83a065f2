package frames

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/grid"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/testsupport/basedata"
)

func testRoster() *session.Roster {
	return session.NewRoster(basedata.SampleEntries())
}

// constTrack builds a track with constant values on every grid index.
func constTrack(carID string, n int, dist float64, lap, gear, drs int) *model.CarTrack {
	track := &model.CarTrack{
		CarID:     carID,
		X:         make([]float64, n),
		Y:         make([]float64, n),
		Distance:  make([]float64, n),
		Speed:     make([]float64, n),
		Gear:      make([]int, n),
		DRS:       make([]int, n),
		LapNumber: make([]int, n),
	}
	for i := 0; i < n; i++ {
		track.X[i] = dist
		track.Y[i] = dist / 2
		track.Distance[i] = dist
		track.Speed[i] = 250
		track.Gear[i] = gear
		track.DRS[i] = drs
		track.LapNumber[i] = lap
	}
	return track
}

func undefineAt(track *model.CarTrack, i int) *model.CarTrack {
	track.X[i] = math.NaN()
	track.Y[i] = math.NaN()
	track.Distance[i] = math.NaN()
	track.Speed[i] = 0
	return track
}

func TestDRSConfigOpen(t *testing.T) {
	tests := []struct {
		name string
		cfg  DRSConfig
		code int
		want bool
	}{
		{name: "closed", cfg: DefaultDRSConfig(), code: 1, want: false},
		{name: "active code 10", cfg: DefaultDRSConfig(), code: 10, want: true},
		{name: "active code 12", cfg: DefaultDRSConfig(), code: 12, want: true},
		{name: "active code 14", cfg: DefaultDRSConfig(), code: 14, want: true},
		{name: "threshold boundary stays closed", cfg: DefaultDRSConfig(), code: 8, want: false},
		{name: "unknown code above threshold", cfg: DefaultDRSConfig(), code: 9, want: true},
		{
			name: "custom codes only",
			cfg:  DRSConfig{ActiveCodes: []int{2}, OpenThreshold: 0},
			code: 9, want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Open(tt.code))
		})
	}
}

func TestBuildFramesLeaderboard(t *testing.T) {
	g := grid.New(0, 2, 2.0)
	tracks := []*model.CarTrack{
		constTrack("1", 1, 300, 2, 7, 1),
		constTrack("16", 1, 800, 1, 6, 1),
		constTrack("44", 1, 500, 2, 7, 1),
	}

	frames := NewBuilder(testRoster()).BuildFrames(tracks, g)
	require.Len(t, frames, 1)

	lb := frames[0].Leaderboard
	require.Len(t, lb, 3)
	// lap beats distance, then distance decides
	assert.Equal(t, "44", lb[0].CarID)
	assert.Equal(t, "1", lb[1].CarID)
	assert.Equal(t, "16", lb[2].CarID)
	for i, e := range lb {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestBuildFramesLeaderboardTieBreak(t *testing.T) {
	g := grid.New(0, 2, 2.0)
	tracks := []*model.CarTrack{
		constTrack("44", 1, 500, 1, 6, 1),
		constTrack("16", 1, 500, 1, 6, 1),
	}

	frames := NewBuilder(testRoster()).BuildFrames(tracks, g)
	lb := frames[0].Leaderboard
	require.Len(t, lb, 2)
	assert.Equal(t, "16", lb[0].CarID)
	assert.Equal(t, "44", lb[1].CarID)
}

func TestBuildFramesGapEstimate(t *testing.T) {
	g := grid.New(0, 2, 2.0)
	tracks := []*model.CarTrack{
		constTrack("1", 1, 1100, 1, 7, 1),
		constTrack("44", 1, 550, 1, 6, 1),
	}

	frames := NewBuilder(testRoster(), WithGapCalibration(55)).BuildFrames(tracks, g)
	lb := frames[0].Leaderboard
	require.Len(t, lb, 2)
	assert.Zero(t, lb[0].GapSecs)
	assert.InDelta(t, 10.0, lb[1].GapSecs, 1e-9)
}

func TestBuildFramesSkipsUndefinedCars(t *testing.T) {
	g := grid.New(0, 4, 2.0)
	tracks := []*model.CarTrack{
		constTrack("1", 2, 300, 1, 7, 1),
		undefineAt(constTrack("44", 2, 500, 1, 6, 1), 1),
	}

	frames := NewBuilder(testRoster()).BuildFrames(tracks, g)
	require.Len(t, frames, 2)
	assert.Len(t, frames[0].Cars, 2)
	assert.Len(t, frames[1].Cars, 1)
	assert.Equal(t, "1", frames[1].Cars[0].CarID)
	assert.Len(t, frames[1].Leaderboard, 1)
}

func TestBuildFramesFocusSnapshot(t *testing.T) {
	g := grid.New(0, 4, 2.0)
	tracks := []*model.CarTrack{
		constTrack("1", 2, 300, 1, 7, 1),
		undefineAt(constTrack("44", 2, 500, 2, 6, 12), 1),
	}

	frames := NewBuilder(testRoster(), WithFocusCar("44")).BuildFrames(tracks, g)
	require.Len(t, frames, 2)

	focus := frames[0].Focus
	require.NotNil(t, focus)
	assert.Equal(t, "44", focus.CarID)
	assert.Equal(t, 6, focus.Gear)
	assert.True(t, focus.DRSOpen)
	assert.Equal(t, 2, focus.LapNumber)
	assert.Equal(t, "#27F4D2", focus.Color)

	// no snapshot while the focus car is off track
	assert.Nil(t, frames[1].Focus)
}

func TestBuildFramesRosterMetadata(t *testing.T) {
	g := grid.New(0, 2, 2.0)
	tracks := []*model.CarTrack{
		constTrack("44", 1, 500, 1, 6, 1),
		constTrack("99", 1, 400, 1, 6, 1), // not in the roster
	}

	frames := NewBuilder(testRoster()).BuildFrames(tracks, g)
	cars := frames[0].Cars
	require.Len(t, cars, 2)
	assert.Equal(t, "EXA", cars[0].Abbrev)
	assert.Equal(t, "#27F4D2", cars[0].Color)
	assert.Equal(t, "99", cars[1].Abbrev)
	assert.Empty(t, cars[1].Color)
}
