package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

func rosterEntries() []model.CarEntry {
	return []model.CarEntry{
		{
			Car:    model.Car{CarID: "44", Number: 44},
			Team:   model.Team{Name: "Silver Arrows", Color: "#27F4D2"},
			Driver: model.Driver{Name: "Lew Example", AbbrevName: "EXA"},
		},
		{
			Car:    model.Car{CarID: "1", Number: 1},
			Team:   model.Team{Name: "Blue Racing", Color: "#3671C6"},
			Driver: model.Driver{Name: "Max Tester", AbbrevName: "TES"},
		},
	}
}

func TestRosterLookups(t *testing.T) {
	r := NewRoster(rosterEntries())

	assert.Equal(t, []string{"1", "44"}, r.CarIDs())

	entry, ok := r.Entry("44")
	require.True(t, ok)
	assert.Equal(t, 44, entry.Car.Number)
	_, ok = r.Entry("99")
	assert.False(t, ok)

	assert.Equal(t, "EXA", r.Abbrev("44"))
	assert.Equal(t, "#3671C6", r.Color("1"))
	assert.Equal(t, "Max Tester", r.DriverName("1"))
}

func TestRosterUnknownCarFallbacks(t *testing.T) {
	r := NewRoster(rosterEntries())

	assert.Equal(t, "99", r.Abbrev("99"))
	assert.Empty(t, r.Color("99"))
	assert.Equal(t, "99", r.DriverName("99"))
}

func TestFastestLapOf(t *testing.T) {
	laps := []model.Lap{
		{CarID: "44", LapNumber: 1, LapTimeSecs: 93.2},
		{CarID: "44", LapNumber: 2, LapTimeSecs: 91.7},
		{CarID: "44", LapNumber: 3, LapTimeSecs: 0}, // incomplete, ignored
		{CarID: "1", LapNumber: 1, LapTimeSecs: 90.1},
	}

	tests := []struct {
		name    string
		carID   string
		wantLap int
		wantOk  bool
	}{
		{name: "fastest of several", carID: "44", wantLap: 2, wantOk: true},
		{name: "single lap", carID: "1", wantLap: 1, wantOk: true},
		{name: "unknown car", carID: "99", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lap, ok := FastestLapOf(laps, tt.carID)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.wantLap, lap.LapNumber)
			}
		})
	}
}
