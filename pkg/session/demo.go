package session

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// demo roster; colors follow the usual team palette
var demoEntries = []model.CarEntry{
	{Car: model.Car{CarID: "1", Number: 1}, Team: model.Team{Name: "Red Bull Racing", Color: "#3671C6"}, Driver: model.Driver{Name: "Max Verstappen", AbbrevName: "VER"}},
	{Car: model.Car{CarID: "4", Number: 4}, Team: model.Team{Name: "McLaren", Color: "#FF8000"}, Driver: model.Driver{Name: "Lando Norris", AbbrevName: "NOR"}},
	{Car: model.Car{CarID: "16", Number: 16}, Team: model.Team{Name: "Ferrari", Color: "#E80020"}, Driver: model.Driver{Name: "Charles Leclerc", AbbrevName: "LEC"}},
	{Car: model.Car{CarID: "44", Number: 44}, Team: model.Team{Name: "Mercedes", Color: "#27F4D2"}, Driver: model.Driver{Name: "Lewis Hamilton", AbbrevName: "HAM"}},
	{Car: model.Car{CarID: "14", Number: 14}, Team: model.Team{Name: "Aston Martin", Color: "#229971"}, Driver: model.Driver{Name: "Fernando Alonso", AbbrevName: "ALO"}},
	{Car: model.Car{CarID: "63", Number: 63}, Team: model.Team{Name: "Mercedes", Color: "#27F4D2"}, Driver: model.Driver{Name: "George Russell", AbbrevName: "RUS"}},
}

const (
	demoTrackLength  = 5000.0 // meters
	demoLapTime      = 80.0   // nominal seconds per lap
	demoSampleMean   = 1.2    // mean raw sample spacing in seconds
	demoSampleJitter = 0.4
)

// NewDemoProvider builds a synthetic session: a closed oval-ish circuit
// with the demo roster racing the given number of laps. The generator is
// seeded, so identical parameters produce identical sessions.
func NewDemoProvider(laps int, seed int64) *FileProvider {
	rng := rand.New(rand.NewSource(seed))

	doc := sessionDocument{
		Event: model.Event{
			Round: 1, Name: "Demo Grand Prix", Location: "Nowhere",
			Country: "XX", Date: time.Date(2025, 3, 16, 14, 0, 0, 0, time.UTC),
			Sessions: []string{"Practice 1", "Qualifying", "Race"},
		},
		Telemetry: map[string][]model.TelemetrySample{},
	}
	doc.Schedule = []model.Event{doc.Event}

	fastest := math.Inf(1)
	for pos, entry := range demoEntries {
		carID := entry.Car.CarID
		doc.Entries = append(doc.Entries, entry)
		// small pace spread keeps the field close but distinct
		pace := demoLapTime * (1 + 0.004*float64(pos) + 0.002*rng.Float64())
		samples, carLaps := demoCarRun(rng, carID, laps, pace)
		doc.Telemetry[carID] = samples
		doc.Laps = append(doc.Laps, carLaps...)
		for _, l := range carLaps {
			if l.LapTimeSecs < fastest {
				fastest = l.LapTimeSecs
				doc.FastestLap.CarID = l.CarID
				doc.FastestLap.LapNumber = l.LapNumber
			}
		}
		doc.Results = append(doc.Results, model.ResultRow{
			Position: pos + 1, CarID: carID, Name: entry.Driver.Name,
			Team: entry.Team.Name, Time: fmt.Sprintf("+%d.%03d", pos*2, pos*137%1000),
			Status: "Finished", Points: []float64{25, 18, 15, 12, 10, 8}[pos],
		})
		doc.Standings = append(doc.Standings, model.StandingRow{
			Position: pos + 1, Name: entry.Driver.Name, Team: entry.Team.Name,
			Points: []float64{25, 18, 15, 12, 10, 8}[pos],
		})
	}
	return &FileProvider{doc: doc}
}

// demoCarRun simulates one car: irregularly spaced samples along a closed
// track, gear and DRS derived from the local speed profile.
func demoCarRun(
	rng *rand.Rand,
	carID string,
	laps int,
	lapTime float64,
) ([]model.TelemetrySample, []model.Lap) {
	samples := make([]model.TelemetrySample, 0, int(float64(laps)*lapTime/demoSampleMean))
	lapSummary := make([]model.Lap, 0, laps)

	t := 0.0
	for lap := 1; lap <= laps; lap++ {
		lapStart := t
		for t < lapStart+lapTime {
			frac := (t - lapStart) / lapTime
			x, y := demoTrackPoint(frac)
			// two straights per lap: fast with DRS open, slow corners between
			speed := 210 + 110*math.Sin(4*math.Pi*frac)
			drs := 1
			if speed > 290 {
				drs = 12
			}
			samples = append(samples, model.TelemetrySample{
				TimeSecs:  t,
				X:         x,
				Y:         y,
				Speed:     speed,
				Gear:      2 + int(speed/60),
				DRS:       drs,
				Distance:  frac * demoTrackLength,
				LapNumber: lap,
			})
			t += demoSampleMean + demoSampleJitter*(rng.Float64()-0.5)
		}
		lapSummary = append(lapSummary, model.Lap{
			CarID: carID, LapNumber: lap, LapTimeSecs: lapTime, Quick: true,
		})
	}
	return samples, lapSummary
}

// demoTrackPoint maps a lap fraction onto an elliptic circuit.
func demoTrackPoint(frac float64) (x, y float64) {
	angle := 2 * math.Pi * frac
	return 2000 * math.Cos(angle), 1200 * math.Sin(angle)
}
