// Package basedata provides canned session data for tests.
package basedata

import (
	"context"
	"errors"
	"time"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2024-04-28T14:00:00Z")
	return t
}

func SampleEvent() *model.Event {
	return &model.Event{
		Round:    5,
		Name:     "Testland Grand Prix",
		Location: "Testring",
		Country:  "Testland",
		Date:     TestTime(),
		Sessions: []string{"FP1", "FP2", "FP3", "Q", "R"},
	}
}

func SampleSchedule() []model.Event {
	first := *SampleEvent()
	first.Round = 1
	first.Name = "Opener Grand Prix"
	first.Date = TestTime().AddDate(0, -2, 0)
	return []model.Event{first, *SampleEvent()}
}

func SampleEntries() []model.CarEntry {
	return []model.CarEntry{
		{
			Car:    model.Car{CarID: "1", Number: 1},
			Team:   model.Team{Name: "Blue Racing", Color: "#3671C6"},
			Driver: model.Driver{Name: "Max Tester", AbbrevName: "TES"},
		},
		{
			Car:    model.Car{CarID: "16", Number: 16},
			Team:   model.Team{Name: "Red Corse", Color: "#E8002D"},
			Driver: model.Driver{Name: "Carlo Rosso", AbbrevName: "ROS"},
		},
		{
			Car:    model.Car{CarID: "44", Number: 44},
			Team:   model.Team{Name: "Silver Arrows", Color: "#27F4D2"},
			Driver: model.Driver{Name: "Lew Example", AbbrevName: "EXA"},
		},
	}
}

func SampleResults() []model.ResultRow {
	return []model.ResultRow{
		{Position: 1, CarID: "1", Name: "Max Tester", Team: "Blue Racing",
			Time: "1:30:12.345", Status: "Finished", Points: 25},
		{Position: 2, CarID: "44", Name: "Lew Example", Team: "Silver Arrows",
			Time: "+5.123", Status: "Finished", Points: 18},
		{Position: 3, CarID: "16", Name: "Carlo Rosso", Team: "Red Corse",
			Time: "+12.789", Status: "Finished", Points: 15},
	}
}

func SampleStandings() []model.StandingRow {
	return []model.StandingRow{
		{Position: 1, Name: "Max Tester", Team: "Blue Racing", Points: 110, Wins: 3},
		{Position: 2, Name: "Lew Example", Team: "Silver Arrows", Points: 92, Wins: 1},
		{Position: 3, Name: "Carlo Rosso", Team: "Red Corse", Points: 81, Wins: 1},
	}
}

func SampleLaps() []model.Lap {
	return []model.Lap{
		{CarID: "1", LapNumber: 1, LapTimeSecs: 92.4, Quick: true},
		{CarID: "1", LapNumber: 2, LapTimeSecs: 91.8, Quick: true},
		{CarID: "16", LapNumber: 1, LapTimeSecs: 93.1, Quick: true},
		{CarID: "16", LapNumber: 2, LapTimeSecs: 92.9, Quick: true},
		{CarID: "44", LapNumber: 1, LapTimeSecs: 92.7, Quick: true},
		{CarID: "44", LapNumber: 2, LapTimeSecs: 108.3, Quick: false},
	}
}

// SampleTelemetry returns irregularly spaced samples of a car driving a
// straight line from origin with the given speed offset.
func SampleTelemetry(offset float64) []model.TelemetrySample {
	times := []float64{0, 1.3, 2.1, 3.6, 4.4, 6.0, 7.1, 8.5, 10.0}
	ret := make([]model.TelemetrySample, 0, len(times))
	for i, t := range times {
		drs := 1
		if i%3 == 0 {
			drs = 12
		}
		ret = append(ret, model.TelemetrySample{
			TimeSecs:  t,
			X:         t * 10,
			Y:         t * 5,
			Speed:     200 + offset + t,
			Gear:      5 + i%3,
			DRS:       drs,
			Distance:  t * 55,
			LapNumber: 1 + int(t/5),
		})
	}
	return ret
}

// SampleOutline is a unit square track outline.
func SampleOutline() []model.TelemetrySample {
	pts := [][2]float64{{0, 0}, {100, 0}, {100, 80}, {0, 80}, {0, 0}}
	ret := make([]model.TelemetrySample, 0, len(pts))
	for i, p := range pts {
		ret = append(ret, model.TelemetrySample{
			TimeSecs: float64(i), X: p[0], Y: p[1],
			Speed: 150, Gear: 4, DRS: 1,
			Distance: float64(i) * 90, LapNumber: 1,
		})
	}
	return ret
}

// Provider is an in-memory session.Provider for tests. Zero value entries
// fall back to the sample data above; TelemetryErrs and RefLapErr inject
// failures per car resp. for the reference lap.
type Provider struct {
	EventData     *model.Event
	ScheduleData  []model.Event
	ResultsData   []model.ResultRow
	StandingsData []model.StandingRow
	EntriesData   []model.CarEntry
	LapsData      []model.Lap
	Telemetry     map[string][]model.TelemetrySample
	TelemetryErrs map[string]error
	RefLap        []model.TelemetrySample
	RefLapErr     error
}

func NewProvider() *Provider {
	return &Provider{
		EventData:     SampleEvent(),
		ScheduleData:  SampleSchedule(),
		ResultsData:   SampleResults(),
		StandingsData: SampleStandings(),
		EntriesData:   SampleEntries(),
		LapsData:      SampleLaps(),
		Telemetry: map[string][]model.TelemetrySample{
			"1":  SampleTelemetry(20),
			"16": SampleTelemetry(10),
			"44": SampleTelemetry(0),
		},
		RefLap: SampleOutline(),
	}
}

func (p *Provider) Schedule(ctx context.Context) ([]model.Event, error) {
	return p.ScheduleData, nil
}

func (p *Provider) Event(ctx context.Context) (*model.Event, error) {
	return p.EventData, nil
}

func (p *Provider) Results(ctx context.Context) ([]model.ResultRow, error) {
	return p.ResultsData, nil
}

func (p *Provider) Standings(ctx context.Context) ([]model.StandingRow, error) {
	return p.StandingsData, nil
}

func (p *Provider) Entries(ctx context.Context) ([]model.CarEntry, error) {
	return p.EntriesData, nil
}

func (p *Provider) Laps(ctx context.Context) ([]model.Lap, error) {
	return p.LapsData, nil
}

func (p *Provider) CarTelemetry(
	ctx context.Context,
	carID string,
	scope model.ReplayScope,
) ([]model.TelemetrySample, error) {
	if err, ok := p.TelemetryErrs[carID]; ok {
		return nil, err
	}
	samples, ok := p.Telemetry[carID]
	if !ok {
		return nil, errors.New("no telemetry for car " + carID)
	}
	return samples, nil
}

func (p *Provider) ReferenceLap(ctx context.Context) ([]model.TelemetrySample, error) {
	if p.RefLapErr != nil {
		return nil, p.RefLapErr
	}
	return p.RefLap, nil
}
