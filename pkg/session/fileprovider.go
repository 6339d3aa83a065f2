package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// sessionDocument is the on-disk layout consumed by FileProvider.
type sessionDocument struct {
	Schedule   []model.Event                      `json:"schedule"`
	Event      model.Event                        `json:"event"`
	Results    []model.ResultRow                  `json:"results"`
	Standings  []model.StandingRow                `json:"standings"`
	Entries    []model.CarEntry                   `json:"entries"`
	Laps       []model.Lap                        `json:"laps"`
	Telemetry  map[string][]model.TelemetrySample `json:"telemetry"`
	FastestLap struct {
		CarID     string `json:"carId"`
		LapNumber int    `json:"lapNumber"`
	} `json:"fastestLap"`
}

// FileProvider serves session data from a local JSON document. It backs the
// CLI and the tests; a real data provider would implement Provider against
// its own transport.
type FileProvider struct {
	doc sessionDocument
}

var _ Provider = (*FileProvider)(nil)

func NewFileProvider(path string) (*FileProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	return NewFileProviderFromBytes(raw)
}

func NewFileProviderFromBytes(raw []byte) (*FileProvider, error) {
	var doc sessionDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing session document: %w", err)
	}
	return &FileProvider{doc: doc}, nil
}

func (p *FileProvider) Schedule(_ context.Context) ([]model.Event, error) {
	return p.doc.Schedule, nil
}

func (p *FileProvider) Event(_ context.Context) (*model.Event, error) {
	ev := p.doc.Event
	return &ev, nil
}

func (p *FileProvider) Results(_ context.Context) ([]model.ResultRow, error) {
	return p.doc.Results, nil
}

func (p *FileProvider) Standings(_ context.Context) ([]model.StandingRow, error) {
	return p.doc.Standings, nil
}

func (p *FileProvider) Entries(_ context.Context) ([]model.CarEntry, error) {
	return p.doc.Entries, nil
}

func (p *FileProvider) Laps(_ context.Context) ([]model.Lap, error) {
	return p.doc.Laps, nil
}

func (p *FileProvider) CarTelemetry(
	_ context.Context,
	carID string,
	scope model.ReplayScope,
) ([]model.TelemetrySample, error) {
	samples, ok := p.doc.Telemetry[carID]
	if !ok || len(samples) == 0 {
		return nil, fmt.Errorf("no telemetry for car %s", carID)
	}
	if scope.FullRace() {
		return sortedByTime(samples), nil
	}
	lapSamples := make([]model.TelemetrySample, 0, len(samples))
	for _, s := range samples {
		if s.LapNumber == scope.Lap {
			lapSamples = append(lapSamples, s)
		}
	}
	if len(lapSamples) == 0 {
		return nil, fmt.Errorf("no telemetry for car %s on lap %d", carID, scope.Lap)
	}
	lapSamples = sortedByTime(lapSamples)
	// rebase to lap start so single lap replays start at t=0
	base := lapSamples[0].TimeSecs
	for i := range lapSamples {
		lapSamples[i].TimeSecs -= base
	}
	return lapSamples, nil
}

func (p *FileProvider) ReferenceLap(ctx context.Context) ([]model.TelemetrySample, error) {
	if p.doc.FastestLap.CarID == "" {
		return nil, fmt.Errorf("session document has no fastest lap reference")
	}
	return p.CarTelemetry(ctx,
		p.doc.FastestLap.CarID, model.LapScope(p.doc.FastestLap.LapNumber))
}

func sortedByTime(samples []model.TelemetrySample) []model.TelemetrySample {
	ret := make([]model.TelemetrySample, len(samples))
	copy(ret, samples)
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].TimeSecs < ret[j].TimeSecs
	})
	return ret
}
