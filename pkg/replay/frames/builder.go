package frames

import (
	"sort"

	"github.com/samber/lo"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/grid"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
)

// DRSConfig decides whether a raw DRS telemetry code means "wing open".
// Providers report deployment with a small set of codes which varies by
// provider version; codes above OpenThreshold are treated as open as a
// fallback for unknown revisions.
type DRSConfig struct {
	ActiveCodes   []int
	OpenThreshold int
}

// DefaultDRSConfig matches the commonly observed provider codes.
func DefaultDRSConfig() DRSConfig {
	return DRSConfig{ActiveCodes: []int{10, 12, 14}, OpenThreshold: 8}
}

func (c DRSConfig) Open(code int) bool {
	if lo.Contains(c.ActiveCodes, code) {
		return true
	}
	return c.OpenThreshold > 0 && code > c.OpenThreshold
}

// DefaultGapCalibration is the m/s divisor of the gap estimate.
const DefaultGapCalibration = 55.0

// Builder assembles one Frame per grid timestamp from the resampled car
// tracks. Frame content is a pure function of (tracks, index, focus car);
// the builder holds no mutable state between frames.
type Builder struct {
	roster         *session.Roster
	focusCarID     string
	drs            DRSConfig
	gapCalibration float64
}

type Option func(*Builder)

func WithFocusCar(carID string) Option {
	return func(b *Builder) { b.focusCarID = carID }
}

func WithDRSConfig(cfg DRSConfig) Option {
	return func(b *Builder) { b.drs = cfg }
}

// WithGapCalibration sets the m/s constant used to turn a distance deficit
// into the approximate gap shown on the leaderboard.
func WithGapCalibration(metersPerSecond float64) Option {
	return func(b *Builder) { b.gapCalibration = metersPerSecond }
}

func NewBuilder(roster *session.Roster, opts ...Option) *Builder {
	b := &Builder{
		roster:         roster,
		drs:            DefaultDRSConfig(),
		gapCalibration: DefaultGapCalibration,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildFrames produces the ordered frame sequence for the grid.
// tracks must be sorted by car id; the ordering guarantees byte identical
// output across runs with identical inputs.
func (b *Builder) BuildFrames(tracks []*model.CarTrack, g grid.TimeGrid) []model.Frame {
	ret := make([]model.Frame, g.Len())
	for i := range ret {
		ret[i] = b.buildFrame(tracks, i, g.At(i))
	}
	return ret
}

func (b *Builder) buildFrame(tracks []*model.CarTrack, i int, t float64) model.Frame {
	frame := model.Frame{Index: i, TimeSecs: t}
	for _, track := range tracks {
		if !track.Defined(i) {
			// outside the car's recorded range: not on track, not ranked
			continue
		}
		frame.Cars = append(frame.Cars, model.CarState{
			CarID:  track.CarID,
			Abbrev: b.roster.Abbrev(track.CarID),
			Color:  b.roster.Color(track.CarID),
			X:      track.X[i],
			Y:      track.Y[i],
		})
		frame.Leaderboard = append(frame.Leaderboard, model.LeaderboardEntry{
			CarID:     track.CarID,
			Abbrev:    b.roster.Abbrev(track.CarID),
			Color:     b.roster.Color(track.CarID),
			LapNumber: track.LapNumber[i],
			Distance:  track.Distance[i],
		})
		if track.CarID == b.focusCarID {
			frame.Focus = &model.FocusSnapshot{
				CarID:     track.CarID,
				Speed:     track.Speed[i],
				Gear:      track.Gear[i],
				DRSOpen:   b.drs.Open(track.DRS[i]),
				LapNumber: track.LapNumber[i],
				Color:     b.roster.Color(track.CarID),
			}
		}
	}
	b.rankLeaderboard(frame.Leaderboard)
	return frame
}

// rankLeaderboard orders by (lap, distance) descending with the car id as
// a deterministic tie breaker, assigns ranks 1..N and fills in the gap
// estimate.
func (b *Builder) rankLeaderboard(entries []model.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].LapNumber != entries[j].LapNumber {
			return entries[i].LapNumber > entries[j].LapNumber
		}
		if entries[i].Distance != entries[j].Distance {
			return entries[i].Distance > entries[j].Distance
		}
		return entries[i].CarID < entries[j].CarID
	})
	for i := range entries {
		entries[i].Rank = i + 1
		if i > 0 && b.gapCalibration > 0 {
			// rough visual aid only: distance deficit over a fixed m/s
			// constant, not a timing accurate gap
			entries[i].GapSecs = (entries[0].Distance - entries[i].Distance) /
				b.gapCalibration
		}
	}
}
