package resample

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/grid"
)

// Resampler maps a car's raw telemetry samples onto a shared time grid.
//
// Continuous fields (x, y, distance, speed) are linearly interpolated.
// Outside the car's sampled time range x/y/distance resolve to NaN (no
// extrapolation) while speed clamps to 0. Discrete fields (gear, DRS,
// lap number) take the value of the most recent sample at or before the
// grid time; before the first sample the first value is used.
type Resampler struct{}

func NewResampler() *Resampler { return &Resampler{} }

// minSamples is the smallest series linear interpolation can work with.
const minSamples = 2

// Resample produces the car's CarTrack for the given grid.
// It returns an error when the car has too few usable samples; callers are
// expected to exclude such cars from the replay rather than abort.
func (r *Resampler) Resample(
	carID string,
	samples []model.TelemetrySample,
	g grid.TimeGrid,
) (*model.CarTrack, error) {
	s := sanitize(samples)
	if len(s.times) < minSamples {
		return nil, fmt.Errorf(
			"car %s: %d usable samples, need at least %d", carID, len(s.times), minSamples)
	}

	n := g.Len()
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

	var xFit, yFit, distFit, speedFit interp.PiecewiseLinear
	for _, f := range []struct {
		pl *interp.PiecewiseLinear
		ys []float64
	}{
		{&xFit, s.x}, {&yFit, s.y}, {&distFit, s.dist}, {&speedFit, s.speed},
	} {
		if err := f.pl.Fit(s.times, f.ys); err != nil {
			return nil, fmt.Errorf("car %s: fitting telemetry series: %w", carID, err)
		}
	}

	first, last := s.times[0], s.times[len(s.times)-1]
	for i := 0; i < n; i++ {
		t := g.At(i)
		if t < first || t > last {
			track.X[i] = math.NaN()
			track.Y[i] = math.NaN()
			track.Distance[i] = math.NaN()
			track.Speed[i] = 0
		} else {
			track.X[i] = xFit.Predict(t)
			track.Y[i] = yFit.Predict(t)
			track.Distance[i] = distFit.Predict(t)
			track.Speed[i] = speedFit.Predict(t)
		}

		// last observed value, clamped to the first sample
		j := lastAtOrBefore(s.times, t)
		track.Gear[i] = s.gear[j]
		track.DRS[i] = s.drs[j]
		track.LapNumber[i] = s.lap[j]
	}
	return track, nil
}

type series struct {
	times, x, y, dist, speed []float64
	gear, drs, lap           []int
}

// sanitize orders the samples by time and drops entries that would break
// the strictly increasing time axis linear interpolation requires
// (duplicate or reversed timestamps keep their first occurrence).
func sanitize(samples []model.TelemetrySample) series {
	ordered := make([]model.TelemetrySample, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TimeSecs < ordered[j].TimeSecs
	})

	s := series{}
	for _, raw := range ordered {
		if math.IsNaN(raw.TimeSecs) || math.IsNaN(raw.X) || math.IsNaN(raw.Y) {
			continue
		}
		if len(s.times) > 0 && raw.TimeSecs <= s.times[len(s.times)-1] {
			continue
		}
		s.times = append(s.times, raw.TimeSecs)
		s.x = append(s.x, raw.X)
		s.y = append(s.y, raw.Y)
		s.dist = append(s.dist, raw.Distance)
		s.speed = append(s.speed, raw.Speed)
		s.gear = append(s.gear, raw.Gear)
		s.drs = append(s.drs, raw.DRS)
		s.lap = append(s.lap, raw.LapNumber)
	}
	return s
}

// lastAtOrBefore returns the index of the latest time <= t, or 0 when t
// precedes the series.
func lastAtOrBefore(times []float64, t float64) int {
	idx := sort.Search(len(times), func(i int) bool { return times[i] > t }) - 1
	if idx < 0 {
		return 0
	}
	return idx
}
