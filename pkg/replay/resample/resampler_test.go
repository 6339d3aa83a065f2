package resample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/grid"
)

func sample(t, x, y, speed, dist float64, gear, drs, lap int) model.TelemetrySample {
	return model.TelemetrySample{
		TimeSecs: t, X: x, Y: y, Speed: speed,
		Gear: gear, DRS: drs, Distance: dist, LapNumber: lap,
	}
}

func TestResampleInterpolatesContinuousFields(t *testing.T) {
	samples := []model.TelemetrySample{
		sample(0, 0, 0, 200, 0, 5, 1, 1),
		sample(10, 100, 50, 300, 550, 7, 12, 2),
	}
	g := grid.New(0, 10, 2.5)

	track, err := NewResampler().Resample("44", samples, g)
	require.NoError(t, err)

	// t=5 is halfway between the two samples
	assert.InDelta(t, 50.0, track.X[2], 1e-9)
	assert.InDelta(t, 25.0, track.Y[2], 1e-9)
	assert.InDelta(t, 250.0, track.Speed[2], 1e-9)
	assert.InDelta(t, 275.0, track.Distance[2], 1e-9)
}

func TestResampleOutsideSampledRange(t *testing.T) {
	samples := []model.TelemetrySample{
		sample(4, 40, 20, 250, 220, 6, 1, 1),
		sample(6, 60, 30, 260, 330, 6, 1, 1),
	}
	g := grid.New(0, 10, 2.0)

	track, err := NewResampler().Resample("44", samples, g)
	require.NoError(t, err)

	// grid times 0 and 2 precede the first sample, 8 follows the last
	for _, i := range []int{0, 1, 4} {
		assert.True(t, math.IsNaN(track.X[i]), "X[%d]", i)
		assert.True(t, math.IsNaN(track.Y[i]), "Y[%d]", i)
		assert.True(t, math.IsNaN(track.Distance[i]), "Distance[%d]", i)
		assert.Zero(t, track.Speed[i], "Speed[%d]", i)
		assert.False(t, track.Defined(i), "Defined(%d)", i)
	}
	assert.True(t, track.Defined(2))
	assert.True(t, track.Defined(3))
}

func TestResampleDiscreteFieldsLastObserved(t *testing.T) {
	samples := []model.TelemetrySample{
		sample(2, 20, 10, 200, 110, 4, 1, 1),
		sample(5, 50, 25, 240, 275, 6, 12, 1),
		sample(9, 90, 45, 280, 495, 7, 1, 2),
	}
	g := grid.New(0, 12, 1.0)

	track, err := NewResampler().Resample("16", samples, g)
	require.NoError(t, err)

	tests := []struct {
		name string
		i    int
		gear int
		drs  int
		lap  int
	}{
		{name: "before first sample clamps to first", i: 0, gear: 4, drs: 1, lap: 1},
		{name: "exactly on a sample", i: 5, gear: 6, drs: 12, lap: 1},
		{name: "between samples holds previous", i: 7, gear: 6, drs: 12, lap: 1},
		{name: "after last sample holds last", i: 11, gear: 7, drs: 1, lap: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.gear, track.Gear[tt.i])
			assert.Equal(t, tt.drs, track.DRS[tt.i])
			assert.Equal(t, tt.lap, track.LapNumber[tt.i])
		})
	}
}

func TestResampleTooFewSamples(t *testing.T) {
	tests := []struct {
		name    string
		samples []model.TelemetrySample
	}{
		{name: "empty", samples: nil},
		{
			name:    "single sample",
			samples: []model.TelemetrySample{sample(0, 0, 0, 200, 0, 5, 1, 1)},
		},
		{
			name: "duplicate timestamps collapse to one",
			samples: []model.TelemetrySample{
				sample(3, 0, 0, 200, 0, 5, 1, 1),
				sample(3, 10, 5, 210, 55, 5, 1, 1),
			},
		},
		{
			name: "nan positions dropped",
			samples: []model.TelemetrySample{
				sample(0, math.NaN(), 0, 200, 0, 5, 1, 1),
				sample(2, 20, math.NaN(), 210, 110, 5, 1, 1),
				sample(4, 40, 20, 220, 220, 5, 1, 1),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResampler().Resample("63", tt.samples, grid.New(0, 10, 2.0))
			assert.Error(t, err)
		})
	}
}

func TestResampleUnorderedInput(t *testing.T) {
	samples := []model.TelemetrySample{
		sample(10, 100, 50, 300, 550, 7, 12, 2),
		sample(0, 0, 0, 200, 0, 5, 1, 1),
		sample(5, 50, 25, 250, 275, 6, 1, 1),
	}
	g := grid.New(0, 10, 5.0)

	track, err := NewResampler().Resample("44", samples, g)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, track.X[0], 1e-9)
	assert.InDelta(t, 50.0, track.X[1], 1e-9)
}

func TestResampleDeterministic(t *testing.T) {
	samples := []model.TelemetrySample{
		sample(0, 0, 0, 200, 0, 5, 1, 1),
		sample(3.3, 31, 17, 240, 180, 6, 12, 1),
		sample(7.7, 80, 41, 290, 430, 7, 1, 1),
	}
	g := grid.New(0, 8, 0.5)

	first, err := NewResampler().Resample("81", samples, g)
	require.NoError(t, err)
	second, err := NewResampler().Resample("81", samples, g)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
