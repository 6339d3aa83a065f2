package grid

import "math"

// TimeGrid is the shared, uniformly spaced sequence of timestamps all cars
// of one replay are resampled onto.
type TimeGrid struct {
	times []float64
	start float64
	step  float64
}

// New builds a grid covering [start, end) with the given step, matching
// half open interval semantics. A non positive step or an empty interval
// yields an empty grid.
func New(start, end, step float64) TimeGrid {
	if step <= 0 || end <= start {
		return TimeGrid{start: start, step: step}
	}
	n := int(math.Ceil((end - start) / step))
	times := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t := start + float64(i)*step
		if t >= end {
			break
		}
		times = append(times, t)
	}
	return TimeGrid{times: times, start: start, step: step}
}

func (g TimeGrid) Len() int         { return len(g.times) }
func (g TimeGrid) Step() float64    { return g.step }
func (g TimeGrid) Start() float64   { return g.start }
func (g TimeGrid) At(i int) float64 { return g.times[i] }
func (g TimeGrid) Times() []float64 { return g.times }

// IndexOf maps a timestamp to the nearest grid index, clamped to the grid
// bounds. Constant time.
func (g TimeGrid) IndexOf(t float64) int {
	if len(g.times) == 0 {
		return 0
	}
	idx := int(math.Round((t - g.start) / g.step))
	if idx < 0 {
		return 0
	}
	if idx >= len(g.times) {
		return len(g.times) - 1
	}
	return idx
}
