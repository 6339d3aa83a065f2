package model

import "math"

// TelemetrySample is one raw telemetry record of a car.
// Samples are ordered by time per car; spacing is irregular and may have
// gaps (pit stops, missing sensor data).
type TelemetrySample struct {
	TimeSecs  float64 `json:"timeSecs"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Speed     float64 `json:"speed"`
	Gear      int     `json:"gear"`
	DRS       int     `json:"drs"`
	Distance  float64 `json:"distance"`
	LapNumber int     `json:"lapNumber"`
}

// CarTrack holds one car's telemetry resampled onto the shared time grid.
// All slices are indexed 1:1 with the grid. X/Y/Distance are NaN where the
// grid time lies outside the car's sampled range; presence on track is
// determined by Defined.
type CarTrack struct {
	CarID     string
	X         []float64
	Y         []float64
	Distance  []float64
	Speed     []float64
	Gear      []int
	DRS       []int
	LapNumber []int
}

// Defined reports whether the car has a resolved position at grid index i.
func (ct *CarTrack) Defined(i int) bool {
	return !math.IsNaN(ct.X[i]) && !math.IsNaN(ct.Y[i])
}
