package model

import "time"

// Event is one entry of the season schedule.
type Event struct {
	Round    int       `json:"round"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
	Country  string    `json:"country"`
	Date     time.Time `json:"date"`
	Sessions []string  `json:"sessions"`
}

// ResultRow is one row of the session classification.
type ResultRow struct {
	Position int     `json:"position"`
	CarID    string  `json:"carId"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Time     string  `json:"time"`
	Status   string  `json:"status"`
	Points   float64 `json:"points"`
}

// StandingRow is one row of the championship standings.
type StandingRow struct {
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Points   float64 `json:"points"`
	Wins     int     `json:"wins"`
}

// Lap holds the timing summary of one completed lap.
type Lap struct {
	CarID       string  `json:"carId"`
	LapNumber   int     `json:"lapNumber"`
	LapTimeSecs float64 `json:"lapTimeSecs"`
	// Quick marks laps without pit stops or obvious outliers,
	// used by the lap comparison charts
	Quick bool `json:"quick"`
}
