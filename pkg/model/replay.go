package model

// ReplayScope selects the time window of a replay request.
// Lap 0 means the full race; any other value replays that single lap.
type ReplayScope struct {
	Lap int `json:"lap"`
}

func FullRaceScope() ReplayScope { return ReplayScope{} }

func LapScope(lap int) ReplayScope { return ReplayScope{Lap: lap} }

func (s ReplayScope) FullRace() bool { return s.Lap == 0 }

// ReplayRequest is the request boundary of the replay pipeline.
type ReplayRequest struct {
	Scope      ReplayScope `json:"scope"`
	CarIDs     []string    `json:"carIds"`
	FocusCarID string      `json:"focusCarId"`
}

// TrackOutline is the fixed background polyline taken from the reference
// lap. It is shared by all frames and never resampled.
type TrackOutline struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Viewport is the fixed bounding box used by every frame of a replay.
type Viewport struct {
	XMin float64 `json:"xMin"`
	XMax float64 `json:"xMax"`
	YMin float64 `json:"yMin"`
	YMax float64 `json:"yMax"`
}

// CarState is one car's on-screen state within a frame.
type CarState struct {
	CarID  string  `json:"carId"`
	Abbrev string  `json:"abbrev"`
	Color  string  `json:"color"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// LeaderboardEntry is one ranked row of a frame's leaderboard.
// GapSecs is a rough visual aid derived from the distance deficit to the
// leader, not a timing accurate gap.
type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	CarID     string  `json:"carId"`
	Abbrev    string  `json:"abbrev"`
	Color     string  `json:"color"`
	LapNumber int     `json:"lapNumber"`
	Distance  float64 `json:"distance"`
	GapSecs   float64 `json:"gapSecs"`
}

// FocusSnapshot is the focus car's telemetry overlay for one frame.
type FocusSnapshot struct {
	CarID     string  `json:"carId"`
	Speed     float64 `json:"speed"`
	Gear      int     `json:"gear"`
	DRSOpen   bool    `json:"drsOpen"`
	LapNumber int     `json:"lapNumber"`
	Color     string  `json:"color"`
}

// Frame is the complete replay state at one grid timestamp. Cars without a
// defined position at this timestamp appear neither in Cars nor in the
// leaderboard.
type Frame struct {
	Index       int                `json:"index"`
	TimeSecs    float64            `json:"timeSecs"`
	Cars        []CarState         `json:"cars"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Focus       *FocusSnapshot     `json:"focus,omitempty"`
}

// Animation is the assembled, playable replay.
type Animation struct {
	RequestID string       `json:"requestId"`
	Scope     ReplayScope  `json:"scope"`
	Track     TrackOutline `json:"track"`
	Viewport  Viewport     `json:"viewport"`
	Frames    []Frame      `json:"frames"`
	// StepSecs is the grid step; FrameDuration the nominal playback delay
	// per frame in milliseconds
	StepSecs      float64 `json:"stepSecs"`
	FrameDuration int     `json:"frameDurationMs"`
}
