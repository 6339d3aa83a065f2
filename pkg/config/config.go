package config

// this holds the resolved configuration values from CLI
var (
	LogLevel   string // sets the log level (zap log level values)
	LogFormat  string // text vs json
	LogFilters string // zapfilter rules for named loggers

	SessionFile string // path to the session data document (JSON)
	ListenAddr  string // listen addr for the dashboard server

	FullRaceStep    float64 // time grid step for full race replays (seconds)
	LapStep         float64 // time grid step for single lap replays (seconds)
	LapBuffer       float64 // extra time appended after the focus lap (seconds)
	FallbackLapSpan float64 // lap grid span when the focus lap duration is unknown

	ViewportPadding float64 // margin around the track extents (world units)
	GapCalibration  float64 // meters per second used by the rough gap estimate

	DRSActiveCodes   []int // telemetry codes reported while DRS is deployed
	DRSOpenThreshold int   // codes above this value also count as deployed

	MaxParallelResample int // max cars resampled concurrently (0 = number of CPUs)
)
