package replay

import (
	"errors"
	"fmt"
)

// ErrNoData reports that no car had any valid frame after exclusions.
var ErrNoData = errors.New("no data to animate")

// TrackOutlineError reports a failed reference lap fetch. Without a track
// outline no replay can be built, so this aborts the whole request.
type TrackOutlineError struct {
	Cause error
}

func (e *TrackOutlineError) Error() string {
	return fmt.Sprintf("cannot build replay: no usable track outline: %v", e.Cause)
}

func (e *TrackOutlineError) Unwrap() error { return e.Cause }

// LapNotCompletedError reports that the focus car has no usable data for
// the requested replay. The caller should retry with another lap or car.
type LapNotCompletedError struct {
	CarID string
	Lap   int
}

func (e *LapNotCompletedError) Error() string {
	if e.Lap > 0 {
		return fmt.Sprintf("lap %d not completed by car %s", e.Lap, e.CarID)
	}
	return fmt.Sprintf("no usable telemetry for focus car %s", e.CarID)
}
