package session

import (
	"context"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// Provider is the external session data source. Implementations are thin:
// acquisition, caching and transport all live outside this module.
type Provider interface {
	// Schedule returns the season schedule.
	Schedule(ctx context.Context) ([]model.Event, error)
	// Event returns the event this session belongs to.
	Event(ctx context.Context) (*model.Event, error)
	// Results returns the session classification.
	Results(ctx context.Context) ([]model.ResultRow, error)
	// Standings returns the championship standings.
	Standings(ctx context.Context) ([]model.StandingRow, error)
	// Entries returns the session roster.
	Entries(ctx context.Context) ([]model.CarEntry, error)
	// Laps returns the timing summary of all completed laps.
	Laps(ctx context.Context) ([]model.Lap, error)
	// CarTelemetry returns the car's ordered telemetry samples for the
	// requested scope. For a single lap the sample times are relative to
	// the lap start; for the full race they are session times.
	CarTelemetry(
		ctx context.Context,
		carID string,
		scope model.ReplayScope,
	) ([]model.TelemetrySample, error)
	// ReferenceLap returns the telemetry of the session's fastest lap,
	// used for the track outline.
	ReferenceLap(ctx context.Context) ([]model.TelemetrySample, error)
}
