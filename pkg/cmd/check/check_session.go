package check

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/log"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
)

// minReplaySamples is the smallest telemetry series the resampler accepts.
const minReplaySamples = 2

func NewCheckSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "validates a session document for replay readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := resolveProvider()
			if err != nil {
				return err
			}
			return checkSession(cmd.Context(), provider)
		},
	}
	addProviderFlags(cmd)
	return cmd
}

// checkSession reports per car whether the data suffices for a replay and
// flags session level problems (missing roster, missing reference lap).
func checkSession(ctx context.Context, provider session.Provider) error {
	logger := log.Named("check")

	entries, err := provider.Entries(ctx)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("session has no entries")
	}
	laps, err := provider.Laps(ctx)
	if err != nil {
		logger.Warn("lap summary unavailable", log.ErrorField(err))
	}

	roster := session.NewRoster(entries)
	problems := 0

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Car", "Driver", "Laps", "Samples", "Replay"})
	for _, carID := range roster.CarIDs() {
		carLaps := 0
		for _, lap := range laps {
			if lap.CarID == carID {
				carLaps++
			}
		}
		samples, err := provider.CarTelemetry(ctx, carID, model.FullRaceScope())
		verdict := "ok"
		switch {
		case err != nil:
			verdict = "no telemetry"
			problems++
		case usableSamples(samples) < minReplaySamples:
			verdict = fmt.Sprintf("only %d usable samples", usableSamples(samples))
			problems++
		}
		t.AppendRow(table.Row{
			carID, roster.DriverName(carID), carLaps, len(samples), verdict,
		})
	}
	fmt.Fprintln(os.Stdout, t.Render())

	if _, err := provider.ReferenceLap(ctx); err != nil {
		problems++
		logger.Error("no reference lap, track outline cannot be built",
			log.ErrorField(err))
	}
	if problems > 0 {
		return fmt.Errorf("session check found %d problem(s)", problems)
	}
	logger.Info("session check passed", log.Int("cars", len(entries)))
	return nil
}

// usableSamples counts samples that survive the resampler's time axis
// cleanup: strictly increasing timestamps.
func usableSamples(samples []model.TelemetrySample) int {
	count := 0
	last := 0.0
	for i, s := range samples {
		if i > 0 && s.TimeSecs <= last {
			continue
		}
		last = s.TimeSecs
		count++
	}
	return count
}
