package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/log"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/config"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/render"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/frames"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
)

var (
	lap        int
	focusCarID string
	carIDs     []string
	outFile    string
	htmlFile   string
	demoMode   bool
	demoLaps   int
)

func NewReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "builds a replay animation from session data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildReplay(cmd)
		},
	}
	cmd.Flags().IntVar(&lap, "lap", 0,
		"lap to replay (0 means: full race)")
	cmd.Flags().StringVar(&focusCarID, "focus", "",
		"car id shown in the telemetry overlay")
	cmd.Flags().StringSliceVar(&carIDs, "cars", nil,
		"car ids to include (default: all)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "replay.json",
		"output file for the animation")
	cmd.Flags().StringVar(&htmlFile, "html", "",
		"also write a self-contained HTML player to this file")
	cmd.Flags().BoolVar(&demoMode, "demo", false,
		"use a generated demo session instead of a session file")
	cmd.Flags().IntVar(&demoLaps, "demo-laps", 5,
		"number of laps of the generated demo session")
	return cmd
}

func buildReplay(cmd *cobra.Command) error {
	provider, err := resolveProvider()
	if err != nil {
		return err
	}

	pipeline := replay.NewPipeline(provider,
		replay.WithFullRaceStep(config.FullRaceStep),
		replay.WithLapStep(config.LapStep),
		replay.WithLapBuffer(config.LapBuffer),
		replay.WithFallbackLapSpan(config.FallbackLapSpan),
		replay.WithDRSConfig(drsConfig()),
		replay.WithGapCalibration(config.GapCalibration),
		replay.WithViewportPadding(config.ViewportPadding),
		replay.WithMaxParallel(config.MaxParallelResample),
		replay.WithProgress(func(current, total int, carID string) {
			log.Info("preparing car data",
				log.Int("car", current), log.Int("of", total),
				log.String("carId", carID))
		}),
	)

	req := model.ReplayRequest{
		Scope:      model.LapScope(lap),
		CarIDs:     carIDs,
		FocusCarID: focusCarID,
	}
	anim, err := pipeline.BuildReplay(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("building replay: %w", err)
	}

	raw, err := json.MarshalIndent(anim, "", " ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outFile, err)
	}
	if htmlFile != "" {
		page, err := render.PlayerPage(anim)
		if err != nil {
			return err
		}
		if err := os.WriteFile(htmlFile, []byte(page), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", htmlFile, err)
		}
		log.Info("player page written", log.String("file", htmlFile))
	}
	log.Info("replay written",
		log.String("file", outFile),
		log.Int("frames", len(anim.Frames)),
		log.String("requestId", anim.RequestID))
	return nil
}

func resolveProvider() (session.Provider, error) {
	if demoMode {
		return session.NewDemoProvider(demoLaps, 1), nil
	}
	if strings.TrimSpace(config.SessionFile) == "" {
		return nil, fmt.Errorf("either --session-file or --demo is required")
	}
	return session.NewFileProvider(config.SessionFile)
}

func drsConfig() frames.DRSConfig {
	cfg := frames.DefaultDRSConfig()
	if len(config.DRSActiveCodes) > 0 {
		cfg.ActiveCodes = config.DRSActiveCodes
	}
	if config.DRSOpenThreshold > 0 {
		cfg.OpenThreshold = config.DRSOpenThreshold
	}
	return cfg
}
