package dashboard

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/log"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/config"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/replay/frames"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/web"
)

var (
	demoMode bool
	demoLaps int
)

func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "starts the dashboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startDashboard(cmd)
		},
	}
	cmd.Flags().StringVarP(&config.ListenAddr,
		"listen-addr",
		"a",
		"localhost:8080",
		"dashboard listen address")
	cmd.Flags().BoolVar(&demoMode, "demo", false,
		"serve a generated demo session instead of a session file")
	cmd.Flags().IntVar(&demoLaps, "demo-laps", 5,
		"number of laps of the generated demo session")
	return cmd
}

func startDashboard(cmd *cobra.Command) error {
	provider, err := resolveProvider()
	if err != nil {
		return err
	}

	drs := frames.DefaultDRSConfig()
	if len(config.DRSActiveCodes) > 0 {
		drs.ActiveCodes = config.DRSActiveCodes
	}
	if config.DRSOpenThreshold > 0 {
		drs.OpenThreshold = config.DRSOpenThreshold
	}
	pipeline := replay.NewPipeline(provider,
		replay.WithFullRaceStep(config.FullRaceStep),
		replay.WithLapStep(config.LapStep),
		replay.WithLapBuffer(config.LapBuffer),
		replay.WithFallbackLapSpan(config.FallbackLapSpan),
		replay.WithDRSConfig(drs),
		replay.WithGapCalibration(config.GapCalibration),
		replay.WithViewportPadding(config.ViewportPadding),
		replay.WithMaxParallel(config.MaxParallelResample),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := web.NewWebServer(provider, pipeline, config.ListenAddr)
	if err := server.Start(ctx); err != nil {
		return err
	}
	log.Info("dashboard stopped")
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
