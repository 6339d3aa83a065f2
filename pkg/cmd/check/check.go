package check

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/config"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "commands to check session data",
	}

	cmd.AddCommand(NewCheckSessionCmd())
	cmd.AddCommand(NewDisplayLapsCmd())

	return cmd
}

var (
	demoMode bool
	demoLaps int
)

func addProviderFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&demoMode, "demo", false,
		"use a generated demo session instead of a session file")
	cmd.Flags().IntVar(&demoLaps, "demo-laps", 5,
		"number of laps of the generated demo session")
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
