package check

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/session"
)

var lapsCarID string

func NewDisplayLapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laps",
		Short: "display the lap summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := resolveProvider()
			if err != nil {
				return err
			}
			return displayLaps(cmd.Context(), provider)
		},
	}
	addProviderFlags(cmd)
	cmd.Flags().StringVar(&lapsCarID, "car", "", "show only this car's laps")
	return cmd
}

func displayLaps(ctx context.Context, provider session.Provider) error {
	entries, err := provider.Entries(ctx)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	laps, err := provider.Laps(ctx)
	if err != nil {
		return fmt.Errorf("loading laps: %w", err)
	}
	if lapsCarID != "" {
		laps = lo.Filter(laps, func(l model.Lap, _ int) bool {
			return l.CarID == lapsCarID
		})
	}
	sort.SliceStable(laps, func(i, j int) bool {
		if laps[i].CarID != laps[j].CarID {
			return laps[i].CarID < laps[j].CarID
		}
		return laps[i].LapNumber < laps[j].LapNumber
	})

	roster := session.NewRoster(entries)
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Car", "Driver", "Lap", "Time", "Quick"})
	for _, lap := range laps {
		t.AppendRow(table.Row{
			lap.CarID, roster.Abbrev(lap.CarID), lap.LapNumber,
			fmt.Sprintf("%.3f", lap.LapTimeSecs), lap.Quick,
		})
	}
	fmt.Fprintln(os.Stdout, t.Render())
	return nil
}
