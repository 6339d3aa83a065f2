package render

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lightningcom/F1-Telemetry-and-match-replay/pkg/model"
)

// leaderboardDisplaySize truncates the leaderboard table; the underlying
// frame always carries the full ranking.
const leaderboardDisplaySize = 10

// ResultsTable renders the session classification.
func ResultsTable(results []model.ResultRow) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Pos", "Driver", "No", "Team", "Time", "Status", "Points"})
	for _, row := range results {
		t.AppendRow(table.Row{
			row.Position, row.Name, row.CarID, row.Team,
			row.Time, row.Status, row.Points,
		})
	}
	return t.Render()
}

// StandingsTable renders the championship standings.
func StandingsTable(standings []model.StandingRow) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Pos", "Driver", "Team", "Points", "Wins"})
	for _, row := range standings {
		t.AppendRow(table.Row{row.Position, row.Name, row.Team, row.Points, row.Wins})
	}
	return t.Render()
}

// ScheduleTable renders the season schedule.
func ScheduleTable(events []model.Event) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Round", "Event", "Location", "Country", "Date"})
	for _, ev := range events {
		t.AppendRow(table.Row{
			ev.Round, ev.Name, ev.Location, ev.Country,
			ev.Date.Format("02 Jan 2006"),
		})
	}
	return t.Render()
}

// LeaderboardTable renders a frame's leaderboard, truncated to the top 10.
func LeaderboardTable(frame model.Frame) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("Leaderboard @ %.1fs", frame.TimeSecs))
	t.AppendHeader(table.Row{"Rank", "Driver", "Lap", "Gap"})
	for _, entry := range frame.Leaderboard {
		if entry.Rank > leaderboardDisplaySize {
			break
		}
		gap := "-"
		if entry.Rank > 1 {
			gap = fmt.Sprintf("+%.1fs", entry.GapSecs)
		}
		t.AppendRow(table.Row{entry.Rank, entry.Abbrev, entry.LapNumber, gap})
	}
	return t.Render()
}
