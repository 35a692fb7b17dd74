package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mauv0809/scrim-scheduler/internal/client"
	"github.com/mauv0809/scrim-scheduler/internal/planner"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(hoursCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(teamGridCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.NewClient(host).Health(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	},
}

var hoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "List the hour ticks a slot can start or end on",
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, err := client.NewClient(host).Hours(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, h := range hours.Hours {
			fmt.Fprintf(out, "%-8s %-5s %s\n", h.Value, h.Label24, h.Label12)
		}
		fmt.Fprintf(out, "week: %s\n", joinDays(hours.Days))
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players on the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		players, err := client.NewClient(host).ListPlayers(cmd.Context())
		if err != nil {
			return err
		}
		t := table.New().Border(lipgloss.NormalBorder()).Headers("ID", "NAME", "ZONE")
		for _, p := range players {
			t.Row(p.ID, p.Name, p.TimeZone)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

var gridCmd = &cobra.Command{
	Use:   "grid <player>",
	Short: "Show a player's weekly availability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reference, err := parseDate(date)
		if err != nil {
			return err
		}
		res, err := client.NewClient(host).PlayerGrid(cmd.Context(), args[0], zone, reference)
		if err != nil {
			return err
		}
		return printGrid(cmd.OutOrStdout(), res)
	},
}

var teamGridCmd = &cobra.Command{
	Use:   "team-grid <team>",
	Short: "Show how many team members are free in each hour of the week",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reference, err := parseDate(date)
		if err != nil {
			return err
		}
		res, err := client.NewClient(host).TeamGrid(cmd.Context(), args[0], zone, reference)
		if err != nil {
			return err
		}
		return printGrid(cmd.OutOrStdout(), res)
	},
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

func joinDays(days []schedule.DayOfWeek) string {
	labels := make([]string, 0, len(days))
	for _, d := range days {
		labels = append(labels, string(d))
	}
	return strings.Join(labels, " ")
}

// printGrid writes the 24×7 grid with one row per hour. Player grids mark
// free hours with "x"; team grids show the number of free players. Time off
// is marked with "~".
func printGrid(w io.Writer, res *planner.GridResult) error {
	if res.Grid == nil {
		return fmt.Errorf("server returned no grid")
	}
	team := res.Team != nil
	switch {
	case team:
		fmt.Fprintf(w, "%s (%d players)\n", res.Team.Name, len(res.Team.Members))
	case res.Player != nil:
		fmt.Fprintf(w, "%s\n", res.Player.Name)
	}
	fmt.Fprintf(w, "Week of %s, %s\n", res.WeekOf.Format("Mon 2 Jan 2006"), res.TimeZone)

	days := res.Grid.Days()
	headers := append([]string{""}, strings.Fields(joinDays(days))...)
	t := table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
	for _, h := range res.Grid.Hours() {
		row := []string{h.Label24}
		for _, d := range days {
			cell, _ := res.Grid.Cell(h.Hour, d)
			row = append(row, cellText(cell, team))
		}
		t.Row(row...)
	}
	fmt.Fprintln(w, t.String())

	if res.FirstAvailable != nil {
		fmt.Fprintf(w, "First available: %s %s\n", res.FirstAvailable.Day, res.FirstAvailable.Hour.Label24)
	}
	return nil
}

func cellText(s schedule.HourStatus, team bool) string {
	var text string
	switch {
	case team && len(s.AvailablePlayers) > 0:
		text = fmt.Sprint(len(s.AvailablePlayers))
	case !team && s.IsAvailable:
		text = "x"
	}
	if s.IsTimeOff {
		text += "~"
	}
	return text
}
