package notifier

import (
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// Posts a team's weekly overlap summary to the configured channel.
	SendTeamAvailability(team roster.Team, grid *schedule.AvailabilityMap, best []BestHour, zone string, dryRun bool) error

	// For formatting responses for slash commands
	FormatTeamAvailabilityResponse(team roster.Team, best []BestHour, zone string) (any, error)
	FormatTeamNotFoundResponse(query string) (any, error)
}

// BestHour is one grid cell ranked by how many players are free in it.
type BestHour struct {
	Day     schedule.DayOfWeek `json:"day"`
	Hour    schedule.HourOfDay `json:"hour"`
	Players []string           `json:"players"`
}
