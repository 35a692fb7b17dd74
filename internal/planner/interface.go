package planner

import (
	"github.com/mauv0809/scrim-scheduler/internal/notifier"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// RosterStore defines the roster operations required by the planner.
type RosterStore interface {
	GetPlayer(playerID string) (roster.Player, error)
	GetTeam(teamID string) (roster.Team, error)
	FindTeam(query string) (roster.Team, error)
	GetTeamsForPlayer(playerID string) ([]roster.Team, error)
	AddTeamMember(teamID, playerID string) error
	RemoveTeamMember(teamID, playerID string) error
}

// Notifier defines the notification operations required by the planner.
type Notifier interface {
	notifier.Notifier
}

var _ RosterStore = (roster.RosterStore)(nil)

// Cell addresses one grid cell.
type Cell struct {
	Day  schedule.DayOfWeek `json:"day"`
	Hour schedule.HourOfDay `json:"hour"`
}
