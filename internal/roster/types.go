package roster

import (
	"database/sql"
	"errors"
	"sync"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")
)

// store handles all database operations for the roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is a roster member with a display time zone preference.
type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TimeZone      string `json:"timeZoneId"`
	DiscordHandle string `json:"discordHandle,omitempty"`
}

type Franchise struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Team groups players whose availability is aggregated together.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	FranchiseID string   `json:"franchiseId,omitempty"`
	Members     []Player `json:"members"`
}

// PlayerIDs returns the IDs of the team's members in roster order.
func (t Team) PlayerIDs() []string {
	ids := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		ids = append(ids, m.ID)
	}
	return ids
}
