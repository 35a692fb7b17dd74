package roster

// RosterStore defines the interface for interacting with players, teams and franchises.
type RosterStore interface {
	AddPlayer(player Player) (Player, error)
	GetPlayer(playerID string) (Player, error)
	GetAllPlayers() ([]Player, error)
	UpdatePlayerTimeZone(playerID, timeZone string) error
	AddFranchise(name string) (Franchise, error)
	GetFranchises() ([]Franchise, error)
	AddTeam(name, franchiseID string) (Team, error)
	GetTeam(teamID string) (Team, error)
	// FindTeam resolves a team by ID or, failing that, by case-insensitive name.
	FindTeam(query string) (Team, error)
	GetTeamsByFranchise(franchiseID string) ([]Team, error)
	GetTeamsForPlayer(playerID string) ([]Team, error)
	AddTeamMember(teamID, playerID string) error
	RemoveTeamMember(teamID, playerID string) error
	GetTeamMembers(teamID string) ([]Player, error)
	Clear()
}
