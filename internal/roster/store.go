package roster

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

// AddPlayer inserts a player. An ID is generated when the player has none and
// an empty time zone defaults to UTC.
func (s *store) AddPlayer(player Player) (Player, error) {
	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if player.TimeZone == "" {
		player.TimeZone = "UTC"
	}
	if _, err := schedule.LoadZone(player.TimeZone); err != nil {
		return Player{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO players (id, name, time_zone, discord_handle, created_at) VALUES (?, ?, ?, ?, ?)",
		player.ID, player.Name, player.TimeZone, nullString(player.DiscordHandle), time.Now().Unix(),
	)
	if err != nil {
		return Player{}, fmt.Errorf("failed to insert player %s: %w", player.Name, err)
	}
	log.Info("Added player", "id", player.ID, "name", player.Name, "timeZone", player.TimeZone)
	return player, nil
}

func (s *store) GetPlayer(playerID string) (Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, name, time_zone, discord_handle FROM players WHERE id = ?", playerID)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if err != nil {
		return Player{}, fmt.Errorf("failed to get player %s: %w", playerID, err)
	}
	return p, nil
}

func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, time_zone, discord_handle FROM players ORDER BY name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// UpdatePlayerTimeZone changes the zone a player's own grid is rendered in by default.
func (s *store) UpdatePlayerTimeZone(playerID, timeZone string) error {
	if _, err := schedule.LoadZone(timeZone); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE players SET time_zone = ? WHERE id = ?", timeZone, playerID)
	if err != nil {
		return fmt.Errorf("failed to update time zone for player %s: %w", playerID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	log.Info("Updated player time zone", "id", playerID, "timeZone", timeZone)
	return nil
}

func (s *store) AddFranchise(name string) (Franchise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := Franchise{ID: uuid.NewString(), Name: name}
	if _, err := s.db.Exec("INSERT INTO franchises (id, name, created_at) VALUES (?, ?, ?)", f.ID, f.Name, time.Now().Unix()); err != nil {
		return Franchise{}, fmt.Errorf("failed to insert franchise %s: %w", name, err)
	}
	log.Info("Added franchise", "id", f.ID, "name", f.Name)
	return f, nil
}

func (s *store) GetFranchises() ([]Franchise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name FROM franchises ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query franchises: %w", err)
	}
	defer rows.Close()

	var franchises []Franchise
	for rows.Next() {
		var f Franchise
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			log.Error("Failed to scan franchise row", "error", err)
			continue
		}
		franchises = append(franchises, f)
	}
	return franchises, rows.Err()
}

// AddTeam creates a team. franchiseID may be empty for independent teams.
func (s *store) AddTeam(name, franchiseID string) (Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Team{ID: uuid.NewString(), Name: name, FranchiseID: franchiseID, Members: []Player{}}
	_, err := s.db.Exec(
		"INSERT INTO teams (id, name, franchise_id, created_at) VALUES (?, ?, ?, ?)",
		t.ID, t.Name, nullString(franchiseID), time.Now().Unix(),
	)
	if err != nil {
		return Team{}, fmt.Errorf("failed to insert team %s: %w", name, err)
	}
	log.Info("Added team", "id", t.ID, "name", t.Name, "franchise", franchiseID)
	return t, nil
}

// GetTeam returns the team with its members loaded.
func (s *store) GetTeam(teamID string) (Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.getTeamLocked(teamID)
	if err != nil {
		return Team{}, err
	}
	t.Members, err = s.membersLocked(teamID)
	if err != nil {
		return Team{}, err
	}
	return t, nil
}

func (s *store) FindTeam(query string) (Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.TrimSpace(query)
	t, err := s.getTeamLocked(query)
	if errors.Is(err, ErrTeamNotFound) {
		var id string
		err = s.db.QueryRow("SELECT id FROM teams WHERE name = ? COLLATE NOCASE ORDER BY created_at LIMIT 1", query).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, query)
		}
		if err != nil {
			return Team{}, fmt.Errorf("failed to find team %s: %w", query, err)
		}
		t, err = s.getTeamLocked(id)
	}
	if err != nil {
		return Team{}, err
	}
	t.Members, err = s.membersLocked(t.ID)
	if err != nil {
		return Team{}, err
	}
	return t, nil
}

func (s *store) GetTeamsByFranchise(franchiseID string) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, franchise_id FROM teams WHERE franchise_id = ? ORDER BY name", franchiseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams for franchise %s: %w", franchiseID, err)
	}
	defer rows.Close()
	return s.collectTeamsLocked(rows)
}

// GetTeamsForPlayer returns every team the player is a member of.
func (s *store) GetTeamsForPlayer(playerID string) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.franchise_id
		FROM teams t
		JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.player_id = ?
		ORDER BY t.name
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams for player %s: %w", playerID, err)
	}
	defer rows.Close()
	return s.collectTeamsLocked(rows)
}

func (s *store) AddTeamMember(teamID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getTeamLocked(teamID); err != nil {
		return err
	}
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM players WHERE id = ?", playerID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up player %s: %w", playerID, err)
	}
	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	_, err := s.db.Exec(
		"INSERT INTO team_members (team_id, player_id, joined_at) VALUES (?, ?, ?) ON CONFLICT(team_id, player_id) DO NOTHING",
		teamID, playerID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to add player %s to team %s: %w", playerID, teamID, err)
	}
	log.Info("Added team member", "team", teamID, "player", playerID)
	return nil
}

func (s *store) RemoveTeamMember(teamID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM team_members WHERE team_id = ? AND player_id = ?", teamID, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove player %s from team %s: %w", playerID, teamID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s is not a member of team %s", ErrPlayerNotFound, playerID, teamID)
	}
	log.Info("Removed team member", "team", teamID, "player", playerID)
	return nil
}

func (s *store) GetTeamMembers(teamID string) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.getTeamLocked(teamID); err != nil {
		return nil, err
	}
	return s.membersLocked(teamID)
}

// Clear removes every roster row. Intended for tests and the seeder.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing roster", "error", err)
		return
	}
	for _, table := range []string{"team_members", "teams", "franchises", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing roster", "error", err)
	}
}

func (s *store) getTeamLocked(teamID string) (Team, error) {
	var (
		t           Team
		franchiseID sql.NullString
	)
	err := s.db.QueryRow("SELECT id, name, franchise_id FROM teams WHERE id = ?", teamID).Scan(&t.ID, &t.Name, &franchiseID)
	if errors.Is(err, sql.ErrNoRows) {
		return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	if err != nil {
		return Team{}, fmt.Errorf("failed to get team %s: %w", teamID, err)
	}
	t.FranchiseID = franchiseID.String
	return t, nil
}

func (s *store) membersLocked(teamID string) ([]Player, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.time_zone, p.discord_handle
		FROM players p
		JOIN team_members tm ON tm.player_id = p.id
		WHERE tm.team_id = ?
		ORDER BY p.name
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of team %s: %w", teamID, err)
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func (s *store) collectTeamsLocked(rows *sql.Rows) ([]Team, error) {
	var teams []Team
	for rows.Next() {
		var (
			t           Team
			franchiseID sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Name, &franchiseID); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		t.FranchiseID = franchiseID.String
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range teams {
		members, err := s.membersLocked(teams[i].ID)
		if err != nil {
			return nil, err
		}
		teams[i].Members = members
	}
	return teams, nil
}

// scanPlayer is a helper function to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (Player, error) {
	var (
		p       Player
		discord sql.NullString
	)
	if err := scanner.Scan(&p.ID, &p.Name, &p.TimeZone, &discord); err != nil {
		return Player{}, err
	}
	p.DiscordHandle = discord.String
	return p, nil
}

func scanPlayers(rows *sql.Rows) ([]Player, error) {
	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
