package roster

import (
	"fmt"
	"sync"
)

// MockStore is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc            func(player Player) (Player, error)
	GetPlayerFunc            func(playerID string) (Player, error)
	GetAllPlayersFunc        func() ([]Player, error)
	UpdatePlayerTimeZoneFunc func(playerID, timeZone string) error
	AddFranchiseFunc         func(name string) (Franchise, error)
	GetFranchisesFunc        func() ([]Franchise, error)
	AddTeamFunc              func(name, franchiseID string) (Team, error)
	GetTeamFunc              func(teamID string) (Team, error)
	FindTeamFunc             func(query string) (Team, error)
	GetTeamsByFranchiseFunc  func(franchiseID string) ([]Team, error)
	GetTeamsForPlayerFunc    func(playerID string) ([]Team, error)
	AddTeamMemberFunc        func(teamID, playerID string) error
	RemoveTeamMemberFunc     func(teamID, playerID string) error
	GetTeamMembersFunc       func(teamID string) ([]Player, error)
	ClearFunc                func()

	// Call records
	AddPlayerCalls            []Player
	GetPlayerCalls            []string
	GetTeamCalls              []string
	GetTeamsForPlayerCalls    []string
	UpdatePlayerTimeZoneCalls []struct {
		PlayerID string
		TimeZone string
	}
	AddTeamMemberCalls    []Membership
	RemoveTeamMemberCalls []Membership
}

// Membership records a team/player pair passed to the mock.
type Membership struct {
	TeamID   string
	PlayerID string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = nil
	m.GetPlayerCalls = nil
	m.GetTeamCalls = nil
	m.GetTeamsForPlayerCalls = nil
	m.UpdatePlayerTimeZoneCalls = nil
	m.AddTeamMemberCalls = nil
	m.RemoveTeamMemberCalls = nil
}

func (m *MockStore) AddPlayer(player Player) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, player)
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(player)
	}
	return player, nil
}

func (m *MockStore) GetPlayer(playerID string) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayerCalls = append(m.GetPlayerCalls, playerID)
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
}

func (m *MockStore) GetAllPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return []Player{}, nil
}

func (m *MockStore) UpdatePlayerTimeZone(playerID, timeZone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatePlayerTimeZoneCalls = append(m.UpdatePlayerTimeZoneCalls, struct {
		PlayerID string
		TimeZone string
	}{playerID, timeZone})
	if m.UpdatePlayerTimeZoneFunc != nil {
		return m.UpdatePlayerTimeZoneFunc(playerID, timeZone)
	}
	return nil
}

func (m *MockStore) AddFranchise(name string) (Franchise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddFranchiseFunc != nil {
		return m.AddFranchiseFunc(name)
	}
	return Franchise{ID: name, Name: name}, nil
}

func (m *MockStore) GetFranchises() ([]Franchise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFranchisesFunc != nil {
		return m.GetFranchisesFunc()
	}
	return nil, nil
}

func (m *MockStore) AddTeam(name, franchiseID string) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AddTeamFunc != nil {
		return m.AddTeamFunc(name, franchiseID)
	}
	return Team{ID: name, Name: name, FranchiseID: franchiseID, Members: []Player{}}, nil
}

func (m *MockStore) GetTeam(teamID string) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTeamCalls = append(m.GetTeamCalls, teamID)
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(teamID)
	}
	return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
}

func (m *MockStore) FindTeam(query string) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindTeamFunc != nil {
		return m.FindTeamFunc(query)
	}
	return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, query)
}

func (m *MockStore) GetTeamsByFranchise(franchiseID string) ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTeamsByFranchiseFunc != nil {
		return m.GetTeamsByFranchiseFunc(franchiseID)
	}
	return nil, nil
}

func (m *MockStore) GetTeamsForPlayer(playerID string) ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTeamsForPlayerCalls = append(m.GetTeamsForPlayerCalls, playerID)
	if m.GetTeamsForPlayerFunc != nil {
		return m.GetTeamsForPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) AddTeamMember(teamID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddTeamMemberCalls = append(m.AddTeamMemberCalls, Membership{teamID, playerID})
	if m.AddTeamMemberFunc != nil {
		return m.AddTeamMemberFunc(teamID, playerID)
	}
	return nil
}

func (m *MockStore) RemoveTeamMember(teamID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveTeamMemberCalls = append(m.RemoveTeamMemberCalls, Membership{teamID, playerID})
	if m.RemoveTeamMemberFunc != nil {
		return m.RemoveTeamMemberFunc(teamID, playerID)
	}
	return nil
}

func (m *MockStore) GetTeamMembers(teamID string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTeamMembersFunc != nil {
		return m.GetTeamMembersFunc(teamID)
	}
	return []Player{}, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
