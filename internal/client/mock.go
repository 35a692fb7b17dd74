package client

import (
	"context"
	"sync"
	"time"

	"github.com/mauv0809/scrim-scheduler/internal/planner"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// MockClient is a mock implementation of the SchedulerClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	HealthFunc      func() error
	ListPlayersFunc func() ([]roster.Player, error)
	GridFunc        func(id, zone string, date time.Time) (*planner.GridResult, error)

	// Call records
	PlayerGridCalls []GridCall
	TeamGridCalls   []GridCall
}

// GridCall holds the arguments for a call to PlayerGrid or TeamGrid.
type GridCall struct {
	ID   string
	Zone string
	Date time.Time
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerGridCalls = nil
	m.TeamGridCalls = nil
}

func (m *MockClient) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc()
	}
	return nil
}

func (m *MockClient) Hours(ctx context.Context) (Hours, error) {
	return Hours{Hours: schedule.HoursOfDay(), Days: schedule.Week(schedule.Sunday)}, nil
}

func (m *MockClient) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc()
	}
	return []roster.Player{}, nil
}

func (m *MockClient) PlayerGrid(ctx context.Context, playerID, zone string, date time.Time) (*planner.GridResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerGridCalls = append(m.PlayerGridCalls, GridCall{playerID, zone, date})
	return m.grid(playerID, zone, date)
}

func (m *MockClient) TeamGrid(ctx context.Context, teamID, zone string, date time.Time) (*planner.GridResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamGridCalls = append(m.TeamGridCalls, GridCall{teamID, zone, date})
	return m.grid(teamID, zone, date)
}

func (m *MockClient) grid(id, zone string, date time.Time) (*planner.GridResult, error) {
	if m.GridFunc != nil {
		return m.GridFunc(id, zone, date)
	}
	if zone == "" {
		zone = "UTC"
	}
	return &planner.GridResult{
		TimeZone: zone,
		Grid:     schedule.EmptyGrid(schedule.HoursOfDay(), schedule.Week(schedule.Sunday)),
	}, nil
}
