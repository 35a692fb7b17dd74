package notifier

import (
	"sync"

	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendTeamAvailabilityCalls []SendTeamAvailabilityCall
	FormatTeamNotFoundCalls   []string

	// Spies
	SendTeamAvailabilityFunc           func(team roster.Team, best []BestHour, dryRun bool) error
	FormatTeamAvailabilityResponseFunc func(team roster.Team, best []BestHour, zone string) (any, error)
	FormatTeamNotFoundResponseFunc     func(query string) (any, error)

	LastTeamAvailabilityResponse any
}

// SendTeamAvailabilityCall holds the arguments for a call to SendTeamAvailability.
type SendTeamAvailabilityCall struct {
	Team   roster.Team
	Grid   *schedule.AvailabilityMap
	Best   []BestHour
	Zone   string
	DryRun bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTeamAvailabilityCalls = nil
	m.FormatTeamNotFoundCalls = nil
	m.LastTeamAvailabilityResponse = nil
}

func (m *Mock) SendTeamAvailability(team roster.Team, grid *schedule.AvailabilityMap, best []BestHour, zone string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTeamAvailabilityCalls = append(m.SendTeamAvailabilityCalls, SendTeamAvailabilityCall{team, grid, best, zone, dryRun})
	if m.SendTeamAvailabilityFunc != nil {
		return m.SendTeamAvailabilityFunc(team, best, dryRun)
	}
	return nil
}

func (m *Mock) FormatTeamAvailabilityResponse(team roster.Team, best []BestHour, zone string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatTeamAvailabilityResponseFunc != nil {
		resp, err := m.FormatTeamAvailabilityResponseFunc(team, best, zone)
		m.LastTeamAvailabilityResponse = resp
		return resp, err
	}
	return "formatted_team_availability", nil
}

func (m *Mock) FormatTeamNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatTeamNotFoundCalls = append(m.FormatTeamNotFoundCalls, query)
	if m.FormatTeamNotFoundResponseFunc != nil {
		return m.FormatTeamNotFoundResponseFunc(query)
	}
	return "formatted_team_not_found", nil
}
