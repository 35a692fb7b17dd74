package availability

import (
	"sync"
	"time"

	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// MockStore is an in-memory AvailabilityStore for tests. Without Func
// overrides it behaves like the real store, keyed by player ID.
type MockStore struct {
	mu sync.Mutex

	Slots   map[string][]schedule.WeeklySlot
	TimeOff map[string][]schedule.TimeOffException

	ReplaceWeeklySlotsFunc func(playerID string, slots []schedule.WeeklySlot) ([]schedule.WeeklySlot, error)
	AddTimeOffFunc         func(playerID string, start, end time.Time, comment string) (schedule.TimeOffException, error)
	RemoveTimeOffFunc      func(playerID, timeOffID string) error

	ReplaceWeeklySlotsCalls []string
	AddTimeOffCalls         []string
	RemoveTimeOffCalls      []string
}

func NewMock() *MockStore {
	return &MockStore{
		Slots:   map[string][]schedule.WeeklySlot{},
		TimeOff: map[string][]schedule.TimeOffException{},
	}
}

func (m *MockStore) ReplaceWeeklySlots(playerID string, slots []schedule.WeeklySlot) ([]schedule.WeeklySlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceWeeklySlotsCalls = append(m.ReplaceWeeklySlotsCalls, playerID)
	if m.ReplaceWeeklySlotsFunc != nil {
		return m.ReplaceWeeklySlotsFunc(playerID, slots)
	}
	unique := dedupeSlots(slots)
	m.Slots[playerID] = unique
	return unique, nil
}

func (m *MockStore) GetWeeklySlots(playerID string) ([]schedule.WeeklySlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]schedule.WeeklySlot{}, m.Slots[playerID]...), nil
}

func (m *MockStore) ClearWeeklySlots(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Slots, playerID)
	return nil
}

func (m *MockStore) AddTimeOff(playerID string, start, end time.Time, comment string) (schedule.TimeOffException, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddTimeOffCalls = append(m.AddTimeOffCalls, playerID)
	if m.AddTimeOffFunc != nil {
		return m.AddTimeOffFunc(playerID, start, end, comment)
	}
	if !end.After(start) {
		return schedule.TimeOffException{}, ErrInvalidTimeOff
	}
	e := schedule.TimeOffException{ID: playerID + "-" + start.UTC().Format(time.RFC3339), StartTime: start, EndTime: end, Comment: comment}
	m.TimeOff[playerID] = append(m.TimeOff[playerID], e)
	return e, nil
}

func (m *MockStore) RemoveTimeOff(playerID, timeOffID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveTimeOffCalls = append(m.RemoveTimeOffCalls, timeOffID)
	if m.RemoveTimeOffFunc != nil {
		return m.RemoveTimeOffFunc(playerID, timeOffID)
	}
	list := m.TimeOff[playerID]
	for i, e := range list {
		if e.ID == timeOffID {
			m.TimeOff[playerID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrTimeOffNotFound
}

func (m *MockStore) GetTimeOff(playerID string, from, to time.Time) ([]schedule.TimeOffException, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []schedule.TimeOffException{}
	for _, e := range m.TimeOff[playerID] {
		if e.StartTime.Before(to) && e.EndTime.After(from) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockStore) GetAllTimeOff(playerID string) ([]schedule.TimeOffException, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]schedule.TimeOffException{}, m.TimeOff[playerID]...), nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Slots = map[string][]schedule.WeeklySlot{}
	m.TimeOff = map[string][]schedule.TimeOffException{}
}
