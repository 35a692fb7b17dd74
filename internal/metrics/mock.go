package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	gridBuilds        int
	gridBuildFailures int
	buildDurations    []float64
	slotReplacements  int
	timeOffChanges    int
	eventsPublished   int
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		buildDurations: make([]float64, 0),
	}
}

func (m *Mock) IncGridBuilds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gridBuilds++
}

func (m *Mock) IncGridBuildFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gridBuildFailures++
}

func (m *Mock) ObserveGridBuildDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buildDurations = append(m.buildDurations, duration)
}

func (m *Mock) IncSlotReplacements() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slotReplacements++
}

func (m *Mock) IncTimeOffChanges() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeOffChanges++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// GridBuilds returns the number of times IncGridBuilds was called.
func (m *Mock) GridBuilds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gridBuilds
}

// GridBuildFailures returns the number of times IncGridBuildFailures was called.
func (m *Mock) GridBuildFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gridBuildFailures
}

// BuildDurations returns every observed grid build duration.
func (m *Mock) BuildDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.buildDurations...)
}

func (m *Mock) SlotReplacements() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slotReplacements
}

func (m *Mock) TimeOffChanges() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeOffChanges
}

func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// MockCounterStore is an in-memory CounterStore. Like the database store it
// ignores unknown keys and reports every tracked counter.
type MockCounterStore struct {
	mu             sync.Mutex
	counts         map[CounterKey]int
	IncrementCalls []CounterKey
}

func NewMockCounterStore() *MockCounterStore {
	return &MockCounterStore{counts: map[CounterKey]int{}}
}

func (m *MockCounterStore) Increment(key CounterKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IncrementCalls = append(m.IncrementCalls, key)
	if key.Valid() {
		m.counts[key]++
	}
}

func (m *MockCounterStore) GetAll() (map[CounterKey]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[CounterKey]int, len(CounterKeys))
	for _, k := range CounterKeys {
		out[k] = m.counts[k]
	}
	return out, nil
}

// Reset clears the counts and the recorded calls.
func (m *MockCounterStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = map[CounterKey]int{}
	m.IncrementCalls = nil
}
