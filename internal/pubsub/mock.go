package pubsub

import (
	"sync"
)

// MockPubSubClient records published availability events in memory. It
// encodes every payload the way the real client does, so an event that
// could not cross the wire fails here too. It is safe for concurrent use.
type MockPubSubClient struct {
	mu        sync.Mutex
	projectID string

	SendMessageFunc    func(topic EventType, data any) error
	ProcessMessageFunc func(data []byte, returnValue any) error

	SendMessageCalls    []SendMessageCall
	ProcessMessageCalls []ProcessMessageCall
}

// SendMessageCall holds one publish. Payload is the encoded message body and
// is empty when encoding failed.
type SendMessageCall struct {
	Topic   EventType
	Data    any
	Payload []byte
}

// ProcessMessageCall holds the arguments for a call to ProcessMessage.
type ProcessMessageCall struct {
	Data        []byte
	ReturnValue any
}

// NewMock creates a mock client for projectID.
func NewMock(projectID string) *MockPubSubClient {
	return &MockPubSubClient{projectID: projectID}
}

func (m *MockPubSubClient) ProjectID() string {
	return m.projectID
}

// Reset clears all call records.
func (m *MockPubSubClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMessageCalls = nil
	m.ProcessMessageCalls = nil
}

// SendMessage encodes and records the event. SendMessageFunc, when set,
// decides the result after a successful encode.
func (m *MockPubSubClient) SendMessage(topic EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, err := Encode(data)
	m.SendMessageCalls = append(m.SendMessageCalls, SendMessageCall{Topic: topic, Data: data, Payload: payload})
	if err != nil {
		return err
	}
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(topic, data)
	}
	return nil
}

// ProcessMessage records the call and executes the mock function if provided.
// Without one it decodes like the real client.
func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProcessMessageCalls = append(m.ProcessMessageCalls, ProcessMessageCall{Data: data, ReturnValue: returnValue})
	if m.ProcessMessageFunc != nil {
		return m.ProcessMessageFunc(data, returnValue)
	}
	return Decode(data, returnValue)
}

// AvailabilityEvents returns the AvailabilityChanged events sent on their
// topic, in publish order. Events are decoded from the recorded payloads.
func (m *MockPubSubClient) AvailabilityEvents() []AvailabilityChanged {
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []AvailabilityChanged
	for _, call := range m.SendMessageCalls {
		if call.Topic != EventAvailabilityChanged || len(call.Payload) == 0 {
			continue
		}
		var event AvailabilityChanged
		if err := Decode(call.Payload, &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events
}

// EventsForTeam filters AvailabilityEvents down to one team.
func (m *MockPubSubClient) EventsForTeam(teamID string) []AvailabilityChanged {
	var out []AvailabilityChanged
	for _, event := range m.AvailabilityEvents() {
		if event.TeamID == teamID {
			out = append(out, event)
		}
	}
	return out
}
