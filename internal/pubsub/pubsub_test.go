package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityChangedCodec(t *testing.T) {
	at := time.Date(2026, 3, 8, 7, 30, 0, 0, time.UTC)
	in := AvailabilityChanged{PlayerID: "p1", TeamID: "t1", Reason: ReasonTimeOffAdded, At: at}

	data, err := Encode(in)
	require.NoError(t, err)

	var out AvailabilityChanged
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, "p1", out.PlayerID)
	assert.Equal(t, "t1", out.TeamID)
	assert.Equal(t, ReasonTimeOffAdded, out.Reason)
	assert.True(t, at.Equal(out.At))
}

func TestDecode_Garbage(t *testing.T) {
	var out AvailabilityChanged
	assert.Error(t, Decode([]byte{0xc1}, &out))
}

func TestNoopClient(t *testing.T) {
	c := NewNoop()
	assert.NoError(t, c.SendMessage(EventAvailabilityChanged, AvailabilityChanged{TeamID: "t1"}))
	assert.Error(t, c.SendMessage(EventAvailabilityChanged, make(chan int)), "unencodable payloads still fail")
}

func TestMock_RecordsAndDecodes(t *testing.T) {
	m := NewMock("ignored")
	require.NoError(t, m.SendMessage(EventAvailabilityChanged, AvailabilityChanged{TeamID: "t1"}))
	require.Len(t, m.SendMessageCalls, 1)
	assert.Equal(t, EventAvailabilityChanged, m.SendMessageCalls[0].Topic)

	data, err := Encode(AvailabilityChanged{TeamID: "t2"})
	require.NoError(t, err)
	var out AvailabilityChanged
	require.NoError(t, m.ProcessMessage(data, &out))
	assert.Equal(t, "t2", out.TeamID)

	m.Reset()
	assert.Empty(t, m.SendMessageCalls)
}

func TestMock_AvailabilityEvents(t *testing.T) {
	m := NewMock("scrims")
	assert.Equal(t, "scrims", m.ProjectID())
	at := time.Date(2026, 1, 28, 15, 0, 0, 0, time.UTC)

	require.NoError(t, m.SendMessage(EventAvailabilityChanged, AvailabilityChanged{PlayerID: "amy", TeamID: "t1", Reason: ReasonSlotsReplaced, At: at}))
	require.NoError(t, m.SendMessage(EventAvailabilityChanged, AvailabilityChanged{PlayerID: "amy", TeamID: "t2", Reason: ReasonSlotsReplaced, At: at}))
	require.NoError(t, m.SendMessage(EventType("other"), AvailabilityChanged{TeamID: "t1"}))
	assert.Error(t, m.SendMessage(EventAvailabilityChanged, make(chan int)), "unencodable payloads fail like the real client")

	require.Len(t, m.SendMessageCalls, 4)
	assert.Empty(t, m.SendMessageCalls[3].Payload)

	events := m.AvailabilityEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "t1", events[0].TeamID)
	assert.Equal(t, "t2", events[1].TeamID)
	assert.True(t, at.Equal(events[0].At))

	t1 := m.EventsForTeam("t1")
	require.Len(t, t1, 1)
	assert.Equal(t, ReasonSlotsReplaced, t1[0].Reason)
	assert.Empty(t, m.EventsForTeam("t3"))
}

func TestMock_SendMessageFuncRunsAfterEncode(t *testing.T) {
	m := NewMock("scrims")
	called := false
	m.SendMessageFunc = func(topic EventType, data any) error {
		called = true
		return nil
	}

	assert.Error(t, m.SendMessage(EventAvailabilityChanged, make(chan int)))
	assert.False(t, called)
	assert.NoError(t, m.SendMessage(EventAvailabilityChanged, AvailabilityChanged{TeamID: "t1"}))
	assert.True(t, called)
}
