package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
// It doubles as the topic name.
type EventType string

const (
	EventAvailabilityChanged EventType = "availability-changed"
)

// Reasons carried by AvailabilityChanged.
const (
	ReasonSlotsReplaced  = "slots-replaced"
	ReasonSlotsCleared   = "slots-cleared"
	ReasonTimeOffAdded   = "time-off-added"
	ReasonTimeOffRemoved = "time-off-removed"
	ReasonRosterChanged  = "roster-changed"
)

// AvailabilityChanged is published once per affected team whenever a
// player's weekly slots, time off or team membership change.
type AvailabilityChanged struct {
	PlayerID string    `msgpack:"player_id" json:"playerId"`
	TeamID   string    `msgpack:"team_id" json:"teamId"`
	Reason   string    `msgpack:"reason" json:"reason"`
	At       time.Time `msgpack:"at" json:"at"`
}
