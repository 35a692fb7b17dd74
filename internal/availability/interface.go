package availability

import (
	"time"

	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// AvailabilityStore persists each player's recurring weekly slots and time-off exceptions.
type AvailabilityStore interface {
	// ReplaceWeeklySlots swaps the player's whole weekly set for slots.
	// Structurally identical slots collapse into one; the stored set is returned.
	ReplaceWeeklySlots(playerID string, slots []schedule.WeeklySlot) ([]schedule.WeeklySlot, error)
	GetWeeklySlots(playerID string) ([]schedule.WeeklySlot, error)
	ClearWeeklySlots(playerID string) error

	AddTimeOff(playerID string, start, end time.Time, comment string) (schedule.TimeOffException, error)
	RemoveTimeOff(playerID, timeOffID string) error
	// GetTimeOff returns the exceptions overlapping [from, to).
	GetTimeOff(playerID string, from, to time.Time) ([]schedule.TimeOffException, error)
	GetAllTimeOff(playerID string) ([]schedule.TimeOffException, error)

	Clear()
}
