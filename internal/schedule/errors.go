package schedule

import "errors"

var (
	// ErrMissingReferenceDate is returned when a slot's day has no entry in the DateMap.
	ErrMissingReferenceDate = errors.New("no reference date for day of week")
	// ErrUnknownHour is returned when an hour value does not match any tick.
	ErrUnknownHour = errors.New("unknown hour of day")
	ErrUnknownDay  = errors.New("unknown day of week")
	ErrUnknownZone = errors.New("unknown time zone")
	// ErrInvalidClock is returned for time-of-day strings that are not HH:MM[:SS].
	ErrInvalidClock = errors.New("invalid time of day")
)
