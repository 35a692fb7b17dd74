package client

import (
	"errors"

	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

var ErrNotFound = errors.New("not found")

// Hours is the tick list and day order served by the scheduler.
type Hours struct {
	Hours []schedule.HourOfDay `json:"hours"`
	Days  []schedule.DayOfWeek `json:"days"`
}
