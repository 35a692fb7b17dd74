package planner

import (
	"time"

	"github.com/mauv0809/scrim-scheduler/internal/availability"
	"github.com/mauv0809/scrim-scheduler/internal/metrics"
	"github.com/mauv0809/scrim-scheduler/internal/pubsub"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// Planner loads roster and availability data, runs the grid engine and
// fans availability changes out to subscribers.
type Planner struct {
	roster       RosterStore
	availability availability.AvailabilityStore
	notifier     Notifier
	metrics      metrics.Metrics
	counters     metrics.CounterStore
	pubsub       pubsub.PubSubClient
	defaultZone  string
	week         []schedule.DayOfWeek
	now          func() time.Time
}

// Date is a calendar day with no zone attached. A grid resolves it in the
// zone it renders in, so the selected week does not depend on the caller's
// UTC offset.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate reads a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// In returns midday of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, loc)
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}

// GridResult is a rendered grid plus the context it was rendered in.
type GridResult struct {
	Player         *roster.Player            `json:"player,omitempty"`
	Team           *roster.Team              `json:"team,omitempty"`
	TimeZone       string                    `json:"timeZoneId"`
	WeekOf         time.Time                 `json:"weekOf"`
	FirstAvailable *Cell                     `json:"firstAvailable,omitempty"`
	Grid           *schedule.AvailabilityMap `json:"grid"`
}
