package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

// Clock is a wall-clock time of day without a date.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// EndOfDay is the sentinel end time meaning "through midnight".
var EndOfDay = Clock{Hour: 23, Minute: 59, Second: 59}

// ParseClock parses "HH:MM:SS" or "HH:MM". Hour 24 is accepted only as 24:00:00.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	vals := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || len(p) != 2 {
			return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
		vals[i] = n
	}
	c := Clock{Hour: vals[0], Minute: vals[1], Second: vals[2]}
	if c.Minute > 59 || c.Second > 59 || c.Hour < 0 || c.Minute < 0 || c.Second < 0 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if c.Hour > 24 || (c.Hour == 24 && (c.Minute != 0 || c.Second != 0)) {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return c, nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

func (c Clock) seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// Before reports whether c is earlier in the day than o.
func (c Clock) Before(o Clock) bool {
	return c.seconds() < o.seconds()
}

// IsEndOfDay reports whether c is 23:59:59 or 24:00:00.
func (c Clock) IsEndOfDay() bool {
	return c == EndOfDay || c.Hour == 24
}

var (
	zoneMu    sync.RWMutex
	zoneCache = map[string]*time.Location{}
)

// LoadZone resolves an IANA zone identifier, caching the result.
func LoadZone(id string) (*time.Location, error) {
	zoneMu.RLock()
	loc, ok := zoneCache[id]
	zoneMu.RUnlock()
	if ok {
		return loc, nil
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrUnknownZone)
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownZone, id, err)
	}
	zoneMu.Lock()
	zoneCache[id] = loc
	zoneMu.Unlock()
	return loc, nil
}

// TimeInZone combines the calendar day of date (as seen in date's own location)
// with a wall clock in loc. The UTC offset is the one in effect at that wall
// time on that day, so DST transitions are honored.
func TimeInZone(date time.Time, loc *time.Location, c Clock) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, c.Second, 0, loc)
}

// DayOfWeekInZone returns the day of week of instant as observed in loc.
func DayOfWeekInZone(instant time.Time, loc *time.Location) DayOfWeek {
	return DayOfWeekFromWeekday(instant.In(loc).Weekday())
}

// ConvertSlotTimeToZone resolves a slot boundary declared in origin on the
// reference day and returns the instant expressed in target. The end-of-day
// sentinel resolves to midnight of the following day.
func ConvertSlotTimeToZone(c Clock, origin *time.Location, referenceDate time.Time, target *time.Location) time.Time {
	if c.IsEndOfDay() {
		y, m, d := referenceDate.Date()
		return time.Date(y, m, d+1, 0, 0, 0, 0, origin).In(target)
	}
	return TimeInZone(referenceDate, origin, c).In(target)
}

// StartOfDay returns local midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// EndOfDayInstant returns 23:59:59.999 of t's calendar day in loc.
func EndOfDayInstant(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}
