package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayOfWeek is the short label a weekly slot recurs on.
type DayOfWeek string

const (
	Sunday    DayOfWeek = "Sun"
	Monday    DayOfWeek = "Mon"
	Tuesday   DayOfWeek = "Tue"
	Wednesday DayOfWeek = "Wed"
	Thursday  DayOfWeek = "Thu"
	Friday    DayOfWeek = "Fri"
	Saturday  DayOfWeek = "Sat"
)

// DaysInWeek is the number of grid columns.
const DaysInWeek = 7

var weekdayLabels = [DaysInWeek]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// DayOfWeekFromWeekday converts a time.Weekday into its label.
func DayOfWeekFromWeekday(wd time.Weekday) DayOfWeek {
	return weekdayLabels[wd]
}

// ParseDayOfWeek accepts short or long English day names, case-insensitive.
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	for _, d := range weekdayLabels {
		short := strings.ToLower(string(d))
		if t == short || t == strings.ToLower(d.Weekday().String()) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDay, s)
}

// Weekday returns the time.Weekday for the label. Unknown labels map to Sunday;
// use Valid to check first.
func (d DayOfWeek) Weekday() time.Weekday {
	for i, l := range weekdayLabels {
		if l == d {
			return time.Weekday(i)
		}
	}
	return time.Sunday
}

func (d DayOfWeek) Valid() bool {
	for _, l := range weekdayLabels {
		if l == d {
			return true
		}
	}
	return false
}

// Week returns the seven day labels starting at first.
func Week(first DayOfWeek) []DayOfWeek {
	start := int(first.Weekday())
	days := make([]DayOfWeek, 0, DaysInWeek)
	for i := 0; i < DaysInWeek; i++ {
		days = append(days, weekdayLabels[(start+i)%DaysInWeek])
	}
	return days
}

// WeeklySlot is a recurring availability interval. Slots are immutable values:
// editing one means removing it and adding a new one.
type WeeklySlot struct {
	DayOfWeek DayOfWeek `json:"dayOfWeek" validate:"required,oneof=Sun Mon Tue Wed Thu Fri Sat"`
	StartTime string    `json:"startTime" validate:"required,clock"`
	EndTime   string    `json:"endTime" validate:"required,clock"`
	TimeZone  string    `json:"timeZoneId" validate:"required,timezone"`
}

// slotNamespace scopes the structural slot digests.
var slotNamespace = uuid.MustParse("6f1c2d1e-8a43-4c55-9b0e-3d7f1f5a9c21")

// ID is a digest of the slot's fields. Two slots with equal fields share an ID.
func (s WeeklySlot) ID() string {
	key := strings.Join([]string{string(s.DayOfWeek), s.StartTime, s.EndTime, s.TimeZone}, "\x00")
	return uuid.NewSHA1(slotNamespace, []byte(key)).String()
}

// Validate checks that the slot can be projected: a known day, parseable
// clocks and a loadable zone.
func (s WeeklySlot) Validate() error {
	if !s.DayOfWeek.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDay, s.DayOfWeek)
	}
	if _, err := ParseClock(s.StartTime); err != nil {
		return err
	}
	if _, err := ParseClock(s.EndTime); err != nil {
		return err
	}
	_, err := LoadZone(s.TimeZone)
	return err
}

func (s WeeklySlot) Equal(o WeeklySlot) bool {
	return s.DayOfWeek == o.DayOfWeek &&
		s.StartTime == o.StartTime &&
		s.EndTime == o.EndTime &&
		s.TimeZone == o.TimeZone
}

// ParsedSlot is one occurrence of a WeeklySlot resolved to absolute instants.
// DayOfWeek is the day the occurrence starts on in the target zone.
type ParsedSlot struct {
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// TimeOffException marks a player unavailable between two absolute instants.
type TimeOffException struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Comment   string    `json:"comment,omitempty"`
}

// ShortComment truncates the comment to max runes, appending an ellipsis.
func (e TimeOffException) ShortComment(max int) string {
	r := []rune(e.Comment)
	if max <= 0 || len(r) <= max {
		return e.Comment
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// PlayerSchedule bundles one player's raw availability for team aggregation.
type PlayerSchedule struct {
	Player  string
	Slots   []WeeklySlot
	TimeOff []TimeOffException
}

// FirstAvailableFunc receives the first available cell of a grid build.
type FirstAvailableFunc func(day DayOfWeek, hour HourOfDay)
