package schedule

import (
	"fmt"
	"time"
)

// HoursInDay is the number of grid rows.
const HoursInDay = 24

// HourOfDay is one of the 25 canonical ticks 0..24. Tick 24 stands for
// midnight of the next day and is only used as an upper bound.
type HourOfDay struct {
	Hour    int    `json:"hour"`
	Value   string `json:"value"`
	Label24 string `json:"label24"`
	Label12 string `json:"label12"`
}

func newHourOfDay(h int) HourOfDay {
	suffix := "AM"
	h12 := h % 12
	if h%24 >= 12 {
		suffix = "PM"
	}
	if h12 == 0 {
		h12 = 12
	}
	return HourOfDay{
		Hour:    h,
		Value:   fmt.Sprintf("%02d:00:00", h),
		Label24: fmt.Sprintf("%02d:00", h),
		Label12: fmt.Sprintf("%d:00 %s", h12, suffix),
	}
}

var hoursOfDay = func() []HourOfDay {
	hours := make([]HourOfDay, 0, HoursInDay+1)
	for h := 0; h <= HoursInDay; h++ {
		hours = append(hours, newHourOfDay(h))
	}
	return hours
}()

// HoursOfDay returns all 25 ticks. The slice is a copy.
func HoursOfDay() []HourOfDay {
	out := make([]HourOfDay, len(hoursOfDay))
	copy(out, hoursOfDay)
	return out
}

// HourByValue finds the tick whose Value (HH:00:00) matches.
func HourByValue(v string) (HourOfDay, error) {
	for _, h := range hoursOfDay {
		if h.Value == v {
			return h, nil
		}
	}
	return HourOfDay{}, fmt.Errorf("%w: %q", ErrUnknownHour, v)
}

// IsEndSentinel reports whether the tick is the 24:00 upper bound.
func (h HourOfDay) IsEndSentinel() bool {
	return h.Hour == HoursInDay
}

// Clock returns the tick as a wall-clock value. Tick 24 maps to 00:00:00 and
// must be applied to the following day.
func (h HourOfDay) Clock() Clock {
	return Clock{Hour: h.Hour % HoursInDay}
}

// SlotTime is the value to persist as a slot boundary. Tick 24 is stored as
// the 23:59:59 end-of-day sentinel.
func (h HourOfDay) SlotTime() string {
	if h.IsEndSentinel() {
		return EndOfDay.String()
	}
	return h.Value
}

// PossibleEndHours lists the ticks a slot starting at start may end on.
func PossibleEndHours(start HourOfDay) []HourOfDay {
	var out []HourOfDay
	for _, h := range hoursOfDay {
		if h.Hour > start.Hour {
			out = append(out, h)
		}
	}
	return out
}

// instant returns the tick on day's calendar date in loc.
func (h HourOfDay) instant(day time.Time, loc *time.Location) time.Time {
	return TimeInZone(day, loc, h.Clock())
}
