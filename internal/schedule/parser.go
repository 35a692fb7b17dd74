package schedule

import (
	"fmt"
	"time"
)

// DateMap anchors each day label to a concrete calendar date within one
// seven-day window.
type DateMap map[DayOfWeek]time.Time

// NewDateMap returns local midnights in loc for the seven consecutive days
// starting at reference's calendar day in loc.
func NewDateMap(reference time.Time, loc *time.Location) DateMap {
	y, m, d := reference.In(loc).Date()
	dates := make(DateMap, DaysInWeek)
	for i := 0; i < DaysInWeek; i++ {
		day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		dates[DayOfWeekFromWeekday(day.Weekday())] = day
	}
	return dates
}

// ParseSlot resolves one weekly slot on referenceDate into absolute instants
// in target. The resulting day of week is read off the start instant in
// target, which may differ from the declared day.
func ParseSlot(slot WeeklySlot, referenceDate time.Time, target *time.Location) (ParsedSlot, error) {
	origin, err := LoadZone(slot.TimeZone)
	if err != nil {
		return ParsedSlot{}, err
	}
	startClock, err := ParseClock(slot.StartTime)
	if err != nil {
		return ParsedSlot{}, fmt.Errorf("slot %s start: %w", slot.ID(), err)
	}
	endClock, err := ParseClock(slot.EndTime)
	if err != nil {
		return ParsedSlot{}, fmt.Errorf("slot %s end: %w", slot.ID(), err)
	}

	start := ConvertSlotTimeToZone(startClock, origin, referenceDate, target)
	endRef := referenceDate
	if !endClock.IsEndOfDay() && endClock.Before(startClock) {
		// Overnight: the end falls on the next calendar day in the origin zone.
		y, m, d := referenceDate.Date()
		endRef = time.Date(y, m, d+1, 0, 0, 0, 0, referenceDate.Location())
	}
	end := ConvertSlotTimeToZone(endClock, origin, endRef, target)

	return ParsedSlot{
		DayOfWeek: DayOfWeekInZone(start, target),
		Start:     start,
		End:       end,
	}, nil
}

// ParseSlots resolves every slot against the reference date of its declared
// day. A missing date is an invariant violation and aborts the batch.
func ParseSlots(slots []WeeklySlot, dates DateMap, target *time.Location) ([]ParsedSlot, error) {
	parsed := make([]ParsedSlot, 0, len(slots))
	for _, slot := range slots {
		ref, ok := dates[slot.DayOfWeek]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingReferenceDate, slot.DayOfWeek)
		}
		p, err := ParseSlot(slot, ref, target)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}
