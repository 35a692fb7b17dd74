package schedule

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// HourStatus is the value of one grid cell. Cells are replaced, never mutated
// in place, so a status read from the grid is safe to keep.
type HourStatus struct {
	IsAvailable      bool     `json:"isAvailable"`
	IsTimeOff        bool     `json:"isTimeOff"`
	AvailablePlayers []string `json:"availablePlayers"`
}

// HasPlayer reports whether name is in the cell's player set.
func (s HourStatus) HasPlayer(name string) bool {
	i := sort.SearchStrings(s.AvailablePlayers, name)
	return i < len(s.AvailablePlayers) && s.AvailablePlayers[i] == name
}

func (s HourStatus) withPlayer(name string) HourStatus {
	if s.HasPlayer(name) {
		return s
	}
	players := make([]string, 0, len(s.AvailablePlayers)+1)
	players = append(players, s.AvailablePlayers...)
	players = append(players, name)
	sort.Strings(players)
	return HourStatus{IsAvailable: true, IsTimeOff: s.IsTimeOff, AvailablePlayers: players}
}

// AvailabilityMap is a dense hour × day grid addressed by (hourIndex, dayIndex).
type AvailabilityMap struct {
	hours    []HourOfDay
	days     []DayOfWeek
	cells    [][]HourStatus
	hourRows map[int]int
	dayCols  map[DayOfWeek]int
}

// EmptyGrid builds a grid with a row per tick below 24 and a column per day,
// every cell unavailable with no players.
func EmptyGrid(hours []HourOfDay, days []DayOfWeek) *AvailabilityMap {
	g := &AvailabilityMap{
		hourRows: make(map[int]int, len(hours)),
		dayCols:  make(map[DayOfWeek]int, len(days)),
	}
	for _, h := range hours {
		if h.IsEndSentinel() {
			continue
		}
		if _, dup := g.hourRows[h.Hour]; dup {
			continue
		}
		g.hourRows[h.Hour] = len(g.hours)
		g.hours = append(g.hours, h)
	}
	for _, d := range days {
		if _, dup := g.dayCols[d]; dup {
			continue
		}
		g.dayCols[d] = len(g.days)
		g.days = append(g.days, d)
	}
	g.cells = make([][]HourStatus, len(g.hours))
	for i := range g.cells {
		row := make([]HourStatus, len(g.days))
		for j := range row {
			row[j] = HourStatus{AvailablePlayers: []string{}}
		}
		g.cells[i] = row
	}
	return g
}

// Hours returns the grid's row ticks in order.
func (g *AvailabilityMap) Hours() []HourOfDay {
	return append([]HourOfDay(nil), g.hours...)
}

// Days returns the grid's columns in order.
func (g *AvailabilityMap) Days() []DayOfWeek {
	return append([]DayOfWeek(nil), g.days...)
}

// Len returns the number of cells.
func (g *AvailabilityMap) Len() int {
	return len(g.hours) * len(g.days)
}

// Cell returns the status at (hour, day). ok is false when either coordinate is
// not part of the grid.
func (g *AvailabilityMap) Cell(hour int, day DayOfWeek) (HourStatus, bool) {
	r, ok := g.hourRows[hour]
	if !ok {
		return HourStatus{}, false
	}
	c, ok := g.dayCols[day]
	if !ok {
		return HourStatus{}, false
	}
	return g.cells[r][c], true
}

func (g *AvailabilityMap) set(hour int, day DayOfWeek, s HourStatus) {
	r, ok := g.hourRows[hour]
	if !ok {
		return
	}
	c, ok := g.dayCols[day]
	if !ok {
		return
	}
	g.cells[r][c] = s
}

// Each visits every cell, hours outer and days inner.
func (g *AvailabilityMap) Each(fn func(hour HourOfDay, day DayOfWeek, s HourStatus)) {
	for r, h := range g.hours {
		for c, d := range g.days {
			fn(h, d, g.cells[r][c])
		}
	}
}

// FirstAvailable returns the first available cell in iteration order.
func (g *AvailabilityMap) FirstAvailable() (DayOfWeek, HourOfDay, bool) {
	for r, h := range g.hours {
		for c, d := range g.days {
			if g.cells[r][c].IsAvailable {
				return d, h, true
			}
		}
	}
	return "", HourOfDay{}, false
}

type gridDayJSON struct {
	Day DayOfWeek `json:"day"`
	HourStatus
}

type gridRowJSON struct {
	HourOfDay
	Days []gridDayJSON `json:"days"`
}

// MarshalJSON renders the grid as ordered rows so clients keep row and week order.
func (g *AvailabilityMap) MarshalJSON() ([]byte, error) {
	rows := make([]gridRowJSON, 0, len(g.hours))
	for r, h := range g.hours {
		row := gridRowJSON{HourOfDay: h, Days: make([]gridDayJSON, 0, len(g.days))}
		for c, d := range g.days {
			row.Days = append(row.Days, gridDayJSON{Day: d, HourStatus: g.cells[r][c]})
		}
		rows = append(rows, row)
	}
	return json.Marshal(rows)
}

// UnmarshalJSON reads the row form written by MarshalJSON.
func (g *AvailabilityMap) UnmarshalJSON(data []byte) error {
	var rows []gridRowJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	hours := make([]HourOfDay, 0, len(rows))
	var days []DayOfWeek
	for i, row := range rows {
		hours = append(hours, row.HourOfDay)
		if i == 0 {
			for _, d := range row.Days {
				days = append(days, d.Day)
			}
		}
	}
	*g = *EmptyGrid(hours, days)
	for _, row := range rows {
		for _, d := range row.Days {
			s := d.HourStatus
			if s.AvailablePlayers == nil {
				s.AvailablePlayers = []string{}
			}
			g.set(row.Hour, d.Day, s)
		}
	}
	return nil
}

// BuildPlayerGrid projects one player's weekly slots into target. Time off is
// an overlay: an overlapped cell stays available with IsTimeOff set. When days
// is empty the columns follow the date map from its reference day.
func BuildPlayerGrid(target *time.Location, hours []HourOfDay, days []DayOfWeek, slots []WeeklySlot, timeOff []TimeOffException, dates DateMap, onFirst FirstAvailableFunc) (*AvailabilityMap, error) {
	return buildGrid(target, hours, days, []PlayerSchedule{{Slots: slots, TimeOff: timeOff}}, dates, false, onFirst)
}

// BuildTeamGrid aggregates several players. A player on time off contributes
// nothing to the cell.
func BuildTeamGrid(target *time.Location, hours []HourOfDay, days []DayOfWeek, players []PlayerSchedule, dates DateMap, onFirst FirstAvailableFunc) (*AvailabilityMap, error) {
	return buildGrid(target, hours, days, players, dates, true, onFirst)
}

func buildGrid(target *time.Location, hours []HourOfDay, days []DayOfWeek, players []PlayerSchedule, dates DateMap, team bool, onFirst FirstAvailableFunc) (*AvailabilityMap, error) {
	if len(days) == 0 {
		days = gridDays(dates)
	}
	grid := EmptyGrid(hours, days)

	for _, p := range players {
		parsed, err := ParseSlots(p.Slots, dates, target)
		if err != nil {
			if p.Player != "" {
				return nil, fmt.Errorf("player %s: %w", p.Player, err)
			}
			return nil, err
		}
		for _, ps := range parsed {
			for _, c := range slotCells(ps, grid.hours, target) {
				timeOff := cellHasTimeOff(columnDate(c, dates, target), c.hour, p.TimeOff, target)
				cur, _ := grid.Cell(c.hour.Hour, c.day)
				if team {
					if timeOff {
						continue
					}
					grid.set(c.hour.Hour, c.day, cur.withPlayer(p.Player))
					continue
				}
				next := cur
				if p.Player != "" {
					next = cur.withPlayer(p.Player)
				}
				next.IsAvailable = true
				next.IsTimeOff = timeOff
				grid.set(c.hour.Hour, c.day, next)
			}
		}
	}

	if onFirst != nil {
		if day, hour, ok := grid.FirstAvailable(); ok {
			onFirst(day, hour)
		}
	}
	return grid, nil
}

// gridDays orders the date map's days chronologically, which is the week
// rotation starting at the reference day.
func gridDays(dates DateMap) []DayOfWeek {
	days := make([]DayOfWeek, 0, len(dates))
	for d := range dates {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return dates[days[i]].Before(dates[days[j]])
	})
	return days
}

type slotCell struct {
	day  DayOfWeek
	date time.Time
	hour HourOfDay
}

// slotCells lists the ticks whose instant lies in [Start, End). Ticks are built
// on the slot's local start date in target and on following dates while the
// slot is still running.
func slotCells(ps ParsedSlot, hours []HourOfDay, target *time.Location) []slotCell {
	if !ps.End.After(ps.Start) {
		return nil
	}
	var cells []slotCell
	day := StartOfDay(ps.Start, target)
	for !day.After(ps.End) {
		dow := DayOfWeekFromWeekday(day.Weekday())
		for _, h := range hours {
			t := h.instant(day, target)
			if !t.Before(ps.Start) && t.Before(ps.End) {
				cells = append(cells, slotCell{day: dow, date: day, hour: h})
			}
		}
		y, m, d := day.Date()
		day = time.Date(y, m, d+1, 0, 0, 0, 0, target)
	}
	return cells
}

// columnDate is the date shown in the cell's column. A slot shifted past the
// window edge lands a week away from its column, so it takes the column's
// date from the date map instead of its own occurrence date.
func columnDate(c slotCell, dates DateMap, loc *time.Location) time.Time {
	ref, ok := dates[c.day]
	if !ok {
		return c.date
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// cellHasTimeOff reports whether any exception covers hour on date. The
// exception must span the date (day-boundary truncated) and the hour must lie
// in its clock-hour range, which is bounded by the exception's own start and
// end hours on its first and last days.
func cellHasTimeOff(date time.Time, hour HourOfDay, timeOff []TimeOffException, loc *time.Location) bool {
	for _, e := range timeOff {
		start := e.StartTime.In(loc)
		end := e.EndTime.In(loc)
		firstDay := StartOfDay(start, loc)
		lastDay := EndOfDayInstant(end, loc)
		if date.Before(firstDay) || date.After(lastDay) {
			continue
		}
		lower, upper := 0, HoursInDay
		if sameDate(date, start) {
			lower = start.Hour()
		}
		if sameDate(date, end) {
			upper = exceptionEndHour(end)
		}
		if hour.Hour >= lower && hour.Hour < upper {
			return true
		}
	}
	return false
}

func exceptionEndHour(end time.Time) int {
	c := Clock{Hour: end.Hour(), Minute: end.Minute(), Second: end.Second()}
	if c == EndOfDay {
		return HoursInDay
	}
	return end.Hour()
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
