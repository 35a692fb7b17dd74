package planner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-scheduler/internal/availability"
	"github.com/mauv0809/scrim-scheduler/internal/metrics"
	"github.com/mauv0809/scrim-scheduler/internal/notifier"
	"github.com/mauv0809/scrim-scheduler/internal/pubsub"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// summaryHours is how many ranked hours an availability summary carries.
const summaryHours = 5

var ErrMissingTeam = errors.New("event has no team")

// New creates a new Planner. defaultZone renders grids for callers that name
// no zone; weekStart is the first grid column.
func New(rosterStore RosterStore, availabilityStore availability.AvailabilityStore, notifier Notifier, metrics metrics.Metrics, counters metrics.CounterStore, pubsub pubsub.PubSubClient, defaultZone string, weekStart schedule.DayOfWeek) *Planner {
	if defaultZone == "" {
		defaultZone = "UTC"
	}
	if !weekStart.Valid() {
		weekStart = schedule.Sunday
	}
	return &Planner{
		roster:       rosterStore,
		availability: availabilityStore,
		notifier:     notifier,
		metrics:      metrics,
		counters:     counters,
		pubsub:       pubsub,
		defaultZone:  defaultZone,
		week:         schedule.Week(weekStart),
		now:          time.Now,
	}
}

// Week returns the configured column order.
func (p *Planner) Week() []schedule.DayOfWeek {
	return append([]schedule.DayOfWeek(nil), p.week...)
}

// PlayerGrid renders one player's week. zoneID falls back to the player's
// preference, then to the default zone. A zero date means today in that zone.
//
// The window snaps back to the configured first day on or before date. Columns
// for days earlier in the current week show this week's past dates, not their
// next occurrence.
func (p *Planner) PlayerGrid(ctx context.Context, playerID, zoneID string, date Date) (*GridResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	player, err := p.roster.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if zoneID == "" {
		zoneID = player.TimeZone
	}
	loc, dates, err := p.window(zoneID, time.Time{}, date)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	schedulePlayer, err := p.loadSchedule(player, dates)
	if err != nil {
		p.metrics.IncGridBuildFailures()
		return nil, err
	}

	res := &GridResult{Player: &player, TimeZone: loc.String(), WeekOf: dates[p.week[0]]}
	grid, err := schedule.BuildPlayerGrid(loc, schedule.HoursOfDay(), p.week, schedulePlayer.Slots, schedulePlayer.TimeOff, dates, res.onFirst)
	p.observe(start, err)
	if err != nil {
		log.Error("Failed to build player grid", "player", playerID, "zone", loc, "error", err)
		return nil, fmt.Errorf("failed to build grid for player %s: %w", playerID, err)
	}
	res.Grid = grid
	log.Debug("Built player grid", "player", playerID, "zone", loc, "weekOf", res.WeekOf)
	return res, nil
}

// TeamGrid renders the aggregate week of every team member. zoneID falls
// back to the default zone and a zero date means today. The week is chosen
// the same way as for PlayerGrid, so it may start before date.
func (p *Planner) TeamGrid(ctx context.Context, teamID, zoneID string, date Date) (*GridResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	team, err := p.roster.GetTeam(teamID)
	if err != nil {
		return nil, err
	}
	return p.teamGrid(ctx, team, zoneID, time.Time{}, date)
}

// teamGrid renders the week containing date, or the instant at when date is
// zero.
func (p *Planner) teamGrid(ctx context.Context, team roster.Team, zoneID string, at time.Time, date Date) (*GridResult, error) {
	loc, dates, err := p.window(zoneID, at, date)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	players := make([]schedule.PlayerSchedule, 0, len(team.Members))
	for _, member := range team.Members {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ps, err := p.loadSchedule(member, dates)
		if err != nil {
			p.metrics.IncGridBuildFailures()
			return nil, err
		}
		players = append(players, ps)
	}

	res := &GridResult{Team: &team, TimeZone: loc.String(), WeekOf: dates[p.week[0]]}
	grid, err := schedule.BuildTeamGrid(loc, schedule.HoursOfDay(), p.week, players, dates, res.onFirst)
	p.observe(start, err)
	if err != nil {
		log.Error("Failed to build team grid", "team", team.ID, "zone", loc, "error", err)
		return nil, fmt.Errorf("failed to build grid for team %s: %w", team.ID, err)
	}
	res.Grid = grid
	log.Debug("Built team grid", "team", team.ID, "members", len(team.Members), "zone", loc)
	return res, nil
}

// ReplaceWeeklySlots validates and stores a player's whole weekly set, then
// announces the change to the player's teams.
func (p *Planner) ReplaceWeeklySlots(ctx context.Context, playerID string, slots []schedule.WeeklySlot) ([]schedule.WeeklySlot, error) {
	if _, err := p.roster.GetPlayer(playerID); err != nil {
		return nil, err
	}
	for i, slot := range slots {
		if err := slot.Validate(); err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
	}
	stored, err := p.availability.ReplaceWeeklySlots(playerID, slots)
	if err != nil {
		return nil, err
	}
	p.metrics.IncSlotReplacements()
	p.counters.Increment(metrics.KeySlotSetsReplaced)
	p.publish(ctx, playerID, pubsub.ReasonSlotsReplaced)
	return stored, nil
}

func (p *Planner) ClearWeeklySlots(ctx context.Context, playerID string) error {
	if _, err := p.roster.GetPlayer(playerID); err != nil {
		return err
	}
	if err := p.availability.ClearWeeklySlots(playerID); err != nil {
		return err
	}
	p.metrics.IncSlotReplacements()
	p.counters.Increment(metrics.KeySlotSetsReplaced)
	p.publish(ctx, playerID, pubsub.ReasonSlotsCleared)
	return nil
}

func (p *Planner) AddTimeOff(ctx context.Context, playerID string, start, end time.Time, comment string) (schedule.TimeOffException, error) {
	if _, err := p.roster.GetPlayer(playerID); err != nil {
		return schedule.TimeOffException{}, err
	}
	exception, err := p.availability.AddTimeOff(playerID, start, end, comment)
	if err != nil {
		return schedule.TimeOffException{}, err
	}
	p.metrics.IncTimeOffChanges()
	p.counters.Increment(metrics.KeyTimeOffAdded)
	p.publish(ctx, playerID, pubsub.ReasonTimeOffAdded)
	return exception, nil
}

func (p *Planner) RemoveTimeOff(ctx context.Context, playerID, timeOffID string) error {
	if err := p.availability.RemoveTimeOff(playerID, timeOffID); err != nil {
		return err
	}
	p.metrics.IncTimeOffChanges()
	p.counters.Increment(metrics.KeyTimeOffRemoved)
	p.publish(ctx, playerID, pubsub.ReasonTimeOffRemoved)
	return nil
}

// AddTeamMember and RemoveTeamMember change a roster and announce the new
// aggregate for that team only.
func (p *Planner) AddTeamMember(ctx context.Context, teamID, playerID string) error {
	if err := p.roster.AddTeamMember(teamID, playerID); err != nil {
		return err
	}
	p.send(ctx, pubsub.AvailabilityChanged{PlayerID: playerID, TeamID: teamID, Reason: pubsub.ReasonRosterChanged, At: p.now()})
	return nil
}

func (p *Planner) RemoveTeamMember(ctx context.Context, teamID, playerID string) error {
	if err := p.roster.RemoveTeamMember(teamID, playerID); err != nil {
		return err
	}
	p.send(ctx, pubsub.AvailabilityChanged{PlayerID: playerID, TeamID: teamID, Reason: pubsub.ReasonRosterChanged, At: p.now()})
	return nil
}

// HandleAvailabilityChanged rebuilds the affected team's grid for the week of
// the event and posts a summary.
func (p *Planner) HandleAvailabilityChanged(ctx context.Context, event pubsub.AvailabilityChanged, dryRun bool) error {
	if event.TeamID == "" {
		return ErrMissingTeam
	}
	log.Info("Handling availability change", "team", event.TeamID, "player", event.PlayerID, "reason", event.Reason)

	team, err := p.roster.GetTeam(event.TeamID)
	if err != nil {
		return err
	}
	res, err := p.teamGrid(ctx, team, "", event.At, Date{})
	if err != nil {
		return err
	}
	best := BestHours(res.Grid, summaryHours)
	if err := p.notifier.SendTeamAvailability(*res.Team, res.Grid, best, res.TimeZone, dryRun); err != nil {
		return fmt.Errorf("failed to send availability summary for team %s: %w", event.TeamID, err)
	}
	if !dryRun {
		p.counters.Increment(metrics.KeySummariesPosted)
	}
	return nil
}

// TeamSummary resolves a team by ID or name and formats its current best
// hours for a slash command response.
func (p *Planner) TeamSummary(ctx context.Context, query, zoneID string) (any, error) {
	team, err := p.roster.FindTeam(query)
	if errors.Is(err, roster.ErrTeamNotFound) {
		return p.notifier.FormatTeamNotFoundResponse(query)
	}
	if err != nil {
		return nil, err
	}
	res, err := p.teamGrid(ctx, team, zoneID, time.Time{}, Date{})
	if err != nil {
		return nil, err
	}
	return p.notifier.FormatTeamAvailabilityResponse(team, BestHours(res.Grid, summaryHours), res.TimeZone)
}

// BestHours ranks the cells with at least one available player by player
// count, descending. Ties keep grid order. limit <= 0 returns every cell.
func BestHours(grid *schedule.AvailabilityMap, limit int) []notifier.BestHour {
	if grid == nil {
		return nil
	}
	var best []notifier.BestHour
	grid.Each(func(hour schedule.HourOfDay, day schedule.DayOfWeek, s schedule.HourStatus) {
		if len(s.AvailablePlayers) == 0 {
			return
		}
		best = append(best, notifier.BestHour{Day: day, Hour: hour, Players: append([]string(nil), s.AvailablePlayers...)})
	})
	sort.SliceStable(best, func(i, j int) bool {
		return len(best[i].Players) > len(best[j].Players)
	})
	if limit > 0 && len(best) > limit {
		best = best[:limit]
	}
	return best
}

func (r *GridResult) onFirst(day schedule.DayOfWeek, hour schedule.HourOfDay) {
	r.FirstAvailable = &Cell{Day: day, Hour: hour}
}

// window resolves the render zone and the date map for the week starting on
// the configured first day. A calendar date is placed in the render zone once
// it is known; otherwise the instant at (or now) is read in that zone.
func (p *Planner) window(zoneID string, at time.Time, date Date) (*time.Location, schedule.DateMap, error) {
	if zoneID == "" {
		zoneID = p.defaultZone
	}
	loc, err := schedule.LoadZone(zoneID)
	if err != nil {
		return nil, nil, err
	}
	reference := at
	switch {
	case !date.IsZero():
		reference = date.In(loc)
	case reference.IsZero():
		reference = p.now()
	}
	return loc, schedule.NewDateMap(weekStart(reference, loc, p.week[0]), loc), nil
}

// weekStart steps reference back to the most recent first day in loc.
func weekStart(reference time.Time, loc *time.Location, first schedule.DayOfWeek) time.Time {
	local := reference.In(loc)
	back := (int(local.Weekday()) - int(first.Weekday()) + schedule.DaysInWeek) % schedule.DaysInWeek
	y, m, d := local.Date()
	return time.Date(y, m, d-back, 12, 0, 0, 0, loc)
}

// loadSchedule reads a player's slots and the time off overlapping the window.
func (p *Planner) loadSchedule(player roster.Player, dates schedule.DateMap) (schedule.PlayerSchedule, error) {
	slots, err := p.availability.GetWeeklySlots(player.ID)
	if err != nil {
		return schedule.PlayerSchedule{}, err
	}
	from := dates[p.week[0]]
	to := from.AddDate(0, 0, schedule.DaysInWeek)
	timeOff, err := p.availability.GetTimeOff(player.ID, from, to)
	if err != nil {
		return schedule.PlayerSchedule{}, err
	}
	return schedule.PlayerSchedule{Player: player.Name, Slots: slots, TimeOff: timeOff}, nil
}

func (p *Planner) observe(start time.Time, err error) {
	p.metrics.ObserveGridBuildDuration(time.Since(start).Seconds())
	if err != nil {
		p.metrics.IncGridBuildFailures()
		return
	}
	p.metrics.IncGridBuilds()
	p.counters.Increment(metrics.KeyGridsBuilt)
}

// publish announces a player's availability change once per team. Publish
// failures are logged; the write they follow has already succeeded.
func (p *Planner) publish(ctx context.Context, playerID, reason string) {
	teams, err := p.roster.GetTeamsForPlayer(playerID)
	if err != nil {
		log.Error("Failed to look up teams for availability event", "player", playerID, "error", err)
		return
	}
	at := p.now()
	for _, team := range teams {
		p.send(ctx, pubsub.AvailabilityChanged{PlayerID: playerID, TeamID: team.ID, Reason: reason, At: at})
	}
}

func (p *Planner) send(ctx context.Context, event pubsub.AvailabilityChanged) {
	if ctx.Err() != nil {
		log.Warn("Skipping availability event for cancelled request", "team", event.TeamID, "reason", event.Reason)
		return
	}
	if err := p.pubsub.SendMessage(pubsub.EventAvailabilityChanged, event); err != nil {
		log.Error("Failed to publish availability event", "team", event.TeamID, "reason", event.Reason, "error", err)
		return
	}
	p.metrics.IncEventsPublished()
}
