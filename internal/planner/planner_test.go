package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/scrim-scheduler/internal/availability"
	"github.com/mauv0809/scrim-scheduler/internal/metrics"
	"github.com/mauv0809/scrim-scheduler/internal/notifier"
	"github.com/mauv0809/scrim-scheduler/internal/pubsub"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	planner  *Planner
	roster   *roster.MockStore
	avail    *availability.MockStore
	notif    *notifier.Mock
	metrics  *metrics.Mock
	counters *metrics.MockCounterStore
	pubsub   *pubsub.MockPubSubClient
}

var (
	alice = roster.Player{ID: "alice", Name: "Alice", TimeZone: "America/New_York"}
	bob   = roster.Player{ID: "bob", Name: "Bob", TimeZone: "Europe/Berlin"}
	team  = roster.Team{ID: "t1", Name: "Northern Lights", Members: []roster.Player{alice, bob}}
)

// wednesday is mid-week; grids snap back to Sunday 2026-01-25.
var wednesday = time.Date(2026, 1, 28, 15, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		roster:   roster.NewMock(),
		avail:    availability.NewMock(),
		notif:    notifier.NewMock(),
		metrics:  metrics.NewMock(),
		counters: metrics.NewMockCounterStore(),
		pubsub:   pubsub.NewMock("TEST"),
	}
	players := map[string]roster.Player{alice.ID: alice, bob.ID: bob}
	f.roster.GetPlayerFunc = func(id string) (roster.Player, error) {
		if p, ok := players[id]; ok {
			return p, nil
		}
		return roster.Player{}, roster.ErrPlayerNotFound
	}
	f.roster.GetTeamFunc = func(id string) (roster.Team, error) {
		if id == team.ID {
			return team, nil
		}
		return roster.Team{}, roster.ErrTeamNotFound
	}
	f.roster.FindTeamFunc = func(query string) (roster.Team, error) {
		if query == team.ID || query == team.Name {
			return team, nil
		}
		return roster.Team{}, roster.ErrTeamNotFound
	}
	f.roster.GetTeamsForPlayerFunc = func(id string) ([]roster.Team, error) {
		if _, ok := players[id]; ok {
			return []roster.Team{team}, nil
		}
		return nil, nil
	}

	f.avail.Slots[alice.ID] = []schedule.WeeklySlot{
		{DayOfWeek: schedule.Monday, StartTime: "09:00:00", EndTime: "11:00:00", TimeZone: "America/New_York"},
	}
	// 15:00 Berlin is 09:00 New York in January.
	f.avail.Slots[bob.ID] = []schedule.WeeklySlot{
		{DayOfWeek: schedule.Monday, StartTime: "15:00:00", EndTime: "17:00:00", TimeZone: "Europe/Berlin"},
	}

	f.planner = New(f.roster, f.avail, f.notif, f.metrics, f.counters, f.pubsub, "America/New_York", schedule.Sunday)
	f.planner.now = func() time.Time { return wednesday }
	return f
}

func TestPlanner_TeamGrid(t *testing.T) {
	t.Run("aggregates members in the target zone", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.planner.TeamGrid(context.Background(), team.ID, "", DateOf(wednesday))
		require.NoError(t, err)

		assert.Equal(t, "America/New_York", res.TimeZone)
		assert.Equal(t, 25, res.WeekOf.Day())
		assert.Equal(t, schedule.Week(schedule.Sunday), res.Grid.Days())
		for _, hour := range []int{9, 10} {
			cell, ok := res.Grid.Cell(hour, schedule.Monday)
			require.True(t, ok)
			assert.Equal(t, []string{"Alice", "Bob"}, cell.AvailablePlayers, "Mon %d", hour)
		}
		require.NotNil(t, res.FirstAvailable)
		assert.Equal(t, schedule.Monday, res.FirstAvailable.Day)
		assert.Equal(t, 9, res.FirstAvailable.Hour.Hour)
		assert.Equal(t, 1, f.metrics.GridBuilds())
		assert.Len(t, f.metrics.BuildDurations(), 1)
	})

	t.Run("time off removes the player from the cell", func(t *testing.T) {
		f := newFixture(t)
		// 14:00Z on Monday is 09:00 in New York.
		_, err := f.avail.AddTimeOff(bob.ID, time.Date(2026, 1, 26, 14, 0, 0, 0, time.UTC), time.Date(2026, 1, 26, 15, 0, 0, 0, time.UTC), "dentist")
		require.NoError(t, err)

		res, err := f.planner.TeamGrid(context.Background(), team.ID, "America/New_York", DateOf(wednesday))
		require.NoError(t, err)

		nine, _ := res.Grid.Cell(9, schedule.Monday)
		assert.Equal(t, []string{"Alice"}, nine.AvailablePlayers)
		ten, _ := res.Grid.Cell(10, schedule.Monday)
		assert.Equal(t, []string{"Alice", "Bob"}, ten.AvailablePlayers)
	})

	t.Run("unknown team and zone", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.planner.TeamGrid(context.Background(), "ghost", "", DateOf(wednesday))
		assert.ErrorIs(t, err, roster.ErrTeamNotFound)

		_, err = f.planner.TeamGrid(context.Background(), team.ID, "Mars/Base", DateOf(wednesday))
		assert.ErrorIs(t, err, schedule.ErrUnknownZone)
	})

	t.Run("a calendar date selects its week in zones past UTC+12", func(t *testing.T) {
		f := newFixture(t)
		kiritimati, err := schedule.LoadZone("Pacific/Kiritimati")
		require.NoError(t, err)

		saturday := Date{Year: 2026, Month: time.January, Day: 31}
		res, err := f.planner.TeamGrid(context.Background(), team.ID, "Pacific/Kiritimati", saturday)
		require.NoError(t, err)

		assert.Equal(t, "Pacific/Kiritimati", res.TimeZone)
		assert.Equal(t, time.Sunday, res.WeekOf.Weekday())
		assert.Equal(t, Date{Year: 2026, Month: time.January, Day: 25}, DateOf(res.WeekOf))
		assert.WithinDuration(t, time.Date(2026, 1, 25, 0, 0, 0, 0, kiritimati), res.WeekOf, 0)
	})

	t.Run("a malformed stored slot aborts the build", func(t *testing.T) {
		f := newFixture(t)
		f.avail.Slots[bob.ID] = []schedule.WeeklySlot{{DayOfWeek: schedule.Monday, StartTime: "nine", EndTime: "17:00:00", TimeZone: "UTC"}}

		res, err := f.planner.TeamGrid(context.Background(), team.ID, "", DateOf(wednesday))
		assert.ErrorIs(t, err, schedule.ErrInvalidClock)
		assert.Nil(t, res)
		assert.Equal(t, 1, f.metrics.GridBuildFailures())
		assert.Equal(t, 0, f.metrics.GridBuilds())
	})
}

func TestPlanner_PlayerGrid(t *testing.T) {
	f := newFixture(t)

	t.Run("defaults to the player's zone", func(t *testing.T) {
		res, err := f.planner.PlayerGrid(context.Background(), bob.ID, "", Date{})
		require.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", res.TimeZone)
		assert.Equal(t, bob.ID, res.Player.ID)

		cell, _ := res.Grid.Cell(15, schedule.Monday)
		assert.True(t, cell.IsAvailable)
		assert.Empty(t, cell.AvailablePlayers, "single-player grids carry no names")
	})

	t.Run("explicit zone wins", func(t *testing.T) {
		res, err := f.planner.PlayerGrid(context.Background(), bob.ID, "Asia/Bangkok", DateOf(wednesday))
		require.NoError(t, err)
		// 14:00Z is 21:00 in Bangkok.
		cell, _ := res.Grid.Cell(21, schedule.Monday)
		assert.True(t, cell.IsAvailable)
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := f.planner.PlayerGrid(context.Background(), "ghost", "", DateOf(wednesday))
		assert.ErrorIs(t, err, roster.ErrPlayerNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := f.planner.PlayerGrid(ctx, alice.ID, "", DateOf(wednesday))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPlanner_Writes(t *testing.T) {
	t.Run("replacing slots stores and publishes per team", func(t *testing.T) {
		f := newFixture(t)
		slot := schedule.WeeklySlot{DayOfWeek: schedule.Friday, StartTime: "20:00:00", EndTime: "23:59:59", TimeZone: "America/New_York"}

		stored, err := f.planner.ReplaceWeeklySlots(context.Background(), alice.ID, []schedule.WeeklySlot{slot, slot})
		require.NoError(t, err)
		assert.Equal(t, []schedule.WeeklySlot{slot}, stored)

		require.Len(t, f.pubsub.SendMessageCalls, 1)
		call := f.pubsub.SendMessageCalls[0]
		assert.Equal(t, pubsub.EventAvailabilityChanged, call.Topic)
		event, ok := call.Data.(pubsub.AvailabilityChanged)
		require.True(t, ok)
		assert.Equal(t, pubsub.AvailabilityChanged{PlayerID: alice.ID, TeamID: team.ID, Reason: pubsub.ReasonSlotsReplaced, At: wednesday}, event)
		assert.Equal(t, 1, f.metrics.SlotReplacements())
		assert.Equal(t, 1, f.metrics.EventsPublished())

		counters, _ := f.counters.GetAll()
		assert.Equal(t, 1, counters[metrics.KeySlotSetsReplaced])
	})

	t.Run("invalid slots never reach the store", func(t *testing.T) {
		f := newFixture(t)
		bad := schedule.WeeklySlot{DayOfWeek: schedule.Friday, StartTime: "20:00:00", EndTime: "21:00:00", TimeZone: "Nowhere"}

		_, err := f.planner.ReplaceWeeklySlots(context.Background(), alice.ID, []schedule.WeeklySlot{bad})
		assert.ErrorIs(t, err, schedule.ErrUnknownZone)
		assert.Empty(t, f.avail.ReplaceWeeklySlotsCalls)
		assert.Empty(t, f.pubsub.SendMessageCalls)
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		f := newFixture(t)
		f.pubsub.SendMessageFunc = func(topic pubsub.EventType, data any) error { return errors.New("broker down") }

		_, err := f.planner.AddTimeOff(context.Background(), alice.ID, wednesday, wednesday.Add(2*time.Hour), "travel")
		require.NoError(t, err)
		assert.Equal(t, 1, f.metrics.TimeOffChanges())
		assert.Equal(t, 0, f.metrics.EventsPublished())
	})

	t.Run("time off validation and removal", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.planner.AddTimeOff(context.Background(), alice.ID, wednesday, wednesday, "")
		assert.ErrorIs(t, err, availability.ErrInvalidTimeOff)

		e, err := f.planner.AddTimeOff(context.Background(), alice.ID, wednesday, wednesday.Add(time.Hour), "")
		require.NoError(t, err)
		require.NoError(t, f.planner.RemoveTimeOff(context.Background(), alice.ID, e.ID))
		assert.ErrorIs(t, f.planner.RemoveTimeOff(context.Background(), alice.ID, e.ID), availability.ErrTimeOffNotFound)

		counters, _ := f.counters.GetAll()
		assert.Equal(t, 1, counters[metrics.KeyTimeOffAdded])
		assert.Equal(t, 1, counters[metrics.KeyTimeOffRemoved])
	})

	t.Run("membership changes publish for that team", func(t *testing.T) {
		f := newFixture(t)

		require.NoError(t, f.planner.AddTeamMember(context.Background(), "t2", alice.ID))
		require.NoError(t, f.planner.RemoveTeamMember(context.Background(), "t2", alice.ID))

		events := f.pubsub.EventsForTeam("t2")
		require.Len(t, events, 2)
		for _, event := range events {
			assert.Equal(t, alice.ID, event.PlayerID)
			assert.Equal(t, pubsub.ReasonRosterChanged, event.Reason)
		}
		assert.Empty(t, f.pubsub.EventsForTeam(team.ID))
	})
}

func TestPlanner_HandleAvailabilityChanged(t *testing.T) {
	t.Run("posts the team summary", func(t *testing.T) {
		f := newFixture(t)

		err := f.planner.HandleAvailabilityChanged(context.Background(), pubsub.AvailabilityChanged{TeamID: team.ID, At: wednesday}, true)
		require.NoError(t, err)

		require.Len(t, f.notif.SendTeamAvailabilityCalls, 1)
		call := f.notif.SendTeamAvailabilityCalls[0]
		assert.Equal(t, team.ID, call.Team.ID)
		assert.Equal(t, "America/New_York", call.Zone)
		assert.True(t, call.DryRun)
		require.Len(t, call.Best, 2)
		assert.Equal(t, 9, call.Best[0].Hour.Hour)
	})

	t.Run("event without team", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.planner.HandleAvailabilityChanged(context.Background(), pubsub.AvailabilityChanged{}, false), ErrMissingTeam)
	})

	t.Run("notifier failure is returned", func(t *testing.T) {
		f := newFixture(t)
		f.notif.SendTeamAvailabilityFunc = func(roster.Team, []notifier.BestHour, bool) error { return errors.New("slack down") }

		err := f.planner.HandleAvailabilityChanged(context.Background(), pubsub.AvailabilityChanged{TeamID: team.ID}, false)
		assert.Error(t, err)
		counters, _ := f.counters.GetAll()
		assert.Zero(t, counters[metrics.KeySummariesPosted])
	})
}

func TestPlanner_TeamSummary(t *testing.T) {
	f := newFixture(t)

	resp, err := f.planner.TeamSummary(context.Background(), "Northern Lights", "")
	require.NoError(t, err)
	assert.Equal(t, "formatted_team_availability", resp)

	resp, err = f.planner.TeamSummary(context.Background(), "Nobody", "")
	require.NoError(t, err)
	assert.Equal(t, "formatted_team_not_found", resp)
	assert.Equal(t, []string{"Nobody"}, f.notif.FormatTeamNotFoundCalls)
}

func TestBestHours(t *testing.T) {
	dates := schedule.NewDateMap(time.Date(2026, 1, 25, 12, 0, 0, 0, time.UTC), time.UTC)
	slot := func(day schedule.DayOfWeek, start, end string) schedule.WeeklySlot {
		return schedule.WeeklySlot{DayOfWeek: day, StartTime: start, EndTime: end, TimeZone: "UTC"}
	}
	grid, err := schedule.BuildTeamGrid(time.UTC, schedule.HoursOfDay(), schedule.Week(schedule.Sunday), []schedule.PlayerSchedule{
		{Player: "A", Slots: []schedule.WeeklySlot{slot(schedule.Sunday, "08:00:00", "09:00:00"), slot(schedule.Tuesday, "18:00:00", "20:00:00")}},
		{Player: "B", Slots: []schedule.WeeklySlot{slot(schedule.Tuesday, "19:00:00", "20:00:00")}},
		{Player: "C", Slots: []schedule.WeeklySlot{slot(schedule.Tuesday, "19:00:00", "21:00:00")}},
	}, dates, nil)
	require.NoError(t, err)

	best := BestHours(grid, 0)
	require.Len(t, best, 4)
	assert.Equal(t, notifier.BestHour{Day: schedule.Tuesday, Hour: best[0].Hour, Players: []string{"A", "B", "C"}}, best[0])
	assert.Equal(t, 19, best[0].Hour.Hour)
	// Single-player cells keep grid order: hour 8 before 18 before 20.
	assert.Equal(t, 8, best[1].Hour.Hour)
	assert.Equal(t, 18, best[2].Hour.Hour)
	assert.Equal(t, 20, best[3].Hour.Hour)

	assert.Len(t, BestHours(grid, 2), 2)
	assert.Nil(t, BestHours(nil, 3))
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2026-01-25")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.January, Day: 25}, d)
	assert.Equal(t, "2026-01-25", d.String())
	assert.False(t, d.IsZero())
	assert.True(t, Date{}.IsZero())

	_, err = ParseDate("25/01/2026")
	assert.Error(t, err)

	// Midday in the zone keeps the calendar date on both sides of UTC.
	for _, id := range []string{"Pacific/Kiritimati", "Pacific/Pago_Pago", "UTC"} {
		loc, err := schedule.LoadZone(id)
		require.NoError(t, err)
		assert.Equal(t, d, DateOf(d.In(loc)), id)
		assert.Equal(t, d, DateOf(d.In(loc).In(loc)), id)
	}
}

func TestWeekStart(t *testing.T) {
	ny, err := schedule.LoadZone("America/New_York")
	require.NoError(t, err)

	// 02:00Z Monday is still Sunday evening in New York.
	got := weekStart(time.Date(2026, 1, 26, 2, 0, 0, 0, time.UTC), ny, schedule.Monday)
	assert.WithinDuration(t, time.Date(2026, 1, 19, 12, 0, 0, 0, ny), got, 0)

	got = weekStart(time.Date(2026, 1, 26, 15, 0, 0, 0, time.UTC), ny, schedule.Monday)
	assert.Equal(t, 26, got.Day())
}
