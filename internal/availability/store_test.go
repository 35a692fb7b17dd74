package availability_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/scrim-scheduler/internal/availability"
	"github.com/mauv0809/scrim-scheduler/internal/database"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database with two players.
func setupTestDB(t *testing.T) (availability.AvailabilityStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO players (id, name, time_zone, created_at) VALUES
		('p1', 'Player One', 'America/New_York', 0),
		('p2', 'Player Two', 'Asia/Bangkok', 0)`)
	require.NoError(t, err)

	return availability.NewStore(db), db, teardown
}

func TestReplaceWeeklySlots(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	monday := schedule.WeeklySlot{DayOfWeek: schedule.Monday, StartTime: "09:00:00", EndTime: "12:00:00", TimeZone: "America/New_York"}
	friday := schedule.WeeklySlot{DayOfWeek: schedule.Friday, StartTime: "20:00:00", EndTime: "23:59:59", TimeZone: "America/New_York"}

	t.Run("duplicates collapse and order is kept", func(t *testing.T) {
		stored, err := store.ReplaceWeeklySlots("p1", []schedule.WeeklySlot{friday, monday, friday})
		require.NoError(t, err)
		assert.Equal(t, []schedule.WeeklySlot{friday, monday}, stored)

		got, err := store.GetWeeklySlots("p1")
		require.NoError(t, err)
		assert.Equal(t, []schedule.WeeklySlot{friday, monday}, got)
	})

	t.Run("replace swaps the whole set", func(t *testing.T) {
		_, err := store.ReplaceWeeklySlots("p1", []schedule.WeeklySlot{monday})
		require.NoError(t, err)

		got, err := store.GetWeeklySlots("p1")
		require.NoError(t, err)
		assert.Equal(t, []schedule.WeeklySlot{monday}, got)
	})

	t.Run("other players are untouched", func(t *testing.T) {
		got, err := store.GetWeeklySlots("p2")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown player rolls back", func(t *testing.T) {
		_, err := store.ReplaceWeeklySlots("ghost", []schedule.WeeklySlot{monday})
		assert.Error(t, err)

		got, err := store.GetWeeklySlots("ghost")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, store.ClearWeeklySlots("p1"))
		got, err := store.GetWeeklySlots("p1")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestTimeOff(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	day := func(d, h int) time.Time { return time.Date(2026, 2, d, h, 0, 0, 0, time.UTC) }

	trip, err := store.AddTimeOff("p1", day(2, 18), day(4, 9), "LAN travel")
	require.NoError(t, err)
	assert.NotEmpty(t, trip.ID)
	dentist, err := store.AddTimeOff("p1", day(10, 14), day(10, 16), "dentist")
	require.NoError(t, err)
	_, err = store.AddTimeOff("p2", day(3, 0), day(3, 23), "")
	require.NoError(t, err)

	t.Run("end must follow start", func(t *testing.T) {
		_, err := store.AddTimeOff("p1", day(5, 10), day(5, 10), "")
		assert.ErrorIs(t, err, availability.ErrInvalidTimeOff)
	})

	t.Run("all time off in start order", func(t *testing.T) {
		all, err := store.GetAllTimeOff("p1")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, trip.ID, all[0].ID)
		assert.True(t, all[0].StartTime.Equal(day(2, 18)))
		assert.True(t, all[0].EndTime.Equal(day(4, 9)))
		assert.Equal(t, "LAN travel", all[0].Comment)
	})

	t.Run("window returns overlapping exceptions", func(t *testing.T) {
		got, err := store.GetTimeOff("p1", day(3, 0), day(9, 0))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, trip.ID, got[0].ID)

		got, err = store.GetTimeOff("p1", day(4, 9), day(10, 14))
		require.NoError(t, err)
		assert.Empty(t, got, "touching boundaries do not overlap")
	})

	t.Run("remove", func(t *testing.T) {
		assert.ErrorIs(t, store.RemoveTimeOff("p2", dentist.ID), availability.ErrTimeOffNotFound, "time off belongs to p1")
		require.NoError(t, store.RemoveTimeOff("p1", dentist.ID))
		assert.ErrorIs(t, store.RemoveTimeOff("p1", dentist.ID), availability.ErrTimeOffNotFound)

		all, err := store.GetAllTimeOff("p1")
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestClear(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.ReplaceWeeklySlots("p1", []schedule.WeeklySlot{{DayOfWeek: schedule.Sunday, StartTime: "10:00:00", EndTime: "11:00:00", TimeZone: "UTC"}})
	require.NoError(t, err)
	_, err = store.AddTimeOff("p1", time.Unix(0, 0), time.Unix(3600, 0), "")
	require.NoError(t, err)

	store.Clear()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM weekly_slots").Scan(&count))
	assert.Zero(t, count)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM time_off").Scan(&count))
	assert.Zero(t, count)
}
