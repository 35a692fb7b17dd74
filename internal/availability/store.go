package availability

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
)

// NewStore creates a new availability store.
func NewStore(db *sql.DB) AvailabilityStore {
	return &store{
		db: db,
	}
}

func (s *store) ReplaceWeeklySlots(playerID string, slots []schedule.WeeklySlot) ([]schedule.WeeklySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unique := dedupeSlots(slots)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM weekly_slots WHERE player_id = ?", playerID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to delete weekly slots for player %s: %w", playerID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO weekly_slots (id, player_id, day_of_week, start_time, end_time, time_zone, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to prepare slot insert: %w", err)
	}
	defer stmt.Close()

	for i, slot := range unique {
		_, err := stmt.Exec(slot.ID(), playerID, string(slot.DayOfWeek), slot.StartTime, slot.EndTime, slot.TimeZone, i)
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to insert slot %s for player %s: %w", slot.ID(), playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit weekly slots for player %s: %w", playerID, err)
	}
	log.Info("Replaced weekly slots", "player", playerID, "slots", len(unique), "duplicates", len(slots)-len(unique))
	return unique, nil
}

func (s *store) GetWeeklySlots(playerID string) ([]schedule.WeeklySlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT day_of_week, start_time, end_time, time_zone
		FROM weekly_slots
		WHERE player_id = ?
		ORDER BY position
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly slots for player %s: %w", playerID, err)
	}
	defer rows.Close()

	slots := []schedule.WeeklySlot{}
	for rows.Next() {
		var (
			slot schedule.WeeklySlot
			day  string
		)
		if err := rows.Scan(&day, &slot.StartTime, &slot.EndTime, &slot.TimeZone); err != nil {
			log.Error("Failed to scan weekly slot row", "error", err, "player", playerID)
			continue
		}
		slot.DayOfWeek = schedule.DayOfWeek(day)
		slots = append(slots, slot)
	}
	log.Debug("Loaded weekly slots", "player", playerID, "count", len(slots))
	return slots, rows.Err()
}

func (s *store) ClearWeeklySlots(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM weekly_slots WHERE player_id = ?", playerID); err != nil {
		return fmt.Errorf("failed to clear weekly slots for player %s: %w", playerID, err)
	}
	log.Info("Cleared weekly slots", "player", playerID)
	return nil
}

// AddTimeOff records an absolute exception. Sub-second precision is dropped.
func (s *store) AddTimeOff(playerID string, start, end time.Time, comment string) (schedule.TimeOffException, error) {
	if !end.After(start) {
		return schedule.TimeOffException{}, fmt.Errorf("%w: %s - %s", ErrInvalidTimeOff, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exception := schedule.TimeOffException{
		ID:        uuid.NewString(),
		StartTime: time.Unix(start.Unix(), 0).UTC(),
		EndTime:   time.Unix(end.Unix(), 0).UTC(),
		Comment:   comment,
	}
	_, err := s.db.Exec(
		"INSERT INTO time_off (id, player_id, start_time, end_time, comment, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		exception.ID, playerID, exception.StartTime.Unix(), exception.EndTime.Unix(), comment, time.Now().Unix(),
	)
	if err != nil {
		return schedule.TimeOffException{}, fmt.Errorf("failed to insert time off for player %s: %w", playerID, err)
	}
	log.Info("Added time off", "player", playerID, "id", exception.ID, "start", exception.StartTime, "end", exception.EndTime)
	return exception, nil
}

func (s *store) RemoveTimeOff(playerID, timeOffID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM time_off WHERE id = ? AND player_id = ?", timeOffID, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete time off %s: %w", timeOffID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrTimeOffNotFound, timeOffID)
	}
	log.Info("Removed time off", "player", playerID, "id", timeOffID)
	return nil
}

func (s *store) GetTimeOff(playerID string, from, to time.Time) ([]schedule.TimeOffException, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, start_time, end_time, comment
		FROM time_off
		WHERE player_id = ? AND start_time < ? AND end_time > ?
		ORDER BY start_time
	`, playerID, to.Unix(), from.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to query time off for player %s: %w", playerID, err)
	}
	defer rows.Close()
	return scanTimeOff(rows)
}

func (s *store) GetAllTimeOff(playerID string) ([]schedule.TimeOffException, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, start_time, end_time, comment
		FROM time_off
		WHERE player_id = ?
		ORDER BY start_time
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time off for player %s: %w", playerID, err)
	}
	defer rows.Close()
	return scanTimeOff(rows)
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"weekly_slots", "time_off"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

func scanTimeOff(rows *sql.Rows) ([]schedule.TimeOffException, error) {
	exceptions := []schedule.TimeOffException{}
	for rows.Next() {
		var (
			e          schedule.TimeOffException
			start, end int64
		)
		if err := rows.Scan(&e.ID, &start, &end, &e.Comment); err != nil {
			log.Error("Failed to scan time off row", "error", err)
			continue
		}
		e.StartTime = time.Unix(start, 0).UTC()
		e.EndTime = time.Unix(end, 0).UTC()
		exceptions = append(exceptions, e)
	}
	return exceptions, rows.Err()
}

// dedupeSlots keeps the first occurrence of each structurally identical slot.
func dedupeSlots(slots []schedule.WeeklySlot) []schedule.WeeklySlot {
	seen := make(map[string]struct{}, len(slots))
	unique := make([]schedule.WeeklySlot, 0, len(slots))
	for _, slot := range slots {
		id := slot.ID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, slot)
	}
	return unique
}
