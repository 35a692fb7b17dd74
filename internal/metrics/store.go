package metrics

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// store persists the lifetime counters in the metrics table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewCounterStore creates a database-backed CounterStore.
func NewCounterStore(db *sql.DB) CounterStore {
	return &store{
		db: db,
	}
}

// Increment adds one to a tracked counter. Unknown keys are dropped so a
// mistyped key never leaves a stray row behind.
func (s *store) Increment(key CounterKey) {
	if !key.Valid() {
		log.Warn("Ignoring increment of unknown counter", "key", key)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, string(key))
	if err != nil {
		log.Error("Failed to increment counter", "key", key, "error", err)
		return
	}
	log.Debug("Incremented counter", "key", key)
}

// GetAll reports every tracked counter, zero until its first increment.
// Rows left by counters that are no longer tracked are skipped.
func (s *store) GetAll() (map[CounterKey]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[CounterKey]int, len(CounterKeys))
	for _, k := range CounterKeys {
		counters[k] = 0
	}
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		if k := CounterKey(key); k.Valid() {
			counters[k] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read counters: %w", err)
	}
	return counters, nil
}
