package availability

import (
	"database/sql"
	"errors"
	"sync"
)

var (
	ErrTimeOffNotFound = errors.New("time off not found")
	ErrInvalidTimeOff  = errors.New("time off must end after it starts")
)

// store handles database operations for availability.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
