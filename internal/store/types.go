package store

import (
	"database/sql"
	"sync"
)

// store handles all database operations for tournament persistence.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
