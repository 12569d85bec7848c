package registry

import (
	"sync"

	"github.com/sabocue/arena/internal/sabo"
)

// position locates a match inside a tournament's bracket graph.
type position struct {
	tournamentID string
	groupID      sabo.GroupID
	side         sabo.BracketSide
	round        int
	matchNumber  int
}

// store is the in-memory authoritative index over a tournament's matches.
// All mutation goes through its guarded operations; snapshots are deep
// copies so callers never alias live state.
type store struct {
	mu         sync.RWMutex
	byID       map[string]*sabo.Match
	byPosition map[position]string // match id
}

// Filter restricts List to a group or to the final stage. Nil fields match
// everything.
type Filter struct {
	GroupID *sabo.GroupID
	Side    *sabo.BracketSide
	Status  *sabo.MatchStatus
}
