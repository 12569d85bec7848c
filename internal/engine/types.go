package engine

import (
	"sync"

	"github.com/sabocue/arena/internal/registry"
	"github.com/sabocue/arena/internal/sabo"
)

// Engine turns one score submission into all of its downstream effects as a
// single critical section per tournament.
type Engine struct {
	registry registry.MatchRegistry

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-tournament
}

// Result describes what a score submission changed.
type Result struct {
	Match *sabo.Match

	// GroupCompleted is set when this submission completed the last match
	// of a qualifying group.
	GroupCompleted *sabo.GroupID

	// TournamentCompleted is set when the last final-stage match resolved.
	TournamentCompleted bool

	// Champion is the tournament winner, set with TournamentCompleted.
	Champion string
}
