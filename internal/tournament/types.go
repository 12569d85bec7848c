package tournament

import (
	"github.com/sabocue/arena/internal/engine"
	"github.com/sabocue/arena/internal/metrics"
	"github.com/sabocue/arena/internal/notifier"
	"github.com/sabocue/arena/internal/pubsub"
	"github.com/sabocue/arena/internal/registry"
	"github.com/sabocue/arena/internal/sabo"
	"github.com/sabocue/arena/internal/store"
)

// Service handles the business logic of running a tournament: it owns the
// in-memory registry, drives the advancement engine, and mirrors every
// successful mutation to the durable store.
type Service struct {
	registry    registry.MatchRegistry
	engine      *engine.Engine
	coordinator *engine.Coordinator
	store       store.TournamentStore
	notifier    notifier.Notifier
	metrics     metrics.Metrics
	pubsub      pubsub.PubSubClient

	defaultRaceTo int
	dryRun        bool
}

// GroupState summarizes one group's progress.
type GroupState struct {
	ID               sabo.GroupID     `json:"id"`
	Status           sabo.GroupStatus `json:"status"`
	CompletedMatches int              `json:"completed_matches"`
	TotalMatches     int              `json:"total_matches"`
}

// State is a full snapshot of a tournament for read endpoints.
type State struct {
	Tournament *sabo.Tournament `json:"tournament"`
	Groups     []GroupState     `json:"groups"`
	Matches    []*sabo.Match    `json:"matches"`
	Champion   string           `json:"champion,omitempty"`
}
