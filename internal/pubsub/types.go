package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventGroupCompleted      EventType = "group-completed"
	EventFinalUnlocked       EventType = "final-unlocked"
	EventTournamentCompleted EventType = "tournament-completed"
)

// GroupCompletedEvent is published when every match in a group has a result.
type GroupCompletedEvent struct {
	TournamentID string `msgpack:"tournament_id"`
	GroupID      string `msgpack:"group_id"`
	Winner       string `msgpack:"winner"`
	RunnerUp     string `msgpack:"runner_up"`
}

// FinalUnlockedEvent is published when the cross-bracket final stage is created.
type FinalUnlockedEvent struct {
	TournamentID string   `msgpack:"tournament_id"`
	Qualifiers   []string `msgpack:"qualifiers"`
}

// TournamentCompletedEvent is published when the final stage finishes.
type TournamentCompletedEvent struct {
	TournamentID string `msgpack:"tournament_id"`
	Champion     string `msgpack:"champion"`
}
