package engine

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sabocue/arena/internal/bracket"
	"github.com/sabocue/arena/internal/registry"
	"github.com/sabocue/arena/internal/sabo"
)

// Coordinator assembles the cross-bracket final stage once both qualifying
// groups report completion.
type Coordinator struct {
	registry registry.MatchRegistry

	// mu spans the existence check and the construction so two triggers
	// racing on the same tournament cannot both build a final stage.
	mu sync.Mutex
}

// NewCoordinator creates a Coordinator over the given registry.
func NewCoordinator(reg registry.MatchRegistry) *Coordinator {
	return &Coordinator{registry: reg}
}

// TryUnlock constructs the final stage if both groups are complete and it
// does not already exist. It is idempotent: repeated triggers observe
// existing FINAL matches and no-op.
//
// The optional persist hook runs between generation and registration. The
// final stage reaches durable storage before it reaches the registry, so a
// failed persist leaves the registry untouched and a later trigger retries
// from scratch.
func (c *Coordinator) TryUnlock(tournamentID string, raceTo int, persist func([]*sabo.Match) error) ([]*sabo.Match, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	gFinal := sabo.GroupFinal
	if existing := c.registry.List(tournamentID, registry.Filter{GroupID: &gFinal}); len(existing) > 0 {
		log.Debug("Final stage already exists", "tournamentID", tournamentID)
		return nil, false, nil
	}

	qualifiersA, okA := c.qualifiers(tournamentID, sabo.GroupA)
	qualifiersB, okB := c.qualifiers(tournamentID, sabo.GroupB)
	if !okA || !okB {
		log.Debug("Waiting for both groups to complete", "tournamentID", tournamentID, "groupA", okA, "groupB", okB)
		return nil, false, nil
	}

	q := sabo.FinalQualifiers{
		WinnerA:   qualifiersA[0],
		RunnerUpA: qualifiersA[1],
		WinnerB:   qualifiersB[0],
		RunnerUpB: qualifiersB[1],
	}
	matches, err := bracket.GenerateFinalStage(tournamentID, q, raceTo)
	if err != nil {
		return nil, false, fmt.Errorf("unlocking final stage: %w", err)
	}
	if persist != nil {
		if err := persist(matches); err != nil {
			return nil, false, fmt.Errorf("persisting final stage: %w", err)
		}
	}
	if err := c.registry.Add(matches...); err != nil {
		return nil, false, err
	}
	log.Info("Final stage unlocked", "tournamentID", tournamentID,
		"winnerA", q.WinnerA, "runnerUpA", q.RunnerUpA, "winnerB", q.WinnerB, "runnerUpB", q.RunnerUpB)
	return matches, true, nil
}

// qualifiers returns a group's grand-final winner and runner-up, or ok=false
// while the group is still in play.
func (c *Coordinator) qualifiers(tournamentID string, groupID sabo.GroupID) ([2]string, bool) {
	matches := c.registry.List(tournamentID, registry.Filter{GroupID: &groupID})
	if len(matches) == 0 {
		return [2]string{}, false
	}
	var grandFinal *sabo.Match
	for _, m := range matches {
		if m.Status != sabo.MatchCompleted {
			return [2]string{}, false
		}
		if m.Side == sabo.SideFinal {
			grandFinal = m
		}
	}
	if grandFinal == nil || grandFinal.Winner() == "" || grandFinal.Loser() == "" {
		return [2]string{}, false
	}
	return [2]string{grandFinal.Winner(), grandFinal.Loser()}, true
}
