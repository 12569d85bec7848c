// Package engine applies match results to the bracket graph: it validates a
// submitted score, resolves winner and loser, populates the downstream
// slots one hop, and detects group and tournament completion. Cascades
// happen naturally because each subsequent score submission re-triggers the
// same steps.
package engine

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sabocue/arena/internal/registry"
	"github.com/sabocue/arena/internal/sabo"
)

// New creates an advancement engine over the given registry.
func New(reg registry.MatchRegistry) *Engine {
	return &Engine{
		registry: reg,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockFor returns the per-tournament mutex guarding the advancement
// critical section.
func (e *Engine) lockFor(tournamentID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.locks[tournamentID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[tournamentID] = l
	}
	return l
}

// SubmitScore records a score and advances winner and loser into their
// downstream slots, all-or-nothing: every validation runs before the first
// mutation, so a failed call leaves the registry untouched.
func (e *Engine) SubmitScore(tournamentID, matchID string, score1, score2 int) (*Result, error) {
	l := e.lockFor(tournamentID)
	l.Lock()
	defer l.Unlock()

	m, err := e.registry.Get(matchID)
	if err != nil {
		return nil, err
	}
	if m.TournamentID != tournamentID {
		return nil, fmt.Errorf("match %s belongs to tournament %s: %w", matchID, m.TournamentID, sabo.ErrMatchNotFound)
	}

	// Completed matches short-circuit to the registry's idempotency check:
	// an identical resubmit succeeds without re-running advancement, a
	// conflicting one fails.
	if m.Status == sabo.MatchCompleted {
		dup, err := e.registry.ApplyScore(matchID, score1, score2)
		if err != nil {
			return nil, err
		}
		return &Result{Match: dup}, nil
	}

	// Pre-flight: the destination slots must be free before any mutation.
	// The slot index is fixed by the wiring regardless of who wins, so this
	// can be checked up front.
	for _, dest := range []*sabo.Destination{m.WinnerTo, m.LoserTo} {
		if dest == nil {
			continue
		}
		target, err := e.registry.GetByPosition(tournamentID, m.GroupID, *dest)
		if err != nil {
			return nil, err
		}
		occupied := (dest.Slot == 1 && target.Player1 != "") || (dest.Slot == 2 && target.Player2 != "")
		if occupied {
			return nil, fmt.Errorf("destination %s round %d #%d slot %d: %w",
				dest.Side, dest.Round, dest.MatchNumber, dest.Slot, sabo.ErrSlotAlreadyOccupied)
		}
	}

	completed, err := e.registry.ApplyScore(matchID, score1, score2)
	if err != nil {
		return nil, err
	}

	res, err := Resolve(completed)
	if err != nil {
		return nil, err
	}

	if err := e.advance(tournamentID, completed.GroupID, res.WinnerDest, res.WinnerRef); err != nil {
		return nil, err
	}
	if err := e.advance(tournamentID, completed.GroupID, res.LoserDest, res.LoserRef); err != nil {
		return nil, err
	}

	result := &Result{Match: completed}
	if completed.GroupID == sabo.GroupFinal {
		if e.allCompleted(tournamentID, sabo.GroupFinal) {
			result.TournamentCompleted = true
			result.Champion = e.finalChampion(tournamentID)
			log.Info("Tournament completed", "tournamentID", tournamentID, "champion", result.Champion)
		}
	} else if e.allCompleted(tournamentID, completed.GroupID) {
		gid := completed.GroupID
		result.GroupCompleted = &gid
		log.Info("Group completed", "tournamentID", tournamentID, "group", gid)
	}
	return result, nil
}

func (e *Engine) advance(tournamentID string, groupID sabo.GroupID, dest *sabo.Destination, ref string) error {
	if dest == nil {
		return nil
	}
	target, err := e.registry.GetByPosition(tournamentID, groupID, *dest)
	if err != nil {
		return err
	}
	_, err = e.registry.ApplyPlayerSlot(target.ID, dest.Slot, ref)
	return err
}

func (e *Engine) allCompleted(tournamentID string, groupID sabo.GroupID) bool {
	matches := e.registry.List(tournamentID, registry.Filter{GroupID: &groupID})
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if m.Status != sabo.MatchCompleted {
			return false
		}
	}
	return true
}

// finalChampion reads the winner of the last final-stage round.
func (e *Engine) finalChampion(tournamentID string) string {
	matches := e.registry.List(tournamentID, registry.Filter{GroupID: groupIDPtr(sabo.GroupFinal)})
	champion := ""
	lastRound := 0
	for _, m := range matches {
		if m.Round > lastRound && m.WinnerID != "" {
			lastRound = m.Round
			champion = m.WinnerID
		}
	}
	return champion
}

func groupIDPtr(g sabo.GroupID) *sabo.GroupID { return &g }
