// Package registry holds the authoritative in-memory index over a
// tournament's matches. The guarded ApplyPlayerSlot and ApplyScore
// operations centralize the populate-once invariant instead of leaving it
// to each call site.
package registry

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/sabocue/arena/internal/sabo"
)

// New creates an empty MatchRegistry.
func New() MatchRegistry {
	return &store{
		byID:       make(map[string]*sabo.Match),
		byPosition: make(map[position]string),
	}
}

// Add registers matches under their bracket positions. A position already
// held by a different match rejects the whole batch before the first insert,
// so a failed Add leaves the index untouched.
func (s *store) Add(matches ...*sabo.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[position]string, len(matches))
	for _, m := range matches {
		pos := positionOf(m)
		if id, ok := s.byPosition[pos]; ok && id != m.ID {
			return fmt.Errorf("match %s holds %s/%s round %d #%d: %w",
				id, m.GroupID, m.Side, m.Round, m.MatchNumber, sabo.ErrPositionOccupied)
		}
		if id, ok := seen[pos]; ok && id != m.ID {
			return fmt.Errorf("matches %s and %s both claim %s/%s round %d #%d: %w",
				id, m.ID, m.GroupID, m.Side, m.Round, m.MatchNumber, sabo.ErrPositionOccupied)
		}
		seen[pos] = m.ID
	}
	for _, m := range matches {
		c := m.Clone()
		s.byID[c.ID] = c
		s.byPosition[positionOf(c)] = c.ID
	}
	log.Debug("Registered matches", "count", len(matches))
	return nil
}

func (s *store) Get(id string) (*sabo.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, sabo.ErrMatchNotFound)
	}
	return m.Clone(), nil
}

func (s *store) GetByPosition(tournamentID string, groupID sabo.GroupID, dest sabo.Destination) (*sabo.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := s.getByPositionLocked(tournamentID, groupID, dest)
	if err != nil {
		return nil, err
	}
	return m.Clone(), nil
}

func (s *store) getByPositionLocked(tournamentID string, groupID sabo.GroupID, dest sabo.Destination) (*sabo.Match, error) {
	key := position{
		tournamentID: tournamentID,
		groupID:      groupID,
		side:         dest.Side,
		round:        dest.Round,
		matchNumber:  dest.MatchNumber,
	}
	id, ok := s.byPosition[key]
	if !ok {
		return nil, fmt.Errorf("no match at %s/%s round %d #%d: %w",
			groupID, dest.Side, dest.Round, dest.MatchNumber, sabo.ErrMatchNotFound)
	}
	return s.byID[id], nil
}

// List returns a snapshot of a tournament's matches ordered by
// (group, bracket side, round, match number).
func (s *store) List(tournamentID string, filter Filter) []*sabo.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*sabo.Match
	for _, m := range s.byID {
		if m.TournamentID != tournamentID {
			continue
		}
		if filter.GroupID != nil && m.GroupID != *filter.GroupID {
			continue
		}
		if filter.Side != nil && m.Side != *filter.Side {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		out = append(out, m.Clone())
	}
	sortMatches(out)
	return out
}

// ReadyMatches is the actionable work queue for tournament staff.
func (s *store) ReadyMatches(tournamentID string, groupID *sabo.GroupID) []*sabo.Match {
	ready := sabo.MatchReady
	return s.List(tournamentID, Filter{GroupID: groupID, Status: &ready})
}

// ApplyPlayerSlot populates one player slot of a match, exactly once. A
// second writer racing for the same slot gets ErrSlotAlreadyOccupied, never
// a silent overwrite.
func (s *store) ApplyPlayerSlot(matchID string, slot int, ref string) (*sabo.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[matchID]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", matchID, sabo.ErrMatchNotFound)
	}
	if slot != 1 && slot != 2 {
		return nil, fmt.Errorf("match %s: slot %d out of range: %w", matchID, slot, sabo.ErrSlotAlreadyOccupied)
	}

	switch slot {
	case 1:
		if m.Player1 != "" {
			return nil, fmt.Errorf("match %s slot 1 holds %q: %w", matchID, m.Player1, sabo.ErrSlotAlreadyOccupied)
		}
		m.Player1 = ref
	case 2:
		if m.Player2 != "" {
			return nil, fmt.Errorf("match %s slot 2 holds %q: %w", matchID, m.Player2, sabo.ErrSlotAlreadyOccupied)
		}
		m.Player2 = ref
	}

	if m.Player1 != "" && m.Player2 != "" && m.Status == sabo.MatchPending {
		m.Status = sabo.MatchReady
	}
	log.Debug("Populated player slot", "matchID", matchID, "slot", slot, "ref", ref, "status", m.Status)
	return m.Clone(), nil
}

// ApplyScore records a final score. Resubmitting the identical score on a
// completed match is a no-op success so clients can retry safely; a
// different score on a completed match fails with ErrScoreAlreadyFinalized.
func (s *store) ApplyScore(matchID string, score1, score2 int) (*sabo.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[matchID]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", matchID, sabo.ErrMatchNotFound)
	}

	if m.Status == sabo.MatchCompleted {
		if m.Score1 != nil && *m.Score1 == score1 && m.Score2 != nil && *m.Score2 == score2 {
			log.Debug("Identical score resubmitted, treating as success", "matchID", matchID)
			return m.Clone(), nil
		}
		return nil, fmt.Errorf("match %s already has a result: %w", matchID, sabo.ErrScoreAlreadyFinalized)
	}
	if m.Status != sabo.MatchReady && m.Status != sabo.MatchInProgress {
		return nil, fmt.Errorf("match %s is %s: %w", matchID, m.Status, sabo.ErrMatchNotReady)
	}
	if err := validateScore(score1, score2, m.RaceTo); err != nil {
		return nil, fmt.Errorf("match %s: %w", matchID, err)
	}

	m.Score1 = &score1
	m.Score2 = &score2
	if score1 > score2 {
		m.WinnerID = m.Player1
	} else {
		m.WinnerID = m.Player2
	}
	m.Status = sabo.MatchCompleted
	log.Info("Score recorded", "matchID", matchID, "score", fmt.Sprintf("%d-%d", score1, score2), "winner", m.WinnerID)
	return m.Clone(), nil
}

// Remove drops all of a tournament's matches from the index.
func (s *store) Remove(tournamentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.byID {
		if m.TournamentID != tournamentID {
			continue
		}
		delete(s.byPosition, positionOf(m))
		delete(s.byID, id)
	}
}

func validateScore(score1, score2, raceTo int) error {
	if score1 < 0 || score2 < 0 {
		return fmt.Errorf("scores must be non-negative: %w", sabo.ErrInvalidScore)
	}
	if score1 == score2 {
		return fmt.Errorf("draws are not possible: %w", sabo.ErrInvalidScore)
	}
	if max(score1, score2) < raceTo {
		return fmt.Errorf("winning score %d is below the race target %d: %w", max(score1, score2), raceTo, sabo.ErrInvalidScore)
	}
	return nil
}

func positionOf(m *sabo.Match) position {
	return position{
		tournamentID: m.TournamentID,
		groupID:      m.GroupID,
		side:         m.Side,
		round:        m.Round,
		matchNumber:  m.MatchNumber,
	}
}

var groupOrder = map[sabo.GroupID]int{sabo.GroupA: 0, sabo.GroupB: 1, sabo.GroupFinal: 2}
var sideOrder = map[sabo.BracketSide]int{sabo.SideWinners: 0, sabo.SideLosers: 1, sabo.SideFinal: 2}

func sortMatches(matches []*sabo.Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.GroupID != b.GroupID {
			return groupOrder[a.GroupID] < groupOrder[b.GroupID]
		}
		if a.Side != b.Side {
			return sideOrder[a.Side] < sideOrder[b.Side]
		}
		if a.Round != b.Round {
			return a.Round < b.Round
		}
		return a.MatchNumber < b.MatchNumber
	})
}
