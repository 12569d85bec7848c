package engine

import (
	"fmt"

	"github.com/sabocue/arena/internal/sabo"
)

// Resolution is the advancement instruction derived from a completed match.
type Resolution struct {
	WinnerRef  string
	LoserRef   string
	WinnerDest *sabo.Destination // nil for bracket-terminal matches
	LoserDest  *sabo.Destination // nil unless the loser drops to the losers bracket
}

// Resolve turns a completed match into its advancement instruction. It is a
// pure function: it never infers a winner from partial data and fails with
// ErrMatchNotCompleted on any non-terminal status.
func Resolve(m *sabo.Match) (Resolution, error) {
	if m.Status != sabo.MatchCompleted {
		return Resolution{}, fmt.Errorf("match %s is %s: %w", m.ID, m.Status, sabo.ErrMatchNotCompleted)
	}
	return Resolution{
		WinnerRef:  m.Winner(),
		LoserRef:   m.Loser(),
		WinnerDest: m.WinnerTo,
		LoserDest:  m.LoserTo,
	}, nil
}
