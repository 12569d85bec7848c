package registry

import "github.com/sabocue/arena/internal/sabo"

// MatchRegistry is the only mutable shared resource of the bracket engine.
// Its two mutation operations enforce the populate-once and score-finality
// invariants; everything else is read-only snapshots.
type MatchRegistry interface {
	Add(matches ...*sabo.Match) error
	Get(id string) (*sabo.Match, error)
	GetByPosition(tournamentID string, groupID sabo.GroupID, dest sabo.Destination) (*sabo.Match, error)
	List(tournamentID string, filter Filter) []*sabo.Match
	ReadyMatches(tournamentID string, groupID *sabo.GroupID) []*sabo.Match
	ApplyPlayerSlot(matchID string, slot int, ref string) (*sabo.Match, error)
	ApplyScore(matchID string, score1, score2 int) (*sabo.Match, error)
	Remove(tournamentID string)
}
