package store

import "github.com/sabocue/arena/internal/sabo"

// TournamentStore is the durable mirror of the in-memory match registry.
// Updates carry the same populate-once semantics as the registry: a
// finalized match row is never silently overwritten, so the guarantee
// survives a crash-and-resume.
type TournamentStore interface {
	SaveTournament(t *sabo.Tournament, groups []*sabo.Group) error
	SaveMatches(matches []*sabo.Match) error
	UpdateMatch(m *sabo.Match) error
	UpdateGroupStatus(tournamentID string, groupID sabo.GroupID, status sabo.GroupStatus) error
	UpdateTournament(t *sabo.Tournament) error
	GetTournament(id string) (*sabo.Tournament, error)
	LoadTournament(id string) (*sabo.Tournament, []*sabo.Group, []*sabo.Match, error)
	ListTournaments() ([]*sabo.Tournament, error)
}
