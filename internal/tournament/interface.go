package tournament

import "github.com/sabocue/arena/internal/sabo"

// TournamentService is the application-facing surface of the bracket engine.
// HTTP handlers and the CLI depend on this interface, not on Service.
type TournamentService interface {
	// CreateTournament builds both 16-player group brackets, persists them,
	// and seeds the registry. groupA and groupB must not share participants.
	CreateTournament(clubID string, groupA, groupB []string, raceTo int) (*sabo.Tournament, error)

	// SubmitScore records a result and advances the bracket. The bool is
	// true when this submission unlocked the cross-bracket final stage.
	SubmitScore(tournamentID, matchID string, score1, score2 int) (*sabo.Match, bool, error)

	// GetState returns a full snapshot including per-group progress.
	GetState(tournamentID string) (*State, error)

	// ListReadyMatches returns matches that can accept a score right now,
	// optionally filtered to one group.
	ListReadyMatches(tournamentID string, groupID *sabo.GroupID) ([]*sabo.Match, error)

	// LoadTournament rehydrates the registry from the durable store,
	// replacing any in-memory state for the tournament.
	LoadTournament(tournamentID string) (*sabo.Tournament, error)

	ListTournaments() ([]*sabo.Tournament, error)
}
