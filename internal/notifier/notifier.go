package notifier

import (
	"github.com/sabocue/arena/internal/sabo"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// A group's bracket is fully played out.
	SendGroupCompleted(tournamentID string, groupID sabo.GroupID, winner, runnerUp string, dryRun bool) error
	// The cross-bracket final stage has been created.
	SendFinalUnlocked(tournamentID string, qualifiers sabo.FinalQualifiers, dryRun bool) error
	// The tournament has a champion.
	SendTournamentCompleted(tournamentID, champion string, dryRun bool) error
}
