package sabo

import "errors"

// Error kinds surfaced by the bracket engine. Callers match with errors.Is;
// the HTTP layer maps them to user-facing statuses.
var (
	// Generation errors
	ErrInvalidParticipantCount = errors.New("participant list must contain exactly the required number of entrants")
	ErrDuplicateParticipant    = errors.New("participant list contains a duplicate reference")
	ErrIncompleteQualifiers    = errors.New("final stage requires two resolved qualifiers from each group")

	// Lookup errors
	ErrMatchNotFound      = errors.New("match not found")
	ErrTournamentNotFound = errors.New("tournament not found")

	// Mutation errors
	ErrSlotAlreadyOccupied   = errors.New("player slot is already occupied")
	ErrMatchNotReady         = errors.New("match is not ready for a score")
	ErrInvalidScore          = errors.New("invalid score")
	ErrScoreAlreadyFinalized = errors.New("match result was already recorded")
	ErrMatchNotCompleted     = errors.New("match is not completed")
	ErrPositionOccupied      = errors.New("bracket position is already occupied")
)
