// Package bracket builds the static match graph of a SABO-32 tournament:
// two 16-player double-elimination groups plus the cross-bracket final
// stage. Generation is pure — persistence is the caller's responsibility —
// and idempotent for the same participant ordering.
package bracket

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sabocue/arena/internal/sabo"
)

// GenerateGroup builds the full match graph for one 16-player group.
//
// The participant order defines the round-1 pairing: seed m plays seed 17-m
// (1v16, 2v15, ..., 8v9). Round-1 matches come out ready with both players
// seeded; every other match starts pending with empty slots.
func GenerateGroup(tournamentID string, groupID sabo.GroupID, participants []string, raceTo int) ([]*sabo.Match, error) {
	if len(participants) != sabo.GroupSize {
		return nil, fmt.Errorf("group %s: got %d participants, want %d: %w",
			groupID, len(participants), sabo.GroupSize, sabo.ErrInvalidParticipantCount)
	}
	if err := checkDuplicates(participants); err != nil {
		return nil, fmt.Errorf("group %s: %w", groupID, err)
	}

	matches := make([]*sabo.Match, 0, GroupMatchCount)

	for round, size := range winnersRoundSizes {
		round++ // rounds are 1-based
		for m := 1; m <= size; m++ {
			winnerTo := winnersWinnerDest(round, m)
			loserTo := winnersLoserDest[round][m-1]
			match := &sabo.Match{
				ID:           uuid.New().String(),
				TournamentID: tournamentID,
				GroupID:      groupID,
				Side:         sabo.SideWinners,
				Round:        round,
				MatchNumber:  m,
				RaceTo:       raceTo,
				Status:       sabo.MatchPending,
				WinnerTo:     &winnerTo,
				LoserTo:      &loserTo,
			}
			if round == 1 {
				match.Player1 = participants[m-1]
				match.Player2 = participants[sabo.GroupSize-m]
				match.Status = sabo.MatchReady
			}
			matches = append(matches, match)
		}
	}

	for round, size := range losersRoundSizes {
		round++
		for m := 1; m <= size; m++ {
			winnerTo := losersWinnerDest[round][m-1]
			matches = append(matches, &sabo.Match{
				ID:           uuid.New().String(),
				TournamentID: tournamentID,
				GroupID:      groupID,
				Side:         sabo.SideLosers,
				Round:        round,
				MatchNumber:  m,
				RaceTo:       raceTo,
				Status:       sabo.MatchPending,
				WinnerTo:     &winnerTo,
			})
		}
	}

	// Grand final: winners champion vs losers champion, single decisive
	// match. Its winner and loser are the group's two qualifiers, so both
	// destinations stay nil — the cross-bracket coordinator picks them up.
	matches = append(matches, &sabo.Match{
		ID:           uuid.New().String(),
		TournamentID: tournamentID,
		GroupID:      groupID,
		Side:         sabo.SideFinal,
		Round:        1,
		MatchNumber:  1,
		RaceTo:       raceTo,
		Status:       sabo.MatchPending,
	})

	return matches, nil
}

// GenerateFinalStage builds the cross-bracket stage in reduced-size mode:
// four qualifiers, two cross-seeded semifinals and a final. Each group's
// winner meets the other group's runner-up, so the two group champions can
// only meet in the final.
func GenerateFinalStage(tournamentID string, q sabo.FinalQualifiers, raceTo int) ([]*sabo.Match, error) {
	refs := []string{q.WinnerA, q.RunnerUpA, q.WinnerB, q.RunnerUpB}
	for _, ref := range refs {
		if ref == "" {
			return nil, fmt.Errorf("final stage for tournament %s: %w", tournamentID, sabo.ErrIncompleteQualifiers)
		}
	}
	if err := checkDuplicates(refs); err != nil {
		return nil, fmt.Errorf("final stage for tournament %s: %w", tournamentID, err)
	}

	semiPairs := [2][2]string{
		{q.WinnerA, q.RunnerUpB},
		{q.WinnerB, q.RunnerUpA},
	}

	matches := make([]*sabo.Match, 0, 3)
	for m := 1; m <= 2; m++ {
		winnerTo := sabo.Destination{Side: sabo.SideFinal, Round: 2, MatchNumber: 1, Slot: m}
		matches = append(matches, &sabo.Match{
			ID:           uuid.New().String(),
			TournamentID: tournamentID,
			GroupID:      sabo.GroupFinal,
			Side:         sabo.SideFinal,
			Round:        1,
			MatchNumber:  m,
			Player1:      semiPairs[m-1][0],
			Player2:      semiPairs[m-1][1],
			RaceTo:       raceTo,
			Status:       sabo.MatchReady,
			WinnerTo:     &winnerTo,
		})
	}
	matches = append(matches, &sabo.Match{
		ID:           uuid.New().String(),
		TournamentID: tournamentID,
		GroupID:      sabo.GroupFinal,
		Side:         sabo.SideFinal,
		Round:        2,
		MatchNumber:  1,
		RaceTo:       raceTo,
		Status:       sabo.MatchPending,
	})

	return matches, nil
}

func checkDuplicates(refs []string) error {
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			return fmt.Errorf("reference %q: %w", ref, sabo.ErrDuplicateParticipant)
		}
		seen[ref] = struct{}{}
	}
	return nil
}
