package bracket

import "github.com/sabocue/arena/internal/sabo"

// The bracket shape for a 16-entrant double-elimination group.
//
// Winners side runs four rounds (8, 4, 2, 1 matches). Losers side runs six
// rounds (4, 4, 2, 2, 1, 1): odd rounds pair losers-side survivors, even
// rounds drop in the freshly eliminated winners-side losers. The grand final
// pairs the winners champion with the losers champion and is terminal — no
// bracket reset.
var (
	winnersRoundSizes = []int{8, 4, 2, 1}
	losersRoundSizes  = []int{4, 4, 2, 2, 1, 1}
)

// GroupMatchCount is the number of matches generated per group:
// 15 winners-side, 14 losers-side, 1 grand final.
const GroupMatchCount = 30

// winnersLoserDest is the drop wiring: where the loser of winners-bracket
// round r, match m lands in the losers bracket. Kept as an explicit table so
// the "no slot populated twice, no entrant skips an elimination opportunity"
// invariant is checkable by inspection. Rounds 2 and 3 reverse the match
// order so losers-side survivors don't immediately rematch the opponent that
// just sent them down. The winners-final loser drops into the losers final.
var winnersLoserDest = map[int][]sabo.Destination{
	1: {
		{Side: sabo.SideLosers, Round: 1, MatchNumber: 1, Slot: 1},
		{Side: sabo.SideLosers, Round: 1, MatchNumber: 1, Slot: 2},
		{Side: sabo.SideLosers, Round: 1, MatchNumber: 2, Slot: 1},
		{Side: sabo.SideLosers, Round: 1, MatchNumber: 2, Slot: 2},
		{Side: sabo.SideLosers, Round: 1, MatchNumber: 3, Slot: 1},
		{Side: sabo.SideLosers, Round: 1, MatchNumber: 3, Slot: 2},
		{Side: sabo.SideLosers, Round: 1, MatchNumber: 4, Slot: 1},
		{Side: sabo.SideLosers, Round: 1, MatchNumber: 4, Slot: 2},
	},
	2: {
		{Side: sabo.SideLosers, Round: 2, MatchNumber: 4, Slot: 2},
		{Side: sabo.SideLosers, Round: 2, MatchNumber: 3, Slot: 2},
		{Side: sabo.SideLosers, Round: 2, MatchNumber: 2, Slot: 2},
		{Side: sabo.SideLosers, Round: 2, MatchNumber: 1, Slot: 2},
	},
	3: {
		{Side: sabo.SideLosers, Round: 4, MatchNumber: 2, Slot: 2},
		{Side: sabo.SideLosers, Round: 4, MatchNumber: 1, Slot: 2},
	},
	4: {
		{Side: sabo.SideLosers, Round: 6, MatchNumber: 1, Slot: 2},
	},
}

// losersWinnerDest wires losers-bracket survivors forward, ending at the
// grand final's second slot.
var losersWinnerDest = map[int][]sabo.Destination{
	1: {
		{Side: sabo.SideLosers, Round: 2, MatchNumber: 1, Slot: 1},
		{Side: sabo.SideLosers, Round: 2, MatchNumber: 2, Slot: 1},
		{Side: sabo.SideLosers, Round: 2, MatchNumber: 3, Slot: 1},
		{Side: sabo.SideLosers, Round: 2, MatchNumber: 4, Slot: 1},
	},
	2: {
		{Side: sabo.SideLosers, Round: 3, MatchNumber: 1, Slot: 1},
		{Side: sabo.SideLosers, Round: 3, MatchNumber: 1, Slot: 2},
		{Side: sabo.SideLosers, Round: 3, MatchNumber: 2, Slot: 1},
		{Side: sabo.SideLosers, Round: 3, MatchNumber: 2, Slot: 2},
	},
	3: {
		{Side: sabo.SideLosers, Round: 4, MatchNumber: 1, Slot: 1},
		{Side: sabo.SideLosers, Round: 4, MatchNumber: 2, Slot: 1},
	},
	4: {
		{Side: sabo.SideLosers, Round: 5, MatchNumber: 1, Slot: 1},
		{Side: sabo.SideLosers, Round: 5, MatchNumber: 1, Slot: 2},
	},
	5: {
		{Side: sabo.SideLosers, Round: 6, MatchNumber: 1, Slot: 1},
	},
	6: {
		{Side: sabo.SideFinal, Round: 1, MatchNumber: 1, Slot: 2},
	},
}

// winnersWinnerDest computes the forward wiring inside the winners bracket.
// Standard halving: round r match m feeds round r+1 match ceil(m/2), slot by
// parity. The winners-final champion takes the grand final's first slot.
func winnersWinnerDest(round, matchNumber int) sabo.Destination {
	if round == len(winnersRoundSizes) {
		return sabo.Destination{Side: sabo.SideFinal, Round: 1, MatchNumber: 1, Slot: 1}
	}
	slot := 2
	if matchNumber%2 == 1 {
		slot = 1
	}
	return sabo.Destination{
		Side:        sabo.SideWinners,
		Round:       round + 1,
		MatchNumber: (matchNumber + 1) / 2,
		Slot:        slot,
	}
}
