package registry_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/sabocue/arena/internal/bracket"
	"github.com/sabocue/arena/internal/registry"
	"github.com/sabocue/arena/internal/sabo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededRegistry(t *testing.T) (registry.MatchRegistry, []*sabo.Match) {
	t.Helper()

	refs := make([]string, 16)
	for i := range refs {
		refs[i] = fmt.Sprintf("player-%02d", i+1)
	}
	matches, err := bracket.GenerateGroup("t1", sabo.GroupA, refs, 5)
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, reg.Add(matches...))
	return reg, matches
}

func firstRoundMatch(t *testing.T, matches []*sabo.Match, number int) *sabo.Match {
	t.Helper()
	for _, m := range matches {
		if m.Side == sabo.SideWinners && m.Round == 1 && m.MatchNumber == number {
			return m
		}
	}
	t.Fatalf("no winners round 1 match #%d", number)
	return nil
}

func TestAddRefusesOccupiedPosition(t *testing.T) {
	reg, matches := seededRegistry(t)

	// A different match claiming an occupied bracket position rejects the
	// whole batch and leaves the index as it was.
	intruder := matches[0].Clone()
	intruder.ID = "intruder"
	extra, err := bracket.GenerateGroup("t2", sabo.GroupA, func() []string {
		refs := make([]string, 16)
		for i := range refs {
			refs[i] = fmt.Sprintf("other-%02d", i+1)
		}
		return refs
	}(), 5)
	require.NoError(t, err)

	err = reg.Add(append([]*sabo.Match{intruder}, extra...)...)
	assert.ErrorIs(t, err, sabo.ErrPositionOccupied)

	_, err = reg.Get("intruder")
	assert.ErrorIs(t, err, sabo.ErrMatchNotFound)
	assert.Empty(t, reg.List("t2", registry.Filter{}), "nothing from the failed batch is registered")

	// Re-adding a match under its own position is allowed (rehydration).
	assert.NoError(t, reg.Add(matches[0]))
}

func TestGetUnknownMatch(t *testing.T) {
	reg, _ := seededRegistry(t)

	_, err := reg.Get("nope")
	assert.ErrorIs(t, err, sabo.ErrMatchNotFound)
}

func TestListOrdering(t *testing.T) {
	reg, _ := seededRegistry(t)

	listed := reg.List("t1", registry.Filter{})
	require.Len(t, listed, bracket.GroupMatchCount)

	// Winners rounds first, then losers, then the grand final.
	assert.Equal(t, sabo.SideWinners, listed[0].Side)
	assert.Equal(t, sabo.SideFinal, listed[len(listed)-1].Side)
	for i := 1; i < len(listed); i++ {
		a, b := listed[i-1], listed[i]
		if a.Side == b.Side {
			assert.LessOrEqual(t, a.Round, b.Round)
			if a.Round == b.Round {
				assert.Less(t, a.MatchNumber, b.MatchNumber)
			}
		}
	}
}

func TestReadyMatchesAfterSeeding(t *testing.T) {
	reg, _ := seededRegistry(t)

	groupA := sabo.GroupA
	ready := reg.ReadyMatches("t1", &groupA)
	require.Len(t, ready, 8, "all round-one matches start ready")
	for _, m := range ready {
		assert.Equal(t, 1, m.Round)
		assert.NotEmpty(t, m.Player1)
		assert.NotEmpty(t, m.Player2)
	}
}

func TestApplyScoreIdempotentResubmit(t *testing.T) {
	reg, matches := seededRegistry(t)
	m := firstRoundMatch(t, matches, 1)

	first, err := reg.ApplyScore(m.ID, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, sabo.MatchCompleted, first.Status)
	assert.Equal(t, m.Player1, first.WinnerID)

	// Identical resubmit is a no-op success, supporting client retries.
	second, err := reg.ApplyScore(m.ID, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, first.WinnerID, second.WinnerID)
	assert.Equal(t, *first.Score1, *second.Score1)

	// A different score after finalization is a hard error.
	_, err = reg.ApplyScore(m.ID, 5, 4)
	assert.ErrorIs(t, err, sabo.ErrScoreAlreadyFinalized)
}

func TestApplyScoreValidation(t *testing.T) {
	tests := []struct {
		name    string
		s1, s2  int
		wantErr error
	}{
		{"draw", 5, 5, sabo.ErrInvalidScore},
		{"negative", -1, 5, sabo.ErrInvalidScore},
		{"below race target", 4, 2, sabo.ErrInvalidScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, matches := seededRegistry(t)
			m := firstRoundMatch(t, matches, 1)
			_, err := reg.ApplyScore(m.ID, tt.s1, tt.s2)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyScoreOnPendingMatch(t *testing.T) {
	reg, matches := seededRegistry(t)

	var pending *sabo.Match
	for _, m := range matches {
		if m.Status == sabo.MatchPending {
			pending = m
			break
		}
	}
	require.NotNil(t, pending)

	_, err := reg.ApplyScore(pending.ID, 5, 0)
	assert.ErrorIs(t, err, sabo.ErrMatchNotReady)
}

func TestApplyPlayerSlotPopulateOnce(t *testing.T) {
	reg, matches := seededRegistry(t)

	var target *sabo.Match
	for _, m := range matches {
		if m.Side == sabo.SideWinners && m.Round == 2 {
			target = m
			break
		}
	}
	require.NotNil(t, target)

	updated, err := reg.ApplyPlayerSlot(target.ID, 1, "player-01")
	require.NoError(t, err)
	assert.Equal(t, sabo.MatchPending, updated.Status, "one slot is not enough to be ready")

	_, err = reg.ApplyPlayerSlot(target.ID, 1, "player-02")
	assert.ErrorIs(t, err, sabo.ErrSlotAlreadyOccupied)

	updated, err = reg.ApplyPlayerSlot(target.ID, 2, "player-03")
	require.NoError(t, err)
	assert.Equal(t, sabo.MatchReady, updated.Status)
}

// Two writers racing for the same downstream slot: exactly one wins, the
// other gets ErrSlotAlreadyOccupied. Never a silent overwrite.
func TestApplyPlayerSlotConcurrentRace(t *testing.T) {
	reg, matches := seededRegistry(t)

	var target *sabo.Match
	for _, m := range matches {
		if m.Side == sabo.SideWinners && m.Round == 2 {
			target = m
			break
		}
	}
	require.NotNil(t, target)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = reg.ApplyPlayerSlot(target.ID, 1, fmt.Sprintf("racer-%d", i))
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, sabo.ErrSlotAlreadyOccupied)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one writer must lose the race")

	final, err := reg.Get(target.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, final.Player1)
}

func TestSnapshotsDoNotAliasLiveState(t *testing.T) {
	reg, matches := seededRegistry(t)
	m := firstRoundMatch(t, matches, 1)

	snap, err := reg.Get(m.ID)
	require.NoError(t, err)
	snap.Player1 = "tampered"

	fresh, err := reg.Get(m.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", fresh.Player1)
}

func TestRemove(t *testing.T) {
	reg, _ := seededRegistry(t)

	reg.Remove("t1")
	assert.Empty(t, reg.List("t1", registry.Filter{}))
}
