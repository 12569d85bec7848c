package notifier

import (
	"sync"

	"github.com/sabocue/arena/internal/sabo"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendGroupCompletedFunc      func(tournamentID string, groupID sabo.GroupID, winner, runnerUp string, dryRun bool) error
	SendFinalUnlockedFunc       func(tournamentID string, qualifiers sabo.FinalQualifiers, dryRun bool) error
	SendTournamentCompletedFunc func(tournamentID, champion string, dryRun bool) error

	// Call records
	GroupCompletedCalls      []GroupCompletedCall
	FinalUnlockedCalls       []FinalUnlockedCall
	TournamentCompletedCalls []TournamentCompletedCall
}

// GroupCompletedCall holds the arguments for a call to SendGroupCompleted.
type GroupCompletedCall struct {
	TournamentID string
	GroupID      sabo.GroupID
	Winner       string
	RunnerUp     string
}

// FinalUnlockedCall holds the arguments for a call to SendFinalUnlocked.
type FinalUnlockedCall struct {
	TournamentID string
	Qualifiers   sabo.FinalQualifiers
}

// TournamentCompletedCall holds the arguments for a call to SendTournamentCompleted.
type TournamentCompletedCall struct {
	TournamentID string
	Champion     string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GroupCompletedCalls = nil
	m.FinalUnlockedCalls = nil
	m.TournamentCompletedCalls = nil
}

func (m *Mock) SendGroupCompleted(tournamentID string, groupID sabo.GroupID, winner, runnerUp string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GroupCompletedCalls = append(m.GroupCompletedCalls, GroupCompletedCall{tournamentID, groupID, winner, runnerUp})
	if m.SendGroupCompletedFunc != nil {
		return m.SendGroupCompletedFunc(tournamentID, groupID, winner, runnerUp, dryRun)
	}
	return nil
}

func (m *Mock) SendFinalUnlocked(tournamentID string, qualifiers sabo.FinalQualifiers, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalUnlockedCalls = append(m.FinalUnlockedCalls, FinalUnlockedCall{tournamentID, qualifiers})
	if m.SendFinalUnlockedFunc != nil {
		return m.SendFinalUnlockedFunc(tournamentID, qualifiers, dryRun)
	}
	return nil
}

func (m *Mock) SendTournamentCompleted(tournamentID, champion string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentCompletedCalls = append(m.TournamentCompletedCalls, TournamentCompletedCall{tournamentID, champion})
	if m.SendTournamentCompletedFunc != nil {
		return m.SendTournamentCompletedFunc(tournamentID, champion, dryRun)
	}
	return nil
}
