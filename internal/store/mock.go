package store

import (
	"sync"

	"github.com/sabocue/arena/internal/sabo"
)

// MockStore is a mock implementation of the TournamentStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	SaveTournamentFunc    func(t *sabo.Tournament, groups []*sabo.Group) error
	SaveMatchesFunc       func(matches []*sabo.Match) error
	UpdateMatchFunc       func(m *sabo.Match) error
	UpdateGroupStatusFunc func(tournamentID string, groupID sabo.GroupID, status sabo.GroupStatus) error
	UpdateTournamentFunc  func(t *sabo.Tournament) error
	GetTournamentFunc     func(id string) (*sabo.Tournament, error)
	LoadTournamentFunc    func(id string) (*sabo.Tournament, []*sabo.Group, []*sabo.Match, error)
	ListTournamentsFunc   func() ([]*sabo.Tournament, error)

	// Call records
	SaveTournamentCalls    []*sabo.Tournament
	SaveMatchesCalls       [][]*sabo.Match
	UpdateMatchCalls       []*sabo.Match
	UpdateGroupStatusCalls []struct {
		TournamentID string
		GroupID      sabo.GroupID
		Status       sabo.GroupStatus
	}
	UpdateTournamentCalls []*sabo.Tournament
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveTournamentCalls = nil
	m.SaveMatchesCalls = nil
	m.UpdateMatchCalls = nil
	m.UpdateGroupStatusCalls = nil
	m.UpdateTournamentCalls = nil
}

func (m *MockStore) SaveTournament(t *sabo.Tournament, groups []*sabo.Group) error {
	m.mu.Lock()
	m.SaveTournamentCalls = append(m.SaveTournamentCalls, t)
	m.mu.Unlock()
	if m.SaveTournamentFunc != nil {
		return m.SaveTournamentFunc(t, groups)
	}
	return nil
}

func (m *MockStore) SaveMatches(matches []*sabo.Match) error {
	m.mu.Lock()
	m.SaveMatchesCalls = append(m.SaveMatchesCalls, matches)
	m.mu.Unlock()
	if m.SaveMatchesFunc != nil {
		return m.SaveMatchesFunc(matches)
	}
	return nil
}

func (m *MockStore) UpdateMatch(match *sabo.Match) error {
	m.mu.Lock()
	m.UpdateMatchCalls = append(m.UpdateMatchCalls, match)
	m.mu.Unlock()
	if m.UpdateMatchFunc != nil {
		return m.UpdateMatchFunc(match)
	}
	return nil
}

func (m *MockStore) UpdateGroupStatus(tournamentID string, groupID sabo.GroupID, status sabo.GroupStatus) error {
	m.mu.Lock()
	m.UpdateGroupStatusCalls = append(m.UpdateGroupStatusCalls, struct {
		TournamentID string
		GroupID      sabo.GroupID
		Status       sabo.GroupStatus
	}{tournamentID, groupID, status})
	m.mu.Unlock()
	if m.UpdateGroupStatusFunc != nil {
		return m.UpdateGroupStatusFunc(tournamentID, groupID, status)
	}
	return nil
}

func (m *MockStore) UpdateTournament(t *sabo.Tournament) error {
	m.mu.Lock()
	m.UpdateTournamentCalls = append(m.UpdateTournamentCalls, t)
	m.mu.Unlock()
	if m.UpdateTournamentFunc != nil {
		return m.UpdateTournamentFunc(t)
	}
	return nil
}

func (m *MockStore) GetTournament(id string) (*sabo.Tournament, error) {
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(id)
	}
	return nil, sabo.ErrTournamentNotFound
}

func (m *MockStore) LoadTournament(id string) (*sabo.Tournament, []*sabo.Group, []*sabo.Match, error) {
	if m.LoadTournamentFunc != nil {
		return m.LoadTournamentFunc(id)
	}
	return nil, nil, nil, sabo.ErrTournamentNotFound
}

func (m *MockStore) ListTournaments() ([]*sabo.Tournament, error) {
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc()
	}
	return nil, nil
}
