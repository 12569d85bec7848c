package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	tournamentsCreated   int
	scoresSubmitted      int
	scoreRejections      int
	finalStagesUnlocked  int
	advancementDurations []float64
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		advancementDurations: make([]float64, 0),
	}
}

func (m *Mock) IncTournamentsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsCreated++
}

func (m *Mock) IncScoresSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoresSubmitted++
}

func (m *Mock) IncScoreRejections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreRejections++
}

func (m *Mock) IncFinalStagesUnlocked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalStagesUnlocked++
}

func (m *Mock) ObserveAdvancementDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advancementDurations = append(m.advancementDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// TournamentsCreated returns the number of times IncTournamentsCreated was called.
func (m *Mock) TournamentsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsCreated
}

// ScoresSubmitted returns the number of times IncScoresSubmitted was called.
func (m *Mock) ScoresSubmitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoresSubmitted
}

// ScoreRejections returns the number of times IncScoreRejections was called.
func (m *Mock) ScoreRejections() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreRejections
}

// FinalStagesUnlocked returns the number of times IncFinalStagesUnlocked was called.
func (m *Mock) FinalStagesUnlocked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finalStagesUnlocked
}

// AdvancementDurations returns the observed durations.
func (m *Mock) AdvancementDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.advancementDurations...)
}

// MockStore is an in-memory implementation of the MetricsStore interface for testing.
type MockStore struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewMockStore creates a new mock counter store.
func NewMockStore() *MockStore {
	return &MockStore{counters: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out, nil
}
