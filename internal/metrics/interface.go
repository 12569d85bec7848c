package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTournamentsCreated()
	IncScoresSubmitted()
	IncScoreRejections()
	IncFinalStagesUnlocked()
	ObserveAdvancementDuration(duration float64)
	SetStartupTime(duration float64)
}

// MetricsStore persists lifetime counters to the database so they survive
// restarts, unlike the in-process Prometheus registry.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
