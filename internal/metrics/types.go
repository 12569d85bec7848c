package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	TournamentsCreated  prometheus.Counter
	ScoresSubmitted     prometheus.Counter
	ScoreRejections     prometheus.Counter
	FinalStagesUnlocked prometheus.Counter
	AdvancementDuration prometheus.Histogram
	StartupTimeSeconds  prometheus.Gauge
}
