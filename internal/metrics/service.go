package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TournamentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sabo_tournaments_created_total",
			Help: "The total number of tournaments created.",
		}),
		ScoresSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sabo_scores_submitted_total",
			Help: "The total number of match scores accepted.",
		}),
		ScoreRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sabo_score_rejections_total",
			Help: "The total number of score submissions rejected by validation.",
		}),
		FinalStagesUnlocked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sabo_final_stages_unlocked_total",
			Help: "The total number of cross-bracket final stages unlocked.",
		}),
		AdvancementDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sabo_advancement_duration_seconds",
			Help:    "The duration of a score submission including advancement and persistence.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sabo_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TournamentsCreated,
		s.ScoresSubmitted,
		s.ScoreRejections,
		s.FinalStagesUnlocked,
		s.AdvancementDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTournamentsCreated() {
	s.TournamentsCreated.Inc()
}

func (s *Service) IncScoresSubmitted() {
	s.ScoresSubmitted.Inc()
}

func (s *Service) IncScoreRejections() {
	s.ScoreRejections.Inc()
}

func (s *Service) IncFinalStagesUnlocked() {
	s.FinalStagesUnlocked.Inc()
}

func (s *Service) ObserveAdvancementDuration(duration float64) {
	s.AdvancementDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
