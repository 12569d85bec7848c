package http

import (
	"net/http"

	"github.com/sabocue/arena/internal/config"
	"github.com/sabocue/arena/internal/metrics"
	"github.com/sabocue/arena/internal/notifier"
	"github.com/sabocue/arena/internal/pubsub"
	"github.com/sabocue/arena/internal/tournament"
)

func NewServer(tournaments tournament.TournamentService, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Tournaments:    tournaments,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments", Chain(s.TournamentsHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/state", Chain(s.StateHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/ready", Chain(s.ReadyMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/tournaments/score", Chain(s.SubmitScoreHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
