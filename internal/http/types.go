package http

import (
	"net/http"

	"github.com/sabocue/arena/internal/config"
	"github.com/sabocue/arena/internal/metrics"
	"github.com/sabocue/arena/internal/notifier"
	"github.com/sabocue/arena/internal/pubsub"
	"github.com/sabocue/arena/internal/tournament"
)

type Server struct {
	Tournaments    tournament.TournamentService
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
