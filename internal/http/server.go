package http

import (
	"net/http"

	"github.com/davronov/matchday/internal/bot"
	"github.com/davronov/matchday/internal/config"
	"github.com/davronov/matchday/internal/metrics"
	"github.com/davronov/matchday/internal/state"
)

func NewServer(store state.Store, botRouter *bot.Router, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Bot:            botRouter,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// The Slack endpoints additionally verify the request signature.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/state", Chain(s.StateHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command", Chain(s.SlashCommandHandler(), paramsMiddleware, s.verifySlackSignature))
	s.Router.Handle("/slack/interactive", Chain(s.InteractiveHandler(), paramsMiddleware, s.verifySlackSignature))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
