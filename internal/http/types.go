package http

import (
	"net/http"

	"github.com/davronov/matchday/internal/bot"
	"github.com/davronov/matchday/internal/config"
	"github.com/davronov/matchday/internal/metrics"
	"github.com/davronov/matchday/internal/state"
)

type Server struct {
	Store          state.Store
	Bot            *bot.Router
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
