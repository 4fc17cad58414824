// Package bot routes inbound chat commands to state mutations and queries,
// enforcing the single-administrator authorization gate.
package bot

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davronov/matchday/internal/config"
	"github.com/davronov/matchday/internal/metrics"
	"github.com/davronov/matchday/internal/state"
)

// Router dispatches chat commands. It owns the transient administrator
// session: at most one admin exists at a time, and a second successful login
// silently replaces the first.
type Router struct {
	store   state.Store
	sched   Scheduler
	creds   config.AdminConfig
	metrics metrics.Metrics

	mu      sync.Mutex
	adminID string
	rng     *rand.Rand
}

// New creates a Router with no active administrator session.
func New(store state.Store, sched Scheduler, creds config.AdminConfig, m metrics.Metrics) *Router {
	return &Router{
		store:   store,
		sched:   sched,
		creds:   creds,
		metrics: m,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *Router) isAdmin(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adminID != "" && r.adminID == userID
}

// Handle processes one command and produces the reply. Every failure mode is
// absorbed here; nothing propagates to the transport.
func (r *Router) Handle(req Request) Response {
	r.metrics.IncCommandsProcessed()
	log.Info("Handling command", "command", req.Command, "user", req.UserID)

	// Open to everyone.
	switch req.Command {
	case "start":
		return Response{Text: msgWelcome}
	case "login":
		return r.login(req)
	case "help":
		if r.isAdmin(req.UserID) {
			return Response{Text: helpAdmin}
		}
		return Response{Text: helpGuest}
	}

	// Everything else is gated behind the admin session.
	if !r.isAdmin(req.UserID) {
		r.metrics.IncUnauthorized()
		return Response{Text: msgNotAdmin}
	}

	switch req.Command {
	case "addplayer":
		return r.addPlayer(req)
	case "addplayers":
		return r.addPlayers(req)
	case "removeplayer":
		return r.removePlayer(req)
	case "players":
		return r.listPlayers()
	case "clearplayers":
		return r.clearPlayers()
	case "split":
		return r.split()
	case "setcaptain":
		return r.setCaptain(req)
	case "setdate":
		return r.setDate(req)
	case "announce":
		return r.announce()
	case "score":
		return r.score(req)
	case "history":
		return r.history()
	case "match":
		return r.matchDetails(req)
	case "clearmatches":
		return r.clearMatches()
	case "setremindtimes":
		return r.setRemindTimes(req)
	case "logout":
		return r.logout()
	default:
		return Response{Text: msgUnknownCommand}
	}
}

// HandleSplitAction is the entry point for the inline "split now" confirm
// button. The admin gate applies to button clicks too.
func (r *Router) HandleSplitAction(userID string) Response {
	r.metrics.IncCommandsProcessed()
	if !r.isAdmin(userID) {
		r.metrics.IncUnauthorized()
		return Response{Text: msgNotAdmin}
	}
	return r.split()
}
