package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/davronov/matchday/internal/bot"
	"github.com/slack-go/slack"
)

const (
	responseEphemeral = "ephemeral"
	responseInChannel = "in_channel"

	// splitActionID identifies the inline "split the teams now" button in
	// interaction payloads.
	splitActionID = "split_now"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StateHandler dumps the current application state as JSON. Meant for
// debugging and the CLI, not for Slack.
func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.Store.Snapshot()); err != nil {
			log.Error("Failed to encode state to JSON", "error", err)
		}
	}
}

// SlashCommandHandler serves the single /futbol slash command. The first
// token of the command text selects the subcommand, the rest is passed
// through as arguments.
func (s *Server) SlashCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			log.Error("Failed to parse slash command", "error", err)
			http.Error(w, "Failed to parse command", http.StatusBadRequest)
			return
		}

		subcommand, args := splitCommandText(cmd.Text)
		req := bot.Request{
			Command:        subcommand,
			Args:           args,
			UserID:         cmd.UserID,
			ConversationID: cmd.ChannelID,
			Multiuser:      cmd.ChannelName != "directmessage",
		}

		resp := s.Bot.Handle(req)
		respondWithSlackMsg(w, renderResponse(resp))
	}
}

// InteractiveHandler serves Slack interaction payloads (button clicks).
func (s *Server) InteractiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}

		var callback slack.InteractionCallback
		if err := json.Unmarshal([]byte(r.FormValue("payload")), &callback); err != nil {
			log.Error("Failed to parse interaction payload", "error", err)
			http.Error(w, "Failed to parse payload", http.StatusBadRequest)
			return
		}

		for _, action := range callback.ActionCallback.BlockActions {
			if action.ActionID != splitActionID {
				continue
			}
			resp := s.Bot.HandleSplitAction(callback.User.ID)
			msg := renderResponse(resp)
			msg.ReplaceOriginal = false
			respondWithSlackMsg(w, msg)
			return
		}

		log.Debug("Ignoring interaction without a known action", "type", callback.Type)
		w.WriteHeader(http.StatusOK)
	}
}

// splitCommandText separates the subcommand token from its arguments.
// Empty text behaves like /start in a direct chat.
func splitCommandText(text string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "start", ""
	}
	subcommand, args, _ := strings.Cut(text, " ")
	return strings.ToLower(subcommand), strings.TrimSpace(args)
}

// renderResponse converts a bot reply into the Slack response message.
func renderResponse(resp bot.Response) slack.Msg {
	msg := slack.Msg{
		Text:         resp.Text,
		ResponseType: responseEphemeral,
	}
	if resp.InChannel {
		msg.ResponseType = responseInChannel
	}

	if resp.OfferSplit {
		button := slack.NewButtonBlockElement(splitActionID, splitActionID,
			slack.NewTextBlockObject(slack.PlainTextType, resp.SplitLabel, true, false))
		button.Style = slack.StylePrimary
		msg.Blocks = slack.Blocks{BlockSet: []slack.Block{
			slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, resp.Text, false, false), nil, nil),
			slack.NewActionBlock("split_actions", button),
		}}
	}
	return msg
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}
