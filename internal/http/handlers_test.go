package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/davronov/matchday/internal/bot"
	"github.com/davronov/matchday/internal/config"
	"github.com/davronov/matchday/internal/metrics"
	"github.com/davronov/matchday/internal/state"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSlackSigningSecret = "test-signing-secret"

type nopScheduler struct{}

func (nopScheduler) Arm(times []string) error { return nil }
func (nopScheduler) Disarm()                  {}

// setupTestServer initializes a new server with an in-memory store.
func setupTestServer(t *testing.T, slackSigningSecret string) (*Server, *state.Mock) {
	t.Helper()

	store := state.NewMock()
	cfg := config.Config{
		Slack: config.SlackConfig{SigningSecret: slackSigningSecret},
		Admin: config.AdminConfig{Username: "admin", Password: "secret"},
	}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	botRouter := bot.New(store, nopScheduler{}, cfg.Admin, metricsSvc)

	return NewServer(store, botRouter, metricsSvc, metricsHandler, cfg), store
}

// commandForm builds the form payload Slack sends for /futbol.
func commandForm(text, userID, channelID, channelName string) url.Values {
	return url.Values{
		"command":      {"/futbol"},
		"text":         {text},
		"user_id":      {userID},
		"channel_id":   {channelID},
		"channel_name": {channelName},
	}
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack
// endpoints, including the signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := strings.NewReader(form.Encode())
	req, err := http.NewRequest("POST", targetURL, body)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	bodyBytes, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(bodyBytes))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

// runCommand drives one /futbol subcommand through the full router and
// returns the decoded Slack reply.
func runCommand(t *testing.T, server *Server, text, userID, channelID, channelName string) slack.Msg {
	t.Helper()

	form := commandForm(text, userID, channelID, channelName)
	req, err := http.NewRequest("POST", "/slack/command", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var msg slack.Msg
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	return msg
}

func TestHealthCheckHandler(t *testing.T) {
	server, _ := setupTestServer(t, "")

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestStateHandler(t *testing.T) {
	server, store := setupTestServer(t, "")
	store.AddPlayer("Саша")

	req, err := http.NewRequest("GET", "/state", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Саша")
	assert.Contains(t, rr.Body.String(), "remind_times")
}

func TestSlashCommandHandler(t *testing.T) {
	t.Run("empty text behaves like start", func(t *testing.T) {
		server, _ := setupTestServer(t, "")
		msg := runCommand(t, server, "", "U1", "C1", "general")
		assert.Equal(t, "ephemeral", msg.ResponseType)
		assert.Contains(t, msg.Text, "Добро пожаловать")
	})

	t.Run("login then addplayer mutates the store", func(t *testing.T) {
		server, store := setupTestServer(t, "")

		msg := runCommand(t, server, "login admin secret", "U1", "C1", "general")
		assert.Contains(t, msg.Text, "Вход выполнен")

		msg = runCommand(t, server, "addplayer Саша", "U1", "C1", "general")
		assert.Contains(t, msg.Text, "Игрок добавлен")
		assert.Equal(t, []string{"Саша"}, store.Snapshot().Players)
	})

	t.Run("subcommand casing is ignored", func(t *testing.T) {
		server, _ := setupTestServer(t, "")
		msg := runCommand(t, server, "HELP", "U1", "C1", "general")
		assert.Contains(t, msg.Text, "Добро пожаловать")
	})

	t.Run("split replies in channel", func(t *testing.T) {
		server, _ := setupTestServer(t, "")
		runCommand(t, server, "login admin secret", "U1", "C1", "general")
		runCommand(t, server, "addplayers Саша, Вова", "U1", "C1", "general")

		msg := runCommand(t, server, "split", "U1", "C1", "general")
		assert.Equal(t, "in_channel", msg.ResponseType)
		assert.Contains(t, msg.Text, "Рандомное распределение")
	})

	t.Run("setdate with players offers the split button", func(t *testing.T) {
		server, _ := setupTestServer(t, "")
		runCommand(t, server, "login admin secret", "U1", "C1", "general")
		runCommand(t, server, "addplayers Саша, Вова", "U1", "C1", "general")

		form := commandForm("setdate 2025-10-20 18:30", "U1", "C1", "general")
		req, err := http.NewRequest("POST", "/slack/command", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "split_now")
		assert.Contains(t, rr.Body.String(), "Распределить команды")
	})
}

func TestSlashCommandSignatureVerification(t *testing.T) {
	t.Run("signed request is accepted", func(t *testing.T) {
		server, _ := setupTestServer(t, testSlackSigningSecret)

		form := commandForm("help", "U1", "C1", "general")
		req := createSlackCommandRequest(t, "/slack/command", form, testSlackSigningSecret)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		server, _ := setupTestServer(t, testSlackSigningSecret)

		form := commandForm("help", "U1", "C1", "general")
		req := createSlackCommandRequest(t, "/slack/command", form, "wrong-secret")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing headers are rejected", func(t *testing.T) {
		server, _ := setupTestServer(t, testSlackSigningSecret)

		form := commandForm("help", "U1", "C1", "general")
		req, err := http.NewRequest("POST", "/slack/command", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestInteractiveHandler(t *testing.T) {
	interactionRequest := func(t *testing.T, userID, actionID string) *http.Request {
		t.Helper()
		payload := fmt.Sprintf(`{
			"type": "block_actions",
			"user": {"id": %q},
			"actions": [{"action_id": %q, "type": "button"}]
		}`, userID, actionID)
		form := url.Values{"payload": {payload}}

		req, err := http.NewRequest("POST", "/slack/interactive", strings.NewReader(form.Encode()))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	t.Run("split button splits the roster", func(t *testing.T) {
		server, store := setupTestServer(t, "")
		runCommand(t, server, "login admin secret", "U1", "C1", "general")
		runCommand(t, server, "addplayers Саша, Вова", "U1", "C1", "general")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, interactionRequest(t, "U1", "split_now"))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Рандомное распределение")
		assert.Len(t, store.Snapshot().Team1, 1)
		assert.Len(t, store.Snapshot().Team2, 1)
	})

	t.Run("stranger clicking the button is rejected", func(t *testing.T) {
		server, store := setupTestServer(t, "")
		runCommand(t, server, "login admin secret", "U1", "C1", "general")
		runCommand(t, server, "addplayers Саша, Вова", "U1", "C1", "general")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, interactionRequest(t, "U_GUEST", "split_now"))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Недостаточно прав")
		assert.Empty(t, store.Snapshot().Team1)
	})

	t.Run("unknown action is ignored", func(t *testing.T) {
		server, _ := setupTestServer(t, "")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, interactionRequest(t, "U1", "something_else"))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}
