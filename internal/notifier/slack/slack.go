package slack

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davronov/matchday/internal/matchdate"
	"github.com/davronov/matchday/internal/metrics"
	"github.com/davronov/matchday/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api     slackClient
	metrics metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:     api,
		metrics: metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:     api,
		metrics: metrics,
	}
}

func (s *Notifier) sendMessage(conversationID string, message slack.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		conversationID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", conversationID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// SendReminder implements the Notifier interface.
func (s *Notifier) SendReminder(conversationID string, remaining matchdate.Countdown, matchDate time.Time) error {
	msg := formatReminder(remaining, matchDate)
	return s.sendMessage(conversationID, msg)
}
