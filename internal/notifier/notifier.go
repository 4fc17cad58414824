package notifier

import (
	"time"

	"github.com/davronov/matchday/internal/matchdate"
)

// Notifier defines a high-level interface for pushing asynchronous messages
// to the target conversation. This decouples the rest of the application
// from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendReminder pushes the scheduled countdown reminder: how much time
	// is left and the formatted match date.
	SendReminder(conversationID string, remaining matchdate.Countdown, matchDate time.Time) error
}
