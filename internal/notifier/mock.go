package notifier

import (
	"sync"
	"time"

	"github.com/davronov/matchday/internal/matchdate"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendReminderCalls []ReminderCall

	// SendReminderFunc, when set, overrides the default nil return.
	SendReminderFunc func(conversationID string, remaining matchdate.Countdown, matchDate time.Time) error
}

// ReminderCall records one SendReminder invocation.
type ReminderCall struct {
	ConversationID string
	Remaining      matchdate.Countdown
	MatchDate      time.Time
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendReminderCalls = nil
}

func (m *Mock) SendReminder(conversationID string, remaining matchdate.Countdown, matchDate time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendReminderCalls = append(m.SendReminderCalls, ReminderCall{
		ConversationID: conversationID,
		Remaining:      remaining,
		MatchDate:      matchDate,
	})
	if m.SendReminderFunc != nil {
		return m.SendReminderFunc(conversationID, remaining, matchDate)
	}
	return nil
}

// Reminders returns a copy of the recorded SendReminder calls.
func (m *Mock) Reminders() []ReminderCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ReminderCall{}, m.SendReminderCalls...)
}
