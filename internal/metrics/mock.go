package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	commandsProcessed int
	unauthorized      int
	remindersFired    int
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncCommandsProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandsProcessed++
}

func (m *Mock) IncUnauthorized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unauthorized++
}

func (m *Mock) IncRemindersFired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remindersFired++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// CommandsProcessed returns the number of times IncCommandsProcessed was called.
func (m *Mock) CommandsProcessed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commandsProcessed
}

// Unauthorized returns the number of times IncUnauthorized was called.
func (m *Mock) Unauthorized() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unauthorized
}

// RemindersFired returns the number of times IncRemindersFired was called.
func (m *Mock) RemindersFired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remindersFired
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
