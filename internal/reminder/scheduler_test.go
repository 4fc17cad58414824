package reminder

import (
	"testing"
	"time"

	"github.com/davronov/matchday/internal/matchdate"
	"github.com/davronov/matchday/internal/metrics"
	"github.com/davronov/matchday/internal/notifier"
	"github.com/davronov/matchday/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestScheduler(t *testing.T, now time.Time) (*Scheduler, *state.Mock, *notifier.Mock, *time.Time) {
	t.Helper()

	store := state.NewMock()
	notif := notifier.NewMock()
	current := now
	s := New(store, notif, metrics.NewMock())
	s.now = func() time.Time { return current }
	return s, store, notif, &current
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 10, 18, hour, minute, 0, 0, matchdate.Location())
}

func TestTriggerFiresOncePerDay(t *testing.T) {
	s, store, notif, current := newTestScheduler(t, at(8, 0))
	store.Seed(state.AppState{
		MatchDate:   strPtr("2025-10-20T18:30:00"),
		GroupChatID: strPtr("C123"),
	})
	require.NoError(t, s.Arm([]string{"10:00"}))

	// Before the trigger time nothing happens.
	s.tick(*current)
	assert.Empty(t, notif.Reminders())

	// At the trigger time it fires.
	*current = at(10, 0)
	s.tick(*current)
	require.Len(t, notif.Reminders(), 1)
	assert.Equal(t, "C123", notif.Reminders()[0].ConversationID)

	// Later ticks the same day stay quiet.
	*current = at(10, 1)
	s.tick(*current)
	*current = at(15, 30)
	s.tick(*current)
	assert.Len(t, notif.Reminders(), 1)

	// The next day it fires again.
	*current = current.AddDate(0, 0, 1)
	s.tick(*current)
	assert.Len(t, notif.Reminders(), 2)
}

func TestMultipleTriggersFireIndependently(t *testing.T) {
	s, store, notif, current := newTestScheduler(t, at(8, 0))
	store.Seed(state.AppState{
		MatchDate:   strPtr("2025-10-25T18:30:00"),
		GroupChatID: strPtr("C123"),
	})
	require.NoError(t, s.Arm([]string{"10:00", "18:00"}))

	*current = at(10, 0)
	s.tick(*current)
	assert.Len(t, notif.Reminders(), 1)

	*current = at(18, 0)
	s.tick(*current)
	assert.Len(t, notif.Reminders(), 2)
}

func TestRearmReplacesTriggers(t *testing.T) {
	s, store, notif, current := newTestScheduler(t, at(8, 0))
	store.Seed(state.AppState{
		MatchDate:   strPtr("2025-10-25T18:30:00"),
		GroupChatID: strPtr("C123"),
	})
	require.NoError(t, s.Arm([]string{"10:00"}))
	require.NoError(t, s.Arm([]string{"10:00"}))
	require.NoError(t, s.Arm([]string{"12:00"}))

	// The dropped 10:00 trigger must not fire.
	*current = at(10, 0)
	s.tick(*current)
	assert.Empty(t, notif.Reminders())

	// Only one firing at 12:00 despite the repeated arming.
	*current = at(12, 0)
	s.tick(*current)
	assert.Len(t, notif.Reminders(), 1)
}

func TestArmRejectsBadToken(t *testing.T) {
	s, _, _, _ := newTestScheduler(t, at(8, 0))
	require.NoError(t, s.Arm([]string{"10:00"}))

	assert.Error(t, s.Arm([]string{"10:00", "25:99"}))
	assert.True(t, s.Armed(), "previous triggers survive a rejected arm")
}

func TestArmSkipsTimesAlreadyPastToday(t *testing.T) {
	s, store, notif, current := newTestScheduler(t, at(14, 0))
	store.Seed(state.AppState{
		MatchDate:   strPtr("2025-10-25T18:30:00"),
		GroupChatID: strPtr("C123"),
	})
	require.NoError(t, s.Arm([]string{"10:00"}))

	// 10:00 already passed when armed, so nothing fires today.
	*current = at(14, 1)
	s.tick(*current)
	assert.Empty(t, notif.Reminders())

	// Tomorrow it fires as usual.
	*current = current.AddDate(0, 0, 1)
	s.tick(*current)
	assert.Len(t, notif.Reminders(), 1)
}

func TestDisarm(t *testing.T) {
	s, store, notif, current := newTestScheduler(t, at(8, 0))
	store.Seed(state.AppState{
		MatchDate:   strPtr("2025-10-25T18:30:00"),
		GroupChatID: strPtr("C123"),
	})
	require.NoError(t, s.Arm([]string{"10:00"}))
	assert.True(t, s.Armed())

	s.Disarm()
	assert.False(t, s.Armed())

	*current = at(10, 0)
	s.tick(*current)
	assert.Empty(t, notif.Reminders())
}

func TestFireSkipsWithoutTargetOrDate(t *testing.T) {
	t.Run("no target conversation", func(t *testing.T) {
		s, store, notif, _ := newTestScheduler(t, at(8, 0))
		store.Seed(state.AppState{MatchDate: strPtr("2025-10-25T18:30:00")})
		s.fire(at(10, 0))
		assert.Empty(t, notif.Reminders())
	})
	t.Run("no match date", func(t *testing.T) {
		s, store, notif, _ := newTestScheduler(t, at(8, 0))
		store.Seed(state.AppState{GroupChatID: strPtr("C123")})
		s.fire(at(10, 0))
		assert.Empty(t, notif.Reminders())
	})
	t.Run("unreadable match date", func(t *testing.T) {
		s, store, notif, _ := newTestScheduler(t, at(8, 0))
		store.Seed(state.AppState{MatchDate: strPtr("soon"), GroupChatID: strPtr("C123")})
		s.fire(at(10, 0))
		assert.Empty(t, notif.Reminders())
	})
}

func TestFireSuppressionWindow(t *testing.T) {
	s, store, notif, _ := newTestScheduler(t, at(8, 0))
	store.Seed(state.AppState{
		MatchDate:   strPtr("2025-10-18T10:20:00"),
		GroupChatID: strPtr("C123"),
	})

	// 20 minutes before kickoff: suppressed.
	s.fire(at(10, 0))
	assert.Empty(t, notif.Reminders())

	// After kickoff: expired, still nothing.
	s.fire(at(11, 0))
	assert.Empty(t, notif.Reminders())

	// 80 minutes before kickoff: delivered.
	s.fire(at(9, 0))
	require.Len(t, notif.Reminders(), 1)
	assert.Equal(t, matchdate.Countdown{Hours: 1, Minutes: 20}, notif.Reminders()[0].Remaining)
}
