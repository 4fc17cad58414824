// Package reminder runs the daily match reminder triggers.
//
// Instead of depending on a host scheduler, a single minute-tick loop
// compares the wall clock against the registered time-of-day triggers and
// fires each one at most once per calendar day.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davronov/matchday/internal/matchdate"
	"github.com/davronov/matchday/internal/metrics"
	"github.com/davronov/matchday/internal/notifier"
	"github.com/davronov/matchday/internal/state"
)

const dayLayout = "2006-01-02"

// trigger is one registered time-of-day. lastFired holds the calendar day of
// the most recent firing so a trigger fires at most once per day.
type trigger struct {
	hour      int
	minute    int
	lastFired string
}

// Scheduler owns the trigger set and evaluates it on every tick. Arming is
// idempotent: each Arm call replaces the whole set, so repeated
// configuration changes never accumulate duplicate firings.
type Scheduler struct {
	store    state.Store
	notifier notifier.Notifier
	metrics  metrics.Metrics

	mu       sync.Mutex
	triggers []*trigger

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a disarmed Scheduler.
func New(store state.Store, n notifier.Notifier, m metrics.Metrics) *Scheduler {
	return &Scheduler{
		store:    store,
		notifier: n,
		metrics:  m,
		now: func() time.Time {
			return time.Now().In(matchdate.Location())
		},
	}
}

// ParseTimeOfDay validates an "HH:MM" token.
func ParseTimeOfDay(tok string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", tok)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time of day %q: %w", tok, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Arm replaces the whole trigger set with the given "HH:MM" times. Times
// already past for the current day start firing tomorrow. An invalid token
// rejects the entire set and leaves the previous triggers in place.
func (s *Scheduler) Arm(times []string) error {
	now := s.now()
	today := now.Format(dayLayout)

	fresh := make([]*trigger, 0, len(times))
	for _, tok := range times {
		hour, minute, err := ParseTimeOfDay(tok)
		if err != nil {
			return err
		}
		t := &trigger{hour: hour, minute: minute}
		if !now.Before(s.fireTime(now, t)) {
			t.lastFired = today
		}
		fresh = append(fresh, t)
	}

	s.mu.Lock()
	s.triggers = fresh
	s.mu.Unlock()
	log.Info("Reminder triggers armed", "times", times)
	return nil
}

// Disarm cancels all pending triggers.
func (s *Scheduler) Disarm() {
	s.mu.Lock()
	s.triggers = nil
	s.mu.Unlock()
	log.Info("Reminder triggers disarmed")
}

// Armed reports whether any trigger is registered.
func (s *Scheduler) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.triggers) > 0
}

// Run drives the trigger loop until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	log.Info("Reminder scheduler started")
	for {
		select {
		case <-ctx.Done():
			log.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.tick(s.now())
		}
	}
}

func (s *Scheduler) fireTime(now time.Time, t *trigger) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), t.hour, t.minute, 0, 0, matchdate.Location())
}

// tick fires every trigger whose time-of-day has been reached and that has
// not fired yet today.
func (s *Scheduler) tick(now time.Time) {
	today := now.Format(dayLayout)

	s.mu.Lock()
	var due int
	for _, t := range s.triggers {
		if t.lastFired == today || now.Before(s.fireTime(now, t)) {
			continue
		}
		t.lastFired = today
		due++
	}
	s.mu.Unlock()

	for i := 0; i < due; i++ {
		s.fire(now)
	}
}

// fire evaluates whether a reminder is warranted right now and, if so,
// pushes it to the target conversation.
func (s *Scheduler) fire(now time.Time) {
	snap := s.store.Snapshot()
	if snap.GroupChatID == nil || snap.MatchDate == nil {
		log.Debug("Reminder skipped, no target conversation or match date")
		return
	}
	target, err := matchdate.Parse(*snap.MatchDate)
	if err != nil {
		log.Error("Reminder skipped, stored match date is unreadable", "date", *snap.MatchDate, "error", err)
		return
	}

	remaining, verdict := matchdate.Until(target, now)
	switch verdict {
	case matchdate.Expired:
		log.Debug("Reminder skipped, match already started")
		return
	case matchdate.Imminent:
		log.Debug("Reminder skipped, kickoff is imminent")
		return
	}

	s.metrics.IncRemindersFired()
	if err := s.notifier.SendReminder(*snap.GroupChatID, remaining, target); err != nil {
		log.Error("Failed to deliver reminder", "error", err)
	}
}
