// Package alarm tests for the alarm scheduler and its firing semantics.
package alarm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/oguzkagan/asista/backend/internal/i18n"
)

// =====================================================
// Test Helpers
// =====================================================

// recordingNotifier captures fire events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []FireEvent
}

func (n *recordingNotifier) Notify(event FireEvent) {
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
}

func (n *recordingNotifier) Events() []FireEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]FireEvent, len(n.events))
	copy(out, n.events)
	return out
}

// createTestScheduler wires a store, recording notifier and fake clock.
func createTestScheduler(t *testing.T, now time.Time) (*Store, *recordingNotifier, *fakeClock, *Scheduler) {
	t.Helper()

	clock := newFakeClock(now)
	store := NewStore(setupTestKV(t), clock)
	store.Load()
	notifier := &recordingNotifier{}

	config := &SchedulerConfig{
		TickInterval: 10 * time.Millisecond,
		Clock:        clock,
	}
	scheduler := NewScheduler(store, notifier, config)

	return store, notifier, clock, scheduler
}

// =====================================================
// Config Tests
// =====================================================

// TestDefaultSchedulerConfig verifies the default tick period.
func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	if config.TickInterval != 60*time.Second {
		t.Errorf("TickInterval = %v, want 60s", config.TickInterval)
	}
	if config.Clock == nil {
		t.Error("Clock should default to the system clock")
	}
}

// TestNewScheduler_nilConfig verifies defaults are applied.
func TestNewScheduler_nilConfig(t *testing.T) {
	store := NewStore(setupTestKV(t), nil)
	scheduler := NewScheduler(store, &recordingNotifier{}, nil)

	if scheduler.interval != 60*time.Second {
		t.Errorf("interval = %v, want 60s (default)", scheduler.interval)
	}
}

// =====================================================
// Match Check Tests
// =====================================================

// TestCheck_firesOnExactMatch is the core scenario: one alarm at
// 14:30 on 21.11.2025, clock at exactly that minute.
func TestCheck_firesOnExactMatch(t *testing.T) {
	now := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	store, notifier, _, scheduler := createTestScheduler(t, now)

	if _, err := store.Add("21.11.2025", "14", "30"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if fired := scheduler.check(now); fired != 1 {
		t.Fatalf("check() fired = %d, want 1", fired)
	}

	events := notifier.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Body != "14:30" {
		t.Errorf("Body = %q, want \"14:30\"", events[0].Body)
	}
	if events[0].VibrateMillis != 2000 {
		t.Errorf("VibrateMillis = %d, want 2000", events[0].VibrateMillis)
	}
}

// TestCheck_doesNotFireOneMinuteOff verifies no early or late firing.
func TestCheck_doesNotFireOneMinuteOff(t *testing.T) {
	base := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	store, notifier, _, scheduler := createTestScheduler(t, base)
	store.Add("21.11.2025", "14", "30")

	for _, now := range []time.Time{
		base.Add(-time.Minute), // 14:29
		base.Add(time.Minute),  // 14:31
	} {
		if fired := scheduler.check(now); fired != 0 {
			t.Errorf("check(%v) fired = %d, want 0", now, fired)
		}
	}
	if len(notifier.Events()) != 0 {
		t.Errorf("got %d events, want 0", len(notifier.Events()))
	}
}

// TestCheck_multipleMatchesFireIndependently verifies simultaneous
// matches each produce their own event.
func TestCheck_multipleMatchesFireIndependently(t *testing.T) {
	now := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	store, notifier, _, scheduler := createTestScheduler(t, now)

	store.Add("21.11.2025", "14", "30")
	store.Add("21.11.2025", "14", "30")
	store.Add("21.11.2025", "15", "00") // not matching

	if fired := scheduler.check(now); fired != 2 {
		t.Errorf("check() fired = %d, want 2", fired)
	}
	if len(notifier.Events()) != 2 {
		t.Errorf("got %d events, want 2", len(notifier.Events()))
	}
}

// TestCheck_firingDoesNotMutateRecords verifies an alarm fires again on
// the next matching check; records carry no fired flag.
func TestCheck_firingDoesNotMutateRecords(t *testing.T) {
	now := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	store, notifier, _, scheduler := createTestScheduler(t, now)
	store.Add("21.11.2025", "14", "30")

	scheduler.check(now)
	scheduler.check(now)

	if len(notifier.Events()) != 2 {
		t.Errorf("got %d events, want 2 (record must stay armed)", len(notifier.Events()))
	}
	if len(store.List()) != 1 {
		t.Error("firing must not remove the record")
	}
}

// TestCheck_malformedRecordDoesNotAbort verifies a non-numeric record is
// skipped while the rest of the list is still checked.
func TestCheck_malformedRecordDoesNotAbort(t *testing.T) {
	now := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	store, notifier, _, scheduler := createTestScheduler(t, now)

	store.Add("21.11.2025", "noon", "30")
	good, _ := store.Add("21.11.2025", "14", "30")

	if fired := scheduler.check(now); fired != 1 {
		t.Fatalf("check() fired = %d, want 1", fired)
	}
	if events := notifier.Events(); events[0].AlarmID != good.ID {
		t.Errorf("fired alarm %q, want %q", events[0].AlarmID, good.ID)
	}
}

// TestCheck_localizedTitle verifies the alert title follows the
// configured language.
func TestCheck_localizedTitle(t *testing.T) {
	now := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	clock := newFakeClock(now)
	store := NewStore(setupTestKV(t), clock)
	store.Load()
	store.Add("21.11.2025", "14", "30")
	notifier := &recordingNotifier{}

	scheduler := NewScheduler(store, notifier, &SchedulerConfig{
		TickInterval: time.Minute,
		Clock:        clock,
		Language:     func() i18n.Lang { return i18n.English },
	})

	scheduler.check(now)

	events := notifier.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if want := i18n.Messages(i18n.English).AlarmAlertTitle; events[0].Title != want {
		t.Errorf("Title = %q, want %q", events[0].Title, want)
	}
}

// =====================================================
// Start/Stop Tests
// =====================================================

// TestStartStop verifies the ticker loop fires on a match and stops
// deterministically.
func TestStartStop(t *testing.T) {
	now := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	store, notifier, _, scheduler := createTestScheduler(t, now)
	store.Add("21.11.2025", "14", "30")

	scheduler.Start(context.Background())
	if !scheduler.IsRunning() {
		t.Fatal("scheduler should be running after Start")
	}

	// Wait for at least one tick
	deadline := time.After(2 * time.Second)
	for len(notifier.Events()) == 0 {
		select {
		case <-deadline:
			t.Fatal("no fire event within deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	scheduler.Stop()
	if scheduler.IsRunning() {
		t.Error("scheduler should not be running after Stop")
	}

	// No further ticks after Stop
	count := len(notifier.Events())
	time.Sleep(50 * time.Millisecond)
	if got := len(notifier.Events()); got != count {
		t.Errorf("events after Stop = %d, want %d", got, count)
	}
}

// TestStart_isIdempotent verifies double Start does not spawn a second loop.
func TestStart_isIdempotent(t *testing.T) {
	now := time.Date(2025, 11, 21, 0, 0, 0, 0, time.Local)
	_, _, _, scheduler := createTestScheduler(t, now)

	ctx := context.Background()
	scheduler.Start(ctx)
	scheduler.Start(ctx)
	scheduler.Stop()
}

// TestStop_isIdempotent verifies double Stop is safe.
func TestStop_isIdempotent(t *testing.T) {
	now := time.Date(2025, 11, 21, 0, 0, 0, 0, time.Local)
	_, _, _, scheduler := createTestScheduler(t, now)

	scheduler.Start(context.Background())
	scheduler.Stop()
	scheduler.Stop()
}

// TestRestart_reloadsAlarmsFromStore verifies re-activation picks up
// alarms persisted while the scheduler was stopped.
func TestRestart_reloadsAlarmsFromStore(t *testing.T) {
	now := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	clock := newFakeClock(now)
	kv := setupTestKV(t)

	store := NewStore(kv, clock)
	notifier := &recordingNotifier{}
	scheduler := NewScheduler(store, notifier, &SchedulerConfig{
		TickInterval: 10 * time.Millisecond,
		Clock:        clock,
	})

	scheduler.Start(context.Background())
	scheduler.Stop()

	// Another writer persists an alarm behind the scheduler's back.
	other := NewStore(kv, clock)
	other.Load()
	if _, err := other.Add("21.11.2025", "14", "30"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	scheduler.Start(context.Background())
	defer scheduler.Stop()

	deadline := time.After(2 * time.Second)
	for len(notifier.Events()) == 0 {
		select {
		case <-deadline:
			t.Fatal("restarted scheduler did not pick up the new alarm")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// TestStart_contextCancelStopsLoop verifies the loop honors its context.
func TestStart_contextCancelStopsLoop(t *testing.T) {
	now := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	store, notifier, _, scheduler := createTestScheduler(t, now)
	store.Add("21.11.2025", "14", "30")

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx)
	cancel()

	time.Sleep(50 * time.Millisecond)
	count := len(notifier.Events())
	time.Sleep(50 * time.Millisecond)
	if got := len(notifier.Events()); got != count {
		t.Errorf("events kept arriving after context cancel: %d -> %d", count, got)
	}

	scheduler.Stop()
}

// TestStart_reArmsAfterContextCancel verifies cancellation clears the
// running state so the scheduler can be started again.
func TestStart_reArmsAfterContextCancel(t *testing.T) {
	now := time.Date(2025, 11, 21, 14, 30, 0, 0, time.Local)
	store, notifier, _, scheduler := createTestScheduler(t, now)
	store.Add("21.11.2025", "14", "30")

	ctx, cancel := context.WithCancel(context.Background())
	scheduler.Start(ctx)
	cancel()

	deadline := time.After(2 * time.Second)
	for scheduler.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("IsRunning() still true after context cancel")
		case <-time.After(5 * time.Millisecond):
		}
	}

	scheduler.Start(context.Background())
	defer scheduler.Stop()
	if !scheduler.IsRunning() {
		t.Fatal("Start after cancellation should re-arm the scheduler")
	}

	deadline = time.After(2 * time.Second)
	for len(notifier.Events()) == 0 {
		select {
		case <-deadline:
			t.Fatal("re-armed scheduler never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
