package alarm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oguzkagan/asista/backend/internal/i18n"
	"github.com/oguzkagan/asista/backend/internal/logging"
)

// DefaultTickInterval is the period of the match check. Granularity is
// minutes, so sub-minute precision is neither required nor provided.
const DefaultTickInterval = 60 * time.Second

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	TickInterval time.Duration    // how often to run the match check (default: 60s)
	Clock        Clock            // wall-clock source (default: system clock)
	Language     func() i18n.Lang // language for alert titles (default: i18n.Default)
}

// DefaultSchedulerConfig returns default scheduler configuration.
func DefaultSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		TickInterval: DefaultTickInterval,
		Clock:        SystemClock{},
	}
}

// Scheduler runs the recurring alarm match check. Each tick compares
// every stored alarm against the current wall-clock time and emits a
// fire event for every match. Firing never mutates a record: an alarm
// keeps firing on any later day whose rendering matches its day string,
// and is only ever removed by explicit deletion.
type Scheduler struct {
	store    *Store
	notifier Notifier
	clock    Clock
	interval time.Duration
	language func() i18n.Lang

	mu        sync.Mutex
	stopCh    chan struct{}
	wg        sync.WaitGroup
	isRunning bool
}

// NewScheduler creates a scheduler over the given store and notifier.
func NewScheduler(store *Store, notifier Notifier, config *SchedulerConfig) *Scheduler {
	if config == nil {
		config = DefaultSchedulerConfig()
	}
	interval := config.TickInterval
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	clock := config.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	language := config.Language
	if language == nil {
		language = func() i18n.Lang { return i18n.Default }
	}

	return &Scheduler{
		store:    store,
		notifier: notifier,
		clock:    clock,
		interval: interval,
		language: language,
	}
}

// Start loads the alarm list from the record store and begins the
// recurring match check. Starting an already running scheduler is a
// no-op. Alarms added while the scheduler was stopped are picked up
// here; ticks missed while stopped are not replayed.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	s.store.Load()

	s.wg.Add(1)
	go s.loop(ctx, stopCh)

	logging.Info().Dur("interval", s.interval).Msg("alarm scheduler started")
}

// Stop cancels the recurring check. No further ticks occur after Stop
// returns; a later Start reloads the list and re-arms everything.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()

	logging.Info().Msg("alarm scheduler stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *Scheduler) loop(ctx context.Context, stopCh chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Context cancellation stops the loop without Stop being
			// called; clear the running flag so a fresh Start works.
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
			return
		case <-stopCh:
			return
		case <-ticker.C:
			s.check(s.clock.Now())
		}
	}
}

// check runs one match pass against the given instant and returns the
// number of fire events emitted. Every matching alarm fires
// independently; a malformed record compares as non-matching and never
// aborts the pass.
func (s *Scheduler) check(now time.Time) int {
	fired := 0
	title := i18n.Messages(s.language()).AlarmAlertTitle

	for _, record := range s.store.List() {
		if !record.Matches(now) {
			continue
		}
		event := FireEvent{
			AlarmID:       record.ID,
			Title:         title,
			Body:          fmt.Sprintf("%s:%s", record.Hour, record.Minute),
			VibrateMillis: VibrateMillis,
			FiredAt:       now,
		}
		s.notifier.Notify(event)
		fired++

		logging.Info().
			Str("alarm_id", record.ID).
			Str("body", event.Body).
			Msg("alarm fired")
	}
	return fired
}
