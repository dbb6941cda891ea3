// Package alarm provides the alarm list store and the scheduler that
// fires alerts when a stored alarm matches the current wall-clock time.
package alarm

import (
	"strconv"
	"sync"

	"github.com/oguzkagan/asista/backend/internal/errors"
	"github.com/oguzkagan/asista/backend/internal/kvstore"
	"github.com/oguzkagan/asista/backend/internal/logging"
	"github.com/oguzkagan/asista/backend/internal/models"
)

// StorageKey is the record store key holding the alarm list.
const StorageKey = "alarms"

// Store owns the in-memory alarm list and mirrors every mutation to the
// record store (write-through). The in-memory list is updated before the
// durable write; a failed write leaves a transient memory/disk gap that
// heals on the next successful mutation.
type Store struct {
	kv    *kvstore.Store
	clock Clock

	mu     sync.Mutex
	alarms []models.AlarmRecord
	lastID int64
}

// NewStore creates an alarm store over the given record store. A nil
// clock defaults to the system clock.
func NewStore(kv *kvstore.Store, clock Clock) *Store {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Store{kv: kv, clock: clock}
}

// Load replaces the in-memory list with the persisted one. An absent key
// or a read failure yields an empty list; read failures are logged, not
// surfaced.
func (s *Store) Load() {
	var alarms []models.AlarmRecord
	ok, err := s.kv.GetJSON(StorageKey, &alarms)
	if err != nil {
		logging.Warn().Err(err).Msg("failed to load alarms, starting empty")
	}
	if !ok || alarms == nil {
		alarms = []models.AlarmRecord{}
	}

	s.mu.Lock()
	s.alarms = alarms
	s.mu.Unlock()

	logging.Debug().Int("count", len(alarms)).Msg("alarms loaded")
}

// Add validates and appends a new alarm, persisting the full list. All
// three fields are required; a missing field rejects the call before any
// mutation. The id derives from a millisecond clock read, bumped when
// two adds land on the same millisecond.
func (s *Store) Add(day, hour, minute string) (models.AlarmRecord, error) {
	if day == "" || hour == "" || minute == "" {
		return models.AlarmRecord{}, errors.New(errors.ErrAlarmMissingField, "day, hour and minute are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := models.AlarmRecord{
		ID:     s.nextIDLocked(),
		Day:    day,
		Hour:   hour,
		Minute: minute,
	}
	s.alarms = append(s.alarms, record)
	s.persistLocked()

	logging.Info().
		Str("id", record.ID).
		Str("day", record.Day).
		Str("hour", record.Hour).
		Str("minute", record.Minute).
		Msg("alarm added")

	return record, nil
}

// Delete removes the alarm with the given id, persisting the filtered
// list. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.alarms[:0:0]
	for _, a := range s.alarms {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}
	if len(filtered) == len(s.alarms) {
		return
	}
	s.alarms = filtered
	s.persistLocked()

	logging.Info().Str("id", id).Msg("alarm deleted")
}

// List returns a snapshot copy of the alarm list.
func (s *Store) List() []models.AlarmRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AlarmRecord, len(s.alarms))
	copy(out, s.alarms)
	return out
}

// nextIDLocked returns a fresh millisecond-clock id, monotonically
// bumped when the clock has not advanced since the previous id.
func (s *Store) nextIDLocked() string {
	ms := s.clock.Now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return strconv.FormatInt(ms, 10)
}

// persistLocked mirrors the in-memory list to the record store. Failures
// are logged; the caller's mutation has already taken effect in memory.
func (s *Store) persistLocked() {
	if err := s.kv.SetJSON(StorageKey, s.alarms); err != nil {
		logging.Warn().Err(err).Msg("failed to persist alarms")
	}
}
