// Package notes provides the note list store: create, update, toggle and
// delete over the shared record store, newest first.
package notes

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oguzkagan/asista/backend/internal/errors"
	"github.com/oguzkagan/asista/backend/internal/kvstore"
	"github.com/oguzkagan/asista/backend/internal/logging"
	"github.com/oguzkagan/asista/backend/internal/models"
)

// StorageKey is the record store key holding the note list.
const StorageKey = "notes"

// Clock abstracts time reads for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Store owns the in-memory note list, ordered most-recently-created
// first, and mirrors every mutation to the record store. Updates and
// toggles never reorder the list.
type Store struct {
	kv    *kvstore.Store
	clock Clock

	mu     sync.Mutex
	notes  []models.NoteRecord
	lastID int64
}

// NewStore creates a note store over the given record store. A nil clock
// defaults to the system clock.
func NewStore(kv *kvstore.Store, clock Clock) *Store {
	if clock == nil {
		clock = systemClock{}
	}
	return &Store{kv: kv, clock: clock}
}

// Load replaces the in-memory list with the persisted one. Absent or
// unreadable data yields an empty list.
func (s *Store) Load() {
	var notes []models.NoteRecord
	ok, err := s.kv.GetJSON(StorageKey, &notes)
	if err != nil {
		logging.Warn().Err(err).Msg("failed to load notes, starting empty")
	}
	if !ok || notes == nil {
		notes = []models.NoteRecord{}
	}

	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()

	logging.Debug().Int("count", len(notes)).Msg("notes loaded")
}

// Create validates and prepends a new note. Rejected when both title and
// body are blank after trimming; no state changes on rejection.
func (s *Store) Create(title, body string) (models.NoteRecord, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(body) == "" {
		return models.NoteRecord{}, errors.New(errors.ErrNoteEmpty, "note needs a title or a body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().UnixMilli()
	note := models.NoteRecord{
		ID:        s.nextIDLocked(now),
		Title:     title,
		Body:      body,
		Done:      false,
		UpdatedAt: now,
	}
	s.notes = append([]models.NoteRecord{note}, s.notes...)
	s.persistLocked()

	logging.Info().Str("id", note.ID).Msg("note created")
	return note, nil
}

// Update replaces the title and body of the note with the given id and
// refreshes its timestamp, keeping its position. Unknown ids return
// NOTE_NOT_FOUND.
func (s *Store) Update(id, title, body string) (models.NoteRecord, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(body) == "" {
		return models.NoteRecord{}, errors.New(errors.ErrNoteEmpty, "note needs a title or a body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID != id {
			continue
		}
		s.notes[i].Title = title
		s.notes[i].Body = body
		s.notes[i].UpdatedAt = s.clock.Now().UnixMilli()
		s.persistLocked()

		logging.Info().Str("id", id).Msg("note updated")
		return s.notes[i], nil
	}
	return models.NoteRecord{}, errors.New(errors.ErrNoteNotFound, "no note with id "+id)
}

// ToggleDone flips the completion flag of the note with the given id and
// refreshes its timestamp. Unknown ids return NOTE_NOT_FOUND.
func (s *Store) ToggleDone(id string) (models.NoteRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID != id {
			continue
		}
		s.notes[i].Done = !s.notes[i].Done
		s.notes[i].UpdatedAt = s.clock.Now().UnixMilli()
		s.persistLocked()

		logging.Info().Str("id", id).Bool("done", s.notes[i].Done).Msg("note toggled")
		return s.notes[i], nil
	}
	return models.NoteRecord{}, errors.New(errors.ErrNoteNotFound, "no note with id "+id)
}

// Delete removes the note with the given id. Deleting an unknown id is a
// no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.notes[:0:0]
	for _, n := range s.notes {
		if n.ID != id {
			filtered = append(filtered, n)
		}
	}
	if len(filtered) == len(s.notes) {
		return
	}
	s.notes = filtered
	s.persistLocked()

	logging.Info().Str("id", id).Msg("note deleted")
}

// List returns a snapshot copy of the note list, newest first.
func (s *Store) List() []models.NoteRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.NoteRecord, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *Store) nextIDLocked(nowMillis int64) string {
	if nowMillis <= s.lastID {
		nowMillis = s.lastID + 1
	}
	s.lastID = nowMillis
	return strconv.FormatInt(nowMillis, 10)
}

func (s *Store) persistLocked() {
	if err := s.kv.SetJSON(StorageKey, s.notes); err != nil {
		logging.Warn().Err(err).Msg("failed to persist notes")
	}
}
