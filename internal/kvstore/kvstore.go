// Package kvstore provides the durable key-value record store shared by
// every Asista feature. Keys are strings, values are JSON documents; a
// write is durable before the call returns.
package kvstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/oguzkagan/asista/backend/internal/errors"
)

// Store is a durable string-key to JSON-value mapping backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the record store under dataDir, creating the directory and
// schema as needed. The database is opened with:
// - WAL mode for concurrent reads/writes
// - a single writer connection (SQLite has no multi-writer support)
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "asista.db")

	// Open database with modernc.org/sqlite (pure Go, no CGO)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Every Set must hit disk before the call returns
	if _, err := db.Exec("PRAGMA synchronous=FULL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// New wraps an existing database handle, creating the schema as needed.
// Used by tests with an in-memory database.
func New(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.ensureSchema(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS records (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw value stored under key. A key that was never set
// yields ok=false and no error; errors are only returned for storage
// failures.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(errors.ErrStorage, "failed to read record", err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value. Concurrent
// writers to the same key resolve last-write-wins.
func (s *Store) Set(key, value string) error {
	query := `
	INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`
	if _, err := s.db.Exec(query, key, value, time.Now().UnixMilli()); err != nil {
		return errors.Wrap(errors.ErrStorage, "failed to write record", err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is
// a no-op. No in-scope feature deletes keys; lists are overwritten
// whole instead.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM records WHERE key = ?", key); err != nil {
		return errors.Wrap(errors.ErrStorage, "failed to delete record", err)
	}
	return nil
}

// GetJSON decodes the value stored under key into v. Absent keys yield
// ok=false with v untouched.
func (s *Store) GetJSON(key string, v interface{}) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, errors.Wrap(errors.ErrStorage, "failed to decode record", err)
	}
	return true, nil
}

// SetJSON serializes v and stores it under key.
func (s *Store) SetJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(errors.ErrStorage, "failed to encode record", err)
	}
	return s.Set(key, string(data))
}
