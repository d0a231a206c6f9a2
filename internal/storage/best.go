package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrUnknownBackend is returned for a backend name that is not supported.
	ErrUnknownBackend = errors.New("storage: unknown backend")
	// ErrNegativeTime is returned when saving a negative best time.
	ErrNegativeTime = errors.New("storage: negative time")
)

// BestTimeStore persists the best solve time in milliseconds. Zero means no
// best time has been recorded.
type BestTimeStore interface {
	LoadBest() (int64, error)
	SaveBest(ms int64) error
	ClearBest() error
	Close() error
}

// Backend names a BestTimeStore implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendSaveData Backend = "savedata"
	BackendMemory   Backend = "memory"
)

// ParseBackend parses a backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendSQLite, BackendSaveData, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// OpenBackend opens the named store. path is the SQLite database file (empty
// for the default) and app the save-data application name.
func OpenBackend(b Backend, path, app string) (BestTimeStore, error) {
	switch b {
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendSaveData:
		return OpenSaveData(app)
	case BackendMemory:
		return &MemoryStore{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, string(b))
	}
}

// SQLiteStore keeps the best time in SQLite.
type SQLiteStore struct {
	db *DB
}

// OpenSQLite opens the store at path, or at DefaultDBPath when path is empty.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		var err error
		if path, err = DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// DB returns the underlying database.
func (s *SQLiteStore) DB() *DB { return s.db }

// LoadBest returns the stored best time, or 0.
func (s *SQLiteStore) LoadBest() (int64, error) {
	var ms int64
	err := s.db.QueryRow("SELECT millis FROM best_time WHERE id = 1").Scan(&ms)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load best time: %w", err)
	}
	return ms, nil
}

// SaveBest replaces the stored best time.
func (s *SQLiteStore) SaveBest(ms int64) error {
	if ms < 0 {
		return ErrNegativeTime
	}
	_, err := s.db.Exec(`
		INSERT INTO best_time (id, millis, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET millis = excluded.millis, updated_at = excluded.updated_at
	`, ms, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save best time: %w", err)
	}
	return nil
}

// ClearBest removes the stored best time.
func (s *SQLiteStore) ClearBest() error {
	if _, err := s.db.Exec("DELETE FROM best_time"); err != nil {
		return fmt.Errorf("failed to clear best time: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore keeps the best time in memory only.
type MemoryStore struct {
	best int64
}

func (m *MemoryStore) LoadBest() (int64, error) { return m.best, nil }

func (m *MemoryStore) SaveBest(ms int64) error {
	if ms < 0 {
		return ErrNegativeTime
	}
	m.best = ms
	return nil
}

func (m *MemoryStore) ClearBest() error {
	m.best = 0
	return nil
}

func (m *MemoryStore) Close() error { return nil }
