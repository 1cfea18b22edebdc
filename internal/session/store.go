// Package session owns the logged-in user's persisted state: token, refresh
// token, role, email, name, and phone, each an independent string entry in a
// local SQLite key-value store. All reads and writes of session state go
// through this package so access is not scattered across the UI.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/logging"

	_ "modernc.org/sqlite"
)

// Persisted session keys. Plain strings, no schema versioning.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyRole         = "role"
	KeyEmail        = "email"
	KeyName         = "name"
	KeyPhone        = "phone"
)

// Store is the persistent key-value store backing the session, the local
// analogue of browser localStorage. Safe for concurrent use within one
// process; concurrent processes are not coordinated.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// NewStore opens (or creates) the SQLite database at the given path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.SessionDebug("failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.SessionDebug("failed to set sqlite journal_mode=WAL: %v", err)
	}

	store := &Store{db: db, dbPath: path}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Session("session store opened at %s", path)
	return store, nil
}

// initialize creates the required table.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Get returns the value for key, or ("", false) when unset.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		logging.Get(logging.CategorySession).Error("get %s failed: %v", key, err)
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// SetIfAbsent stores value under key only when no value exists yet.
func (s *Store) SetIfAbsent(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO NOTHING`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. No-op when absent.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every entry in the store, not just the session keys. Logout
// wipes all client storage.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	logging.Session("closing session store")
	return s.db.Close()
}
