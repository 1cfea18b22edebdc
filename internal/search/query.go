// Package search holds the single search query shared across the list views.
// The query lives for the session, is capped at 200 characters, and exposes a
// normalized (trimmed, lower-cased) view used for case-insensitive substring
// matching. Filtering is local to whatever page a view currently holds; it
// never requests more pages to satisfy the query.
package search

import (
	"strings"
	"sync"

	"storefront/internal/logging"
)

// MaxQueryLen caps the raw query, counted in characters, to keep pathological
// input out of the store.
const MaxQueryLen = 200

// Store holds the shared query. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	query       string
	subscribers map[int]func()
	nextSubID   int
}

// NewStore creates an empty query store.
func NewStore() *Store {
	return &Store{subscribers: make(map[int]func())}
}

// Subscribe registers a callback invoked when the query actually changes.
// The returned function unsubscribes.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// Set updates the raw query, truncating to MaxQueryLen characters. Truncation
// counts runes, never splitting a multi-byte character. Setting the current
// value again is a silent no-op so downstream filters are not recomputed.
func (s *Store) Set(raw string) {
	if r := []rune(raw); len(r) > MaxQueryLen {
		raw = string(r[:MaxQueryLen])
	}

	s.mu.Lock()
	if raw == s.query {
		s.mu.Unlock()
		return
	}
	s.query = raw
	s.mu.Unlock()

	logging.Search("set %q", raw)
	s.notify()
}

// Clear resets the query to empty. No-op if already empty.
func (s *Store) Clear() {
	s.mu.Lock()
	if s.query == "" {
		s.mu.Unlock()
		return
	}
	s.query = ""
	s.mu.Unlock()

	logging.Search("clear")
	s.notify()
}

// Query returns the raw query.
func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Normalized returns the trimmed, lower-cased query used for matching,
// recomputed from the raw query on demand.
func (s *Store) Normalized() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.ToLower(strings.TrimSpace(s.query))
}

// Matches reports whether a normalized query matches any of the given text
// fields by case-insensitive substring. The empty query matches everything;
// empty fields are skipped.
func Matches(normalized string, fields ...string) bool {
	if normalized == "" {
		return true
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), normalized) {
			return true
		}
	}
	return false
}
