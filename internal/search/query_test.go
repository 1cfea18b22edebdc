package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestStore_SetAndNormalized(t *testing.T) {
	s := NewStore()

	s.Set("  DSLR Camera ")
	assert.Equal(t, "  DSLR Camera ", s.Query())
	assert.Equal(t, "dslr camera", s.Normalized())
}

func TestStore_SetCapsAt200(t *testing.T) {
	s := NewStore()
	s.Set(strings.Repeat("x", 500))
	assert.Len(t, s.Query(), MaxQueryLen)
}

func TestStore_SetCapsOnCharacterBoundary(t *testing.T) {
	s := NewStore()
	s.Set(strings.Repeat("é", 300))

	q := s.Query()
	assert.True(t, utf8.ValidString(q), "truncation must not split a multi-byte character")
	assert.Equal(t, MaxQueryLen, utf8.RuneCountInString(q))
}

func TestStore_SetUnchangedDoesNotNotify(t *testing.T) {
	s := NewStore()
	notified := 0
	s.Subscribe(func() { notified++ })

	s.Set("cam")
	s.Set("cam")
	assert.Equal(t, 1, notified, "identical value must not re-notify")

	s.Set("camera")
	assert.Equal(t, 2, notified)
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	notified := 0
	s.Subscribe(func() { notified++ })

	// Clearing an already-empty query is a no-op
	s.Clear()
	assert.Equal(t, 0, notified)

	s.Set("cam")
	s.Clear()
	assert.Empty(t, s.Query())
	assert.Equal(t, 2, notified)
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		fields []string
		want   bool
	}{
		{"empty query matches all", "", []string{"anything"}, true},
		{"substring in name", "cam", []string{"Professional DSLR Camera", "", "Canon"}, true},
		{"substring in brand", "canon", []string{"DSLR", "desc", "Canon"}, true},
		{"case insensitive", "CAM", []string{"camera"}, false}, // query is pre-normalized by the store
		{"no match", "vase", []string{"DSLR Camera", "Canon"}, false},
		{"empty fields skipped", "cam", []string{"", ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.query, tt.fields...))
		})
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	s := NewStore()
	notified := 0
	unsub := s.Subscribe(func() { notified++ })

	s.Set("a")
	unsub()
	s.Set("b")

	assert.Equal(t, 1, notified)
}
