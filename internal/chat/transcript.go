package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one transcript turn: who said what, when, and with which
// citations (assistant turns only).
type Entry struct {
	ID        uuid.UUID
	Role      Role
	Text      string
	Citations Citations
	Time      time.Time
}

// Transcript is an append-only sequence of conversation turns.
//
// Access is guarded by a mutex as a safety net; the application itself
// processes one command at a time.
type Transcript struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{entries: make([]Entry, 0)}
}

// Append adds one entry to the end of the transcript.
func (t *Transcript) Append(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
}

// Entries returns a copy of all entries in order.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
