package cache

import (
	"sync"
	"time"

	"github.com/lysyi3m/benefit-slides/app/benefits"
)

// Entry is the last successful extraction and the time it was fetched.
type Entry struct {
	FetchedAt time.Time
	Payload   benefits.Payload
}

// Slot holds at most one Entry for the lifetime of the process.
type Slot struct {
	entry *Entry
	mu    sync.RWMutex
}

func New() *Slot {
	return &Slot{}
}

// Get returns a copy of the current entry. The items slice is shared with
// the stored payload and must not be mutated by callers.
func (s *Slot) Get() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entry == nil {
		return Entry{}, false
	}
	return *s.entry, true
}

func (s *Slot) Set(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry = &entry
}

func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entry = nil
}
