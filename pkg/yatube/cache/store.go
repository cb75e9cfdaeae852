// Package cache keeps rendered pages for a short time.
package cache

import (
	"net/http"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Entry is one cached response
type Entry struct {
	Status  int
	Header  http.Header
	Body    []byte
	Expires time.Time
}

func (e *Entry) expired(now time.Time) bool {
	return !e.Expires.IsZero() && now.After(e.Expires)
}

// Store holds cache entries by key
type Store interface {
	Get(key string) (*Entry, bool)
	Set(key string, entry *Entry)
	Delete(key string)
	Clear()
}

// MemoryStore is an in-process Store. Expired entries are dropped on read.
type MemoryStore struct {
	entries cmap.ConcurrentMap[string, *Entry]
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: cmap.New[*Entry](),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(key string) (*Entry, bool) {
	entry, ok := s.entries.Get(key)
	if !ok {
		return nil, false
	}
	if entry.expired(s.now()) {
		s.entries.RemoveCb(key, func(_ string, current *Entry, exists bool) bool {
			return exists && current == entry
		})
		return nil, false
	}
	return entry, true
}

func (s *MemoryStore) Set(key string, entry *Entry) {
	s.entries.Set(key, entry)
}

func (s *MemoryStore) Delete(key string) {
	s.entries.Remove(key)
}

func (s *MemoryStore) Clear() {
	s.entries.Clear()
}

// Len counts entries, expired ones included
func (s *MemoryStore) Len() int {
	return s.entries.Count()
}
