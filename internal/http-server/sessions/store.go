// Package sessions keeps one gallery session per API client in memory.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"catalogdash/internal/gallery"
	"catalogdash/internal/pkg/clock"
)

const HeaderSessionID = "X-Session-Id"

const DefaultIdleTTL = 30 * time.Minute

// Entry is a session plus the lock that serializes its renders.
type Entry struct {
	mu       sync.Mutex
	ID       string
	Session  *gallery.Session
	lastSeen time.Time
}

func (e *Entry) Lock()   { e.mu.Lock() }
func (e *Entry) Unlock() { e.mu.Unlock() }

type Store struct {
	idle     time.Duration
	pageSize int
	clock    clock.Clock

	mu      sync.Mutex
	entries map[string]*Entry
}

func NewStore(idle time.Duration, pageSize int, clk clock.Clock) *Store {
	if idle <= 0 {
		idle = DefaultIdleTTL
	}
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Store{
		idle:     idle,
		pageSize: pageSize,
		clock:    clk,
		entries:  make(map[string]*Entry),
	}
}

// Acquire returns the live session for id, or a fresh one under a new id
// when id is empty, unknown or expired. Expired sessions are dropped here.
func (s *Store) Acquire(id string) (e *Entry, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.sweep(now)

	if e, ok := s.entries[id]; ok {
		e.lastSeen = now
		return e, false
	}

	e = &Entry{
		ID:       uuid.NewString(),
		Session:  gallery.NewSession(s.pageSize),
		lastSeen: now,
	}
	s.entries[e.ID] = e
	return e, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) sweep(now time.Time) {
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.idle {
			delete(s.entries, id)
		}
	}
}
