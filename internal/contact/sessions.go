package contact

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions gives every client its own Submitter, keyed by an opaque id the
// server generates. Idle sessions expire after ttl; a session with a submit
// in flight is never dropped.
type Sessions struct {
	factory func() *Submitter
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	entries   map[string]*session
	lastSweep time.Time
}

type session struct {
	submitter *Submitter
	seen      time.Time
}

func NewSessions(ttl time.Duration, factory func() *Submitter) *Sessions {
	return &Sessions{
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*session),
	}
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Get returns the Submitter for id. An unknown or expired id gets a fresh,
// empty Submitter under a newly generated id, which is returned alongside.
func (s *Sessions) Get(id string) (*Submitter, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	if entry, ok := s.entries[id]; ok && !s.expired(entry, now) {
		entry.seen = now
		return entry.submitter, id
	}
	delete(s.entries, id)

	id = uuid.NewString()
	entry := &session{submitter: s.factory(), seen: now}
	s.entries[id] = entry
	return entry.submitter, id
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) expired(entry *session, now time.Time) bool {
	return now.Sub(entry.seen) > s.ttl && !entry.submitter.Submitting()
}

// sweep drops expired sessions at most once per ttl.
func (s *Sessions) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for id, entry := range s.entries {
		if s.expired(entry, now) {
			delete(s.entries, id)
		}
	}
}
