package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-regform/pkg/form"
)

// SessionCookie names the cookie that ties a browser to its form.
const SessionCookie = "regform_session"

// DefaultSessionTTL is how long an idle form is kept.
const DefaultSessionTTL = 30 * time.Minute

// FormFactory builds the form for a new browser session.
type FormFactory func() *form.Form

// Sessions holds one form per browser session. Idle sessions are dropped
// once they outlive the TTL.
type Sessions struct {
	mu      sync.Mutex
	newForm FormFactory
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	form *form.Form
	seen time.Time
}

// NewSessions returns an empty store. A non-positive ttl uses
// DefaultSessionTTL.
func NewSessions(newForm FormFactory, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		newForm: newForm,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*sessionEntry),
	}
}

// Lookup returns the live form for id and refreshes its idle timer.
func (s *Sessions) Lookup(id string) (*form.Form, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(entry.seen) > s.ttl {
		delete(s.entries, id)
		return nil, false
	}
	entry.seen = now
	return entry.form, true
}

// Create starts a session with a fresh form.
func (s *Sessions) Create() (string, *form.Form) {
	f := s.newForm()
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.pruneLocked(now)
	s.entries[id] = &sessionEntry{form: f, seen: now}
	return id, f
}

// Len reports the number of stored sessions, expired ones included until
// the next prune.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) pruneLocked(now time.Time) {
	for id, entry := range s.entries {
		if now.Sub(entry.seen) > s.ttl {
			delete(s.entries, id)
		}
	}
}
