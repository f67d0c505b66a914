// Package avatar tracks in-flight try-on sessions. A session is the working
// state between avatar generation and saving a look: the avatar image plus
// the current accessory selection. Sessions live only in memory and expire
// when idle.
package avatar

import (
	"fmt"
	"maps"
	"sync"
	"time"
)

// Session is one try-on session.
type Session struct {
	ID string

	// Image is the avatar image reference (a data URI). The demo pipeline
	// does no compositing: the rendered look is always this image, with the
	// accessory selection tracked alongside it.
	Image string

	// Accessories maps category -> selected accessory id. At most one
	// accessory per category; selecting again replaces the previous one.
	Accessories map[string]string

	CreatedAt  time.Time
	LastUsedAt time.Time
}

func (s *Session) clone() *Session {
	c := *s
	c.Accessories = maps.Clone(s.Accessories)
	return &c
}

// Registry provides in-memory storage and lookup for try-on sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create mints a new session around the given avatar image and returns a
// snapshot of it. IDs follow the avatar_<unix-millis> convention and are kept
// unique by suffixing when two sessions land on the same millisecond.
func (r *Registry) Create(image string) *Session {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	id := fmt.Sprintf("avatar_%d", now.UnixMilli())
	for n := 1; ; n++ {
		if _, taken := r.sessions[id]; !taken {
			break
		}
		id = fmt.Sprintf("avatar_%d_%d", now.UnixMilli(), n)
	}

	s := &Session{
		ID:          id,
		Image:       image,
		Accessories: make(map[string]string),
		CreatedAt:   now,
		LastUsedAt:  now,
	}
	r.sessions[id] = s
	return s.clone()
}

// Get returns a snapshot of a session and marks it used.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.LastUsedAt = time.Now()
	return s.clone(), true
}

// TryOn records an accessory selection on a session, replacing any previous
// selection in the same category, and returns the updated snapshot.
func (r *Registry) TryOn(id, category, accessoryID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.Accessories[category] = accessoryID
	s.LastUsedAt = time.Now()
	return s.clone(), true
}

// Clear drops every accessory selection from a session, returning it to the
// bare avatar image.
func (r *Registry) Clear(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.Accessories = make(map[string]string)
	s.LastUsedAt = time.Now()
	return s.clone(), true
}

// Delete removes a session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// ExpireIdle removes sessions not used since the cutoff and returns how many
// were dropped.
func (r *Registry) ExpireIdle(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, s := range r.sessions {
		if s.LastUsedAt.Before(cutoff) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}
