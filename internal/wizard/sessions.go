package wizard

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Sessions keeps one wizard per client session. Idle sessions expire after
// the configured TTL; every access extends it.
type Sessions struct {
	cache *cache.Cache
	ttl   time.Duration
	build func() *Wizard
}

// NewSessions creates a session registry. build constructs a fresh wizard.
func NewSessions(ttl time.Duration, build func() *Wizard) *Sessions {
	return &Sessions{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
		build: build,
	}
}

// Create starts a new session, optionally pre-filling the category.
func (s *Sessions) Create(prefill string) (string, *Wizard) {
	id := uuid.NewString()
	w := s.build()
	w.Prefill(prefill)
	s.cache.Set(id, w, s.ttl)
	return id, w
}

// Get returns the session's wizard and refreshes its expiry.
func (s *Sessions) Get(id string) (*Wizard, bool) {
	v, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	w := v.(*Wizard)
	s.cache.Set(id, w, s.ttl)
	return w, true
}

// Delete ends a session.
func (s *Sessions) Delete(id string) {
	s.cache.Delete(id)
}

// Len is the number of live sessions.
func (s *Sessions) Len() int {
	return s.cache.ItemCount()
}
