package uploads

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Sessions tracks the pending collection of each open admin form. Entries
// expire after the TTL so an abandoned form does not pin its URLs
// forever. An upload completing after expiry mutates a list nobody reads
// anymore; there is no cancellation of in-flight uploads.
type Sessions struct {
	cache *gocache.Cache
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Open registers a new form session seeded with the given URLs (the
// record's existing images when editing, nil when creating) and returns
// its id.
func (s *Sessions) Open(initial []string) (string, *Pending) {
	id := uuid.New().String()
	pending := NewPending(initial)
	s.cache.Set(id, pending, gocache.DefaultExpiration)
	return id, pending
}

// Get returns the session's pending collection, or false if the session
// is unknown or expired.
func (s *Sessions) Get(id string) (*Pending, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*Pending), true
}

// Close discards a session once its form is submitted or cancelled.
func (s *Sessions) Close(id string) {
	s.cache.Delete(id)
}
