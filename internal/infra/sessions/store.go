// Package sessions holds in-flight checkout wizard state. Sessions are
// ephemeral by contract: they expire, they are deleted on submit or close,
// and nothing in them is ever persisted.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"services-portal/internal/domain/checkout"
)

// Checkout is one open checkout modal: the owning principal, the project
// being ordered and the wizard tracking the two steps. The store hands out
// the same pointer to every request for a given id, so callers hold the
// embedded mutex while reading or mutating the wizard.
type Checkout struct {
	sync.Mutex

	UserID    uint
	ProjectID uint
	Wizard    *checkout.Wizard
}

type entry struct {
	session   *Checkout
	expiresAt time.Time
}

// Store is a thread-safe in-memory TTL store. Expired sessions are swept by
// a background goroutine; a Get after expiry misses either way.
type Store struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	stop  chan struct{}
}

func NewStore(ttl time.Duration) *Store {
	s := &Store{
		items: make(map[string]entry),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Create registers a session under a fresh random id and returns the id.
func (s *Store) Create(cs *Checkout) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = entry{session: cs, expiresAt: time.Now().Add(s.ttl)}
	return id
}

// Get returns the session for id, or false when unknown or expired.
func (s *Store) Get(id string) (*Checkout, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.items[id]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.session, true
}

// Claim atomically removes and returns the session, provided userID owns
// it. Of any number of concurrent claims exactly one succeeds, which is
// what makes a payment submission single-flight: the losers see no session
// at all.
func (s *Store) Claim(id string, userID uint) (*Checkout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok || time.Now().After(e.expiresAt) || e.session.UserID != userID {
		return nil, false
	}
	delete(s.items, id)
	return e.session, true
}

// Restore puts a claimed session back under its original id with a fresh
// TTL. Used when a claimed submission fails validation and the wizard
// should stay open.
func (s *Store) Restore(id string, cs *Checkout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = entry{session: cs, expiresAt: time.Now().Add(s.ttl)}
}

// Delete discards a session. Closing the checkout modal lands here; a
// subsequent Create starts over with a fresh wizard.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Close stops the sweep goroutine. The store remains usable; entries just
// stop being evicted eagerly (Get still refuses expired ones).
func (s *Store) Close() {
	close(s.stop)
}

func (s *Store) sweep() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for k, v := range s.items {
				if now.After(v.expiresAt) {
					delete(s.items, k)
				}
			}
			s.mu.Unlock()
		}
	}
}
