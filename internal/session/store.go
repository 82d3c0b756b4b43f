package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an unused session is kept.
const DefaultIdleTTL = 2 * time.Hour

// Store keeps sessions in memory.
type Store struct {
	svc Services
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session

	sweepTicker *time.Ticker
	sweepStop   chan struct{}
	stopOnce    sync.Once
}

// NewStore creates a store. A non-positive ttl selects DefaultIdleTTL. When
// sweepInterval is positive, expired sessions are removed in the background until
// Stop is called.
func NewStore(svc Services, ttl, sweepInterval time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	s := &Store{
		svc:      svc,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
	if sweepInterval > 0 {
		s.sweepTicker = time.NewTicker(sweepInterval)
		s.sweepStop = make(chan struct{})
		go s.sweep()
	}
	return s
}

// Create starts a new session.
func (s *Store) Create() *Session {
	sess := New(uuid.NewString(), s.svc)
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a live session.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if time.Since(sess.LastSeen()) > s.ttl {
		s.Delete(id)
		return nil, &NotFoundError{ID: id}
	}
	return sess, nil
}

// Delete removes a session. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Expire removes sessions idle since before now-ttl and returns how many went.
func (s *Store) Expire(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen()) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) sweep() {
	for {
		select {
		case <-s.sweepTicker.C:
			if n := s.Expire(time.Now()); n > 0 {
				log.Printf("[SESSION] expired %d idle sessions", n)
			}
		case <-s.sweepStop:
			return
		}
	}
}

// Stop ends the background sweep.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		if s.sweepTicker != nil {
			s.sweepTicker.Stop()
		}
		if s.sweepStop != nil {
			close(s.sweepStop)
		}
	})
}
