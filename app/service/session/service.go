// Package session keeps conversation state in process memory, keyed by an
// opaque id. State is ephemeral: it lives exactly as long as the process.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"
)

// ErrNotFound is returned for ids the store has never seen (or that were
// deleted). The API layer maps it to a 404.
var ErrNotFound = errors.New("session not found")

type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		sessions: make(map[string]*Session),
	}, nil
}

// Create registers a fresh session at the triage step with an empty answer
// set and returns it.
func (s *Service) Create() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Step:      StepTriage,
		Answers:   make(map[int]int),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

func (s *Service) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	return sess, nil
}

func (s *Service) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Count reports the number of live sessions.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
