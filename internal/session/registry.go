package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vectorlab/clipedit/internal/engine"
	"github.com/vectorlab/clipedit/internal/typeid"
)

var ErrNotFound = errors.New("session not found")

// Registry owns every live session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*State
	opts     engine.Options
}

func NewRegistry(opts engine.Options) *Registry {
	return &Registry{
		sessions: make(map[string]*State),
		opts:     opts,
	}
}

// Create starts a new session with the registry's drawing defaults.
func (r *Registry) Create() *State {
	s := NewState(typeid.NewSessionID(), r.opts)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	n := len(r.sessions)
	r.mu.Unlock()

	slog.Info("session created", "sessionId", s.ID(), "sessions", n)
	return s
}

func (r *Registry) Get(id string) (*State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.sessions, id)
	slog.Info("session deleted", "sessionId", id, "sessions", len(r.sessions))
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
