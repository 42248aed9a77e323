package sessionstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-formjourney/pkg/state"
)

// Memory is a process-local Store for tests and single-instance hosts.
// Sessions are cloned on the way in and out so callers never share mutable
// state with the store.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*state.Session
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]*state.Session)}
}

// Load returns a copy of the session stored under key.
func (m *Memory) Load(ctx context.Context, key string) (*state.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[key]
	if !ok {
		return nil, fmt.Errorf("%w: key %q", ErrNotFound, key)
	}
	return session.Clone(), nil
}

// Save stores a copy of the session under key.
func (m *Memory) Save(ctx context.Context, key string, session *state.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("sessionstore: session is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[key] = session.Clone()
	return nil
}

// Delete removes the session under key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, key)
	return nil
}

// Len reports the number of stored sessions. Intended for tests.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
