// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// This is a lightweight persistence layer used for ephemeral sessions,
// primarily in development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores Session values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex       // guards sessions
	sessions map[string]Session // keyed by Session.ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	o := buildOptions(opts)
	return &memory{sessions: make(map[string]Session), now: o.now}
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok || !s.live(m.now()) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &s, nil
}

func (m *memory) Create(ctx context.Context, id string, expiresAt time.Time) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if s, ok := m.sessions[id]; ok && s.live(now) {
		return &s, nil
	}
	s := Session{ID: id, LastUpdated: now, ExpiresAt: expiresAt}
	m.sessions[id] = s
	return &s, nil
}

// IncrementGuess holds the write lock across the check and the update.
func (m *memory) IncrementGuess(ctx context.Context, id string, limit int, solve bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	s, ok := m.sessions[id]
	if !ok || !s.live(now) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.Solved || s.GuessNumber >= limit {
		return s.GuessNumber, ErrGuessRejected
	}
	s.GuessNumber++
	s.Solved = solve
	s.LastUpdated = now
	m.sessions[id] = s
	return s.GuessNumber, nil
}

func (m *memory) Scan(ctx context.Context) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := m.now()
	out := make([]Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if s.live(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memory) Purge(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for id, s := range m.sessions {
		if !s.live(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
