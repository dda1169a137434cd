// Package store persists player sessions for the current puzzle day.
//
// Implementations: memory (this package, tests and single-process dev),
// SQLite (default) and BadgerDB. All of them honour the same contract:
//   - A session whose ExpiresAt has passed reads as absent.
//   - Reads give up with ctx.Err() once ctx is done.
//   - Create is idempotent for live sessions and resets expired ones.
//   - IncrementGuess is a single conditional update; it never lets two
//     racing requests both observe the same count, and a solving guess
//     sets the solved flag in that same update.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned for an absent or expired session.
	ErrNotFound = errors.New("store: session not found")
	// ErrGuessRejected is returned by IncrementGuess when the session is
	// already solved or has used every guess.
	ErrGuessRejected = errors.New("store: guess rejected")
)

// Session is one player's state for the day.
type Session struct {
	ID          string
	GuessNumber int
	Solved      bool
	LastUpdated time.Time
	ExpiresAt   time.Time
}

// Store defines the persistence interface for sessions.
type Store interface {
	// Get returns the live session with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Create makes a fresh session unless a live one already exists, in
	// which case the live one is returned unchanged.
	Create(ctx context.Context, id string, expiresAt time.Time) (*Session, error)

	// IncrementGuess adds one guess if the session is unsolved and below
	// limit, and returns the new count. With solve set the same update
	// marks the session solved; the flag is never cleared.
	IncrementGuess(ctx context.Context, id string, limit int, solve bool) (int, error)

	// Scan returns every live session.
	Scan(ctx context.Context) ([]Session, error)

	// Purge deletes expired sessions and reports how many went.
	Purge(ctx context.Context) (int, error)
}

// Option configures a store implementation.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func (s *Session) live(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
