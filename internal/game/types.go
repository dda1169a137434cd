// internal/game/types.go
//
// Core type definitions for the daily tile game.
// Defines:
//   - State: where a session sits in its daily lifecycle.
//   - TilesResult / ValidateResult: what the service hands back to callers.
//   - Stats: outcome buckets over today's sessions.

package game

import (
	"github.com/robalobadob/quotetiles/internal/puzzle"
	"github.com/robalobadob/quotetiles/internal/store"
)

// DefaultMaxGuesses is the daily guess allowance.
const DefaultMaxGuesses = 3

// State is the coarse lifecycle of a session.
//
//	new → active → solved
//	           └─→ exhausted
type State string

const (
	StateNew       State = "new"       // created, no guesses yet
	StateActive    State = "active"    // 0 < guesses < max, unsolved
	StateSolved    State = "solved"    // terminal
	StateExhausted State = "exhausted" // guesses >= max, unsolved; terminal for the day
)

// Finished reports whether the state accepts no more guesses.
func (s State) Finished() bool { return s == StateSolved || s == StateExhausted }

// StateOf classifies a session against the guess allowance.
func StateOf(s *store.Session, maxGuesses int) State {
	switch {
	case s.Solved:
		return StateSolved
	case s.GuessNumber >= maxGuesses:
		return StateExhausted
	case s.GuessNumber == 0:
		return StateNew
	default:
		return StateActive
	}
}

// TilesResult answers a puzzle request. Tiles is set while the session can
// still play; otherwise the completed quotes and Stats are.
type TilesResult struct {
	SessionID       string
	State           State
	Seed            int64
	Tiles           []puzzle.Tile // display order
	GuessNumber     int
	Solved          bool
	CompletedTop    string
	CompletedBottom string
	Stats           *Stats
}

// ValidateResult answers a submission.
type ValidateResult struct {
	SessionID       string
	Result          bool
	GuessNumber     int
	CompletedTop    string
	CompletedBottom string
	OrderCheck      []bool // only on a wrong answer with guesses left
}

// Stats buckets today's sessions by outcome.
type Stats struct {
	SolvedIn1 int `json:"solvedIn1"`
	SolvedIn2 int `json:"solvedIn2"`
	SolvedIn3 int `json:"solvedIn3"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// Solved returns the number of solved sessions counted in a bucket.
func (s Stats) Solved() int { return s.SolvedIn1 + s.SolvedIn2 + s.SolvedIn3 }
