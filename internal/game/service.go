// internal/game/service.go
//
// Game service for the daily two-quote tile puzzle.
// Responsibilities:
//   - Resolve or create the caller's session for today.
//   - Serve the day's tiles, or the revealed answer once a session is finished.
//   - Validate a submitted arrangement by recomputing the puzzle.
//   - Gate guesses: at most maxGuesses per session and day.
//   - Aggregate today's outcome stats.
//
// Notes:
//   - The puzzle is never stored; every call rebuilds it from the seed.
//   - Store calls run under a timeout; any store failure surfaces as
//     ErrStoreUnavailable and is never reported as success.

package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quotetiles/internal/daily"
	"github.com/robalobadob/quotetiles/internal/metrics"
	"github.com/robalobadob/quotetiles/internal/puzzle"
	"github.com/robalobadob/quotetiles/internal/store"
)

var (
	// ErrStoreUnavailable wraps any session store failure or timeout.
	ErrStoreUnavailable = errors.New("game: session store unavailable")
	// ErrMalformedSubmission rejects a submission before any guess is spent.
	ErrMalformedSubmission = errors.New("game: malformed submission")
)

const defaultStoreTimeout = 2 * time.Second

// Config wires a Service.
type Config struct {
	Engine       *puzzle.Engine
	Sessions     store.Store
	Clock        daily.Clock    // defaults to time.Now
	Location     *time.Location // defaults to time.Local
	MaxGuesses   int            // defaults to DefaultMaxGuesses
	StoreTimeout time.Duration  // defaults to 2s
}

// Service runs the daily game.
type Service struct {
	engine       *puzzle.Engine
	sessions     store.Store
	clock        daily.Clock
	loc          *time.Location
	maxGuesses   int
	storeTimeout time.Duration
}

// New constructs a Service from cfg.
func New(cfg Config) (*Service, error) {
	if cfg.Engine == nil || cfg.Sessions == nil {
		return nil, errors.New("game: engine and sessions are required")
	}
	s := &Service{
		engine:       cfg.Engine,
		sessions:     cfg.Sessions,
		clock:        cfg.Clock,
		loc:          cfg.Location,
		maxGuesses:   cfg.MaxGuesses,
		storeTimeout: cfg.StoreTimeout,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.maxGuesses <= 0 {
		s.maxGuesses = DefaultMaxGuesses
	}
	if s.storeTimeout <= 0 {
		s.storeTimeout = defaultStoreTimeout
	}
	return s, nil
}

// MaxGuesses returns the daily allowance.
func (s *Service) MaxGuesses() int { return s.maxGuesses }

// now returns the current time in the puzzle location.
func (s *Service) now() time.Time { return s.clock().In(s.loc) }

// Seed returns today's seed.
func (s *Service) Seed() int64 { return daily.Seed(s.now()) }

// Tiles serves today's puzzle for sessionID. An empty id gets a fresh one.
func (s *Service) Tiles(ctx context.Context, sessionID string) (*TilesResult, error) {
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	seed := s.Seed()
	p, err := s.engine.Build(ctx, seed)
	if err != nil {
		return nil, err
	}

	state := StateOf(sess, s.maxGuesses)
	res := &TilesResult{
		SessionID:   sess.ID,
		State:       state,
		Seed:        seed,
		GuessNumber: sess.GuessNumber,
		Solved:      sess.Solved,
	}
	if state.Finished() {
		stats, err := s.Stats(ctx)
		if err != nil {
			return nil, err
		}
		res.CompletedTop, res.CompletedBottom = p.Completed(false)
		res.Stats = &stats
	} else {
		res.Tiles = p.Shuffled()
	}
	metrics.PuzzleServed(string(state))
	log.Debug().Int64("seed", seed).Str("session", sess.ID).Str("state", string(state)).Msg("tiles served")
	return res, nil
}

// Validate scores a submission for sessionID against today's puzzle.
func (s *Service) Validate(ctx context.Context, sessionID string, sub []puzzle.Placement) (*ValidateResult, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrMalformedSubmission)
	}
	if len(sub) == 0 {
		return nil, fmt.Errorf("%w: empty arrangement", ErrMalformedSubmission)
	}
	seed := s.Seed()
	p, err := s.engine.Build(ctx, seed)
	if err != nil {
		return nil, err
	}
	if len(sub) != len(p.Tiles) {
		return nil, fmt.Errorf("%w: got %d tiles, puzzle has %d", ErrMalformedSubmission, len(sub), len(p.Tiles))
	}

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state := StateOf(sess, s.maxGuesses); state.Finished() {
		return s.finished(p, sess), nil
	}

	verdict := s.engine.Check(seed, len(p.Tiles), sub)

	// The guess and, for a correct answer, the solved flag are one write.
	n, err := s.incrementGuess(ctx, sess.ID, verdict.Correct)
	if errors.Is(err, store.ErrGuessRejected) {
		// Lost a race with another submission that finished the session.
		cur, gerr := s.get(ctx, sess.ID)
		if gerr != nil {
			return nil, gerr
		}
		return s.finished(p, cur), nil
	}
	if err != nil {
		return nil, err
	}

	logger := log.With().Int64("seed", seed).Str("session", sess.ID).Int("guess", n).Logger()
	res := &ValidateResult{SessionID: sess.ID, GuessNumber: n}
	switch {
	case verdict.Correct:
		res.Result = true
		res.CompletedTop, res.CompletedBottom = p.Completed(verdict.Mirrored)
		metrics.Validated(metrics.OutcomeCorrect)
		logger.Info().Bool("mirrored", verdict.Mirrored).Msg("puzzle solved")
	case n >= s.maxGuesses:
		res.CompletedTop, res.CompletedBottom = p.Completed(false)
		metrics.Validated(metrics.OutcomeExhausted)
		logger.Info().Msg("guesses exhausted")
	default:
		res.OrderCheck = verdict.Order
		metrics.Validated(metrics.OutcomeIncorrect)
		logger.Debug().Msg("wrong arrangement")
	}
	return res, nil
}

// finished answers a submission from a session that can no longer guess.
func (s *Service) finished(p *puzzle.Puzzle, sess *store.Session) *ValidateResult {
	metrics.Validated(metrics.OutcomeLocked)
	res := &ValidateResult{SessionID: sess.ID, Result: sess.Solved, GuessNumber: sess.GuessNumber}
	res.CompletedTop, res.CompletedBottom = p.Completed(false)
	return res
}

// Stats aggregates today's sessions.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	list, err := s.sessions.Scan(ctx)
	if err != nil {
		return Stats{}, s.storeErr("scan", err)
	}
	return Aggregate(list, s.maxGuesses), nil
}

// session returns the live session for id, creating it when absent or
// expired. An empty id is replaced by a new uuid.
func (s *Service) session(ctx context.Context, id string) (*store.Session, error) {
	if id == "" {
		id = uuid.NewString()
	} else {
		sess, err := s.get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	sess, err := s.sessions.Create(ctx, id, daily.NextMidnight(s.now()))
	if err != nil {
		return nil, s.storeErr("create", err)
	}
	log.Debug().Str("session", id).Msg("session created")
	return sess, nil
}

// get passes store.ErrNotFound through and maps other failures to
// ErrStoreUnavailable.
func (s *Service) get(ctx context.Context, id string) (*store.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	sess, err := s.sessions.Get(ctx, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, s.storeErr("get", err)
	}
	return sess, err
}

func (s *Service) incrementGuess(ctx context.Context, id string, solve bool) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	n, err := s.sessions.IncrementGuess(ctx, id, s.maxGuesses, solve)
	if err != nil && !errors.Is(err, store.ErrGuessRejected) {
		return 0, s.storeErr("increment", err)
	}
	return n, err
}

// Purge asks the store to drop expired sessions.
func (s *Service) Purge(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	n, err := s.sessions.Purge(ctx)
	if err != nil {
		return 0, s.storeErr("purge", err)
	}
	return n, nil
}

func (s *Service) storeErr(op string, err error) error {
	metrics.StoreError(op)
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
