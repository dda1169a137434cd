package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore keeps sessions in the sessions table. Times are unix seconds.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLStore wraps a migrated database.
func NewSQLStore(db *sql.DB, opts ...Option) *SQLStore {
	o := buildOptions(opts)
	return &SQLStore{db: db, now: o.now}
}

func (s *SQLStore) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, guess_number, solved, last_updated, expires_at
        FROM sessions
        WHERE id=? AND expires_at > ?`, id, s.now().Unix())
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, err
}

// Create inserts a fresh row, or resets a row whose expiry has passed.
// A live row is left untouched.
func (s *SQLStore) Create(ctx context.Context, id string, expiresAt time.Time) (*Session, error) {
	now := s.now().Unix()
	if _, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions (id, guess_number, solved, last_updated, expires_at)
        VALUES (?, 0, 0, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            guess_number = 0,
            solved       = 0,
            last_updated = excluded.last_updated,
            expires_at   = excluded.expires_at
        WHERE sessions.expires_at <= ?`,
		id, now, expiresAt.Unix(), now,
	); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s.Get(ctx, id)
}

// IncrementGuess is one UPDATE ... RETURNING gated on the session being
// live, unsolved and under limit. The solved flag rides in the same row
// update.
func (s *SQLStore) IncrementGuess(ctx context.Context, id string, limit int, solve bool) (int, error) {
	now := s.now().Unix()
	var n int
	err := s.db.QueryRowContext(ctx, `
        UPDATE sessions
        SET guess_number = guess_number + 1, solved = ?, last_updated = ?
        WHERE id=? AND expires_at > ? AND solved = 0 AND guess_number < ?
        RETURNING guess_number`,
		solve, now, id, now, limit,
	).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		// Tell a missing session apart from a gated one.
		cur, gerr := s.Get(ctx, id)
		if gerr != nil {
			return 0, gerr
		}
		return cur.GuessNumber, ErrGuessRejected
	}
	if err != nil {
		return 0, fmt.Errorf("increment guess: %w", err)
	}
	return n, nil
}

func (s *SQLStore) Scan(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, guess_number, solved, last_updated, expires_at
        FROM sessions
        WHERE expires_at > ?`, s.now().Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sess)
	}
	return out, rows.Err()
}

func (s *SQLStore) Purge(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var (
		sess             Session
		solved           int
		updated, expires int64
	)
	if err := row.Scan(&sess.ID, &sess.GuessNumber, &solved, &updated, &expires); err != nil {
		return nil, err
	}
	sess.Solved = solved != 0
	sess.LastUpdated = time.Unix(updated, 0)
	sess.ExpiresAt = time.Unix(expires, 0)
	return &sess, nil
}
