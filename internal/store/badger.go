// internal/store/badger.go
//
// BadgerDB implementation of the Store interface.
//
// Sessions are JSON values under "session/<id>" with a TTL running to their
// ExpiresAt, so Badger reclaims them on its own; Purge only nudges value log
// GC. Read-modify-write runs inside db.Update, and Badger's optimistic
// transactions abort one side of a race with ErrConflict, which is retried.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
)

const (
	badgerPrefix     = "session/"
	badgerMaxRetries = 8
	badgerGCRatio    = 0.5
)

// BadgerStore keeps sessions in a Badger database.
type BadgerStore struct {
	db  *badger.DB
	now func() time.Time
}

// BadgerOptions returns options for a store at path, or an in-memory one
// when path is empty.
func BadgerOptions(path string) badger.Options {
	if path == "" {
		return badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	return badger.DefaultOptions(path).WithLogger(nil)
}

// OpenBadger opens a Badger database with opts.
func OpenBadger(opts badger.Options) (*badger.DB, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return db, nil
}

// NewBadgerStore wraps an open Badger database.
func NewBadgerStore(db *badger.DB, opts ...Option) *BadgerStore {
	o := buildOptions(opts)
	return &BadgerStore{db: db, now: o.now}
}

func badgerKey(id string) []byte { return []byte(badgerPrefix + id) }

// load reads the live session for id inside txn.
func (b *BadgerStore) load(txn *badger.Txn, id string) (*Session, error) {
	item, err := txn.Get(badgerKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	var s Session
	if err := item.Value(func(v []byte) error { return json.Unmarshal(v, &s) }); err != nil {
		return nil, err
	}
	if !s.live(b.now()) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &s, nil
}

func (b *BadgerStore) save(txn *badger.Txn, s *Session) error {
	v, err := json.Marshal(s)
	if err != nil {
		return err
	}
	e := badger.NewEntry(badgerKey(s.ID), v)
	if ttl := s.ExpiresAt.Sub(b.now()); ttl > 0 {
		e = e.WithTTL(ttl)
	}
	return txn.SetEntry(e)
}

// update runs fn in a read-write transaction, retrying on conflicts.
func (b *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < badgerMaxRetries; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		err = b.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (b *BadgerStore) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *Session
	err := b.db.View(func(txn *badger.Txn) error {
		s, err := b.load(txn, id)
		out = s
		return err
	})
	return out, err
}

func (b *BadgerStore) Create(ctx context.Context, id string, expiresAt time.Time) (*Session, error) {
	var out *Session
	err := b.update(ctx, func(txn *badger.Txn) error {
		s, err := b.load(txn, id)
		if err == nil {
			out = s
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		out = &Session{ID: id, LastUpdated: b.now(), ExpiresAt: expiresAt}
		return b.save(txn, out)
	})
	return out, err
}

func (b *BadgerStore) IncrementGuess(ctx context.Context, id string, limit int, solve bool) (int, error) {
	var n int
	err := b.update(ctx, func(txn *badger.Txn) error {
		s, err := b.load(txn, id)
		if err != nil {
			return err
		}
		n = s.GuessNumber
		if s.Solved || s.GuessNumber >= limit {
			return ErrGuessRejected
		}
		s.GuessNumber++
		s.Solved = solve
		s.LastUpdated = b.now()
		n = s.GuessNumber
		return b.save(txn, s)
	})
	return n, err
}

func (b *BadgerStore) Scan(ctx context.Context) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Session
	now := b.now()
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var s Session
			if err := it.Item().Value(func(v []byte) error { return json.Unmarshal(v, &s) }); err != nil {
				return err
			}
			if s.live(now) {
				out = append(out, s)
			}
		}
		return nil
	})
	return out, err
}

// Purge deletes sessions that expired by the store clock but whose TTL has
// not fired yet, then runs one round of value log GC.
func (b *BadgerStore) Purge(ctx context.Context) (int, error) {
	now := b.now()
	var stale [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var s Session
			if err := it.Item().Value(func(v []byte) error { return json.Unmarshal(v, &s) }); err != nil {
				return err
			}
			if !s.live(now) {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(stale) > 0 {
		err = b.update(ctx, func(txn *badger.Txn) error {
			for _, k := range stale {
				if err := txn.Delete(k); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
	}
	err = b.db.RunValueLogGC(badgerGCRatio)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) && !errors.Is(err, badger.ErrGCInMemoryMode) {
		log.Warn().Err(err).Msg("badger value log gc")
	}
	return len(stale), nil
}
