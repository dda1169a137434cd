package quotes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// SQLCatalog reads quotes from the quotes table.
type SQLCatalog struct{ db *sql.DB }

func NewSQLCatalog(db *sql.DB) *SQLCatalog { return &SQLCatalog{db: db} }

func (c *SQLCatalog) Size(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM quotes`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *SQLCatalog) Quote(ctx context.Context, id int) (Quote, error) {
	q := Quote{ID: id}
	err := c.db.QueryRowContext(ctx, `SELECT text, author FROM quotes WHERE id=?`, id).Scan(&q.Text, &q.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, fmt.Errorf("%w: id %d", ErrQuoteNotFound, id)
	}
	if err != nil {
		return Quote{}, err
	}
	return q, nil
}

// Seed fills an empty quotes table with list. A non-empty table is left
// alone so ids stay stable across restarts; it returns how many rows it wrote.
func (c *SQLCatalog) Seed(ctx context.Context, list []Quote) (int, error) {
	n, err := c.Size(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int("quotes", n).Msg("quote catalog already seeded")
		return 0, nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO quotes (id, text, author) VALUES (?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for i, q := range list {
		if _, err := stmt.ExecContext(ctx, i, q.Text, q.Author); err != nil {
			return 0, fmt.Errorf("insert quote %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info().Int("quotes", len(list)).Msg("quote catalog seeded")
	return len(list), nil
}
