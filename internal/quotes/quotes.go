// internal/quotes/quotes.go
//
// Quote catalog for the daily puzzle.
//
// Catalog sources:
//   1. QUOTES_FILE (a JSON array of {quoteText, quoteAuthor}) when configured.
//   2. Otherwise the embedded assets/quotes.json.
//
// Quotes are addressed by dense ids 0..n-1 in file order. Entries whose text
// is blank are skipped before ids are assigned.

package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/quotetiles/assets"
)

// ErrQuoteNotFound is returned for an id outside the catalog.
var ErrQuoteNotFound = errors.New("quotes: quote not found")

// Quote is one catalog entry.
type Quote struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// fileEntry is the on-disk shape.
type fileEntry struct {
	QuoteText   string `json:"quoteText"`
	QuoteAuthor string `json:"quoteAuthor"`
}

// Decode reads a JSON catalog and assigns ids in order.
func Decode(r io.Reader) ([]Quote, error) {
	var entries []fileEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode quotes: %w", err)
	}
	out := make([]Quote, 0, len(entries))
	for _, e := range entries {
		text := strings.TrimSpace(e.QuoteText)
		if text == "" {
			continue
		}
		out = append(out, Quote{ID: len(out), Text: text, Author: strings.TrimSpace(e.QuoteAuthor)})
	}
	return out, nil
}

// Load returns the catalog from path, or the embedded one when path is empty.
func Load(path string) ([]Quote, error) {
	if path == "" {
		f, err := assets.FS.Open(assets.QuotesFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return Decode(f)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Memory is an in-process catalog.
type Memory struct {
	quotes []Quote
}

// NewMemory builds a catalog over list. Ids are reassigned to match positions.
func NewMemory(list []Quote) *Memory {
	q := make([]Quote, len(list))
	for i, x := range list {
		x.ID = i
		q[i] = x
	}
	return &Memory{quotes: q}
}

// Size returns the number of quotes.
func (m *Memory) Size(ctx context.Context) (int, error) { return len(m.quotes), nil }

// Quote returns the quote with the given id.
func (m *Memory) Quote(ctx context.Context, id int) (Quote, error) {
	if id < 0 || id >= len(m.quotes) {
		return Quote{}, fmt.Errorf("%w: id %d", ErrQuoteNotFound, id)
	}
	return m.quotes[id], nil
}
