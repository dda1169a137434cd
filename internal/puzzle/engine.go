// internal/puzzle/engine.go
//
// Puzzle generation for one day.
// Responsibilities:
//   - Select the day's two quotes from the catalog.
//   - Normalize, partition and lay them out as tiles.
//   - Produce a display order that does not disturb tile identity.
//
// Notes:
//   - Nothing is cached. Build is a pure function of (seed, catalog contents,
//     secret); validation calls it again and gets the same tiles.

package puzzle

import (
	"context"
	"fmt"
	"strings"

	"github.com/robalobadob/quotetiles/internal/quotes"
)

const shuffleOffset = 1000

// UnknownAuthor attributes quotes that have no author.
const UnknownAuthor = "Unknown"

// Catalog is the read-only quote source.
type Catalog interface {
	Size(ctx context.Context) (int, error)
	Quote(ctx context.Context, id int) (quotes.Quote, error)
}

// Engine builds and checks daily puzzles.
type Engine struct {
	catalog Catalog
	hasher  *Hasher
}

// NewEngine wires an engine over a catalog and a tile id hasher.
func NewEngine(c Catalog, h *Hasher) *Engine {
	return &Engine{catalog: c, hasher: h}
}

// Puzzle is the fully derived puzzle for one seed.
type Puzzle struct {
	Seed   int64
	QuoteA quotes.Quote
	QuoteB quotes.Quote
	TextA  string // normalized
	TextB  string // normalized
	Tiles  []Tile // by position
}

// Build derives the puzzle for seed.
func (e *Engine) Build(ctx context.Context, seed int64) (*Puzzle, error) {
	size, err := e.catalog.Size(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog size: %w", err)
	}
	ia, ib, err := SelectQuotes(seed, size)
	if err != nil {
		return nil, err
	}
	qa, err := e.catalog.Quote(ctx, ia)
	if err != nil {
		return nil, fmt.Errorf("quote %d: %w", ia, err)
	}
	qb, err := e.catalog.Quote(ctx, ib)
	if err != nil {
		return nil, fmt.Errorf("quote %d: %w", ib, err)
	}

	p := &Puzzle{Seed: seed, QuoteA: qa, QuoteB: qb, TextA: Normalize(qa.Text), TextB: Normalize(qb.Text)}
	wordsA, wordsB := Words(p.TextA), Words(p.TextB)
	n, err := TileCount(seed, len(wordsA), len(wordsB))
	if err != nil {
		return nil, fmt.Errorf("quotes %d/%d: %w", ia, ib, err)
	}
	p.Tiles = Assign(seed, Distribute(wordsA, n), Distribute(wordsB, n), e.hasher)
	return p, nil
}

// Shuffled returns the tiles in display order. Tiles keep their Position,
// ID and CorrectFlip; only the slice order changes.
func (p *Puzzle) Shuffled() []Tile {
	out := make([]Tile, len(p.Tiles))
	copy(out, p.Tiles)
	for i := len(out) - 1; i > 0; i-- {
		j := Intn(p.Seed+shuffleOffset+int64(i), i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Completed returns both quotes with author attribution. Quote A is on top
// unless mirrored.
func (p *Puzzle) Completed(mirrored bool) (top, bottom string) {
	a := Attribute(p.TextA, p.QuoteA.Author)
	b := Attribute(p.TextB, p.QuoteB.Author)
	if mirrored {
		return b, a
	}
	return a, b
}

// Attribute appends " - author" to text, using UnknownAuthor for a blank author.
func Attribute(text, author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		author = UnknownAuthor
	}
	return text + " - " + author
}
