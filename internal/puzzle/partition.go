// internal/puzzle/partition.go
//
// Splits the two quotes into the same number of word groups.

package puzzle

import (
	"errors"
	"strings"
)

// ErrEmptyQuote is returned when a selected quote has no words after normalization.
var ErrEmptyQuote = errors.New("puzzle: quote has no words")

const (
	minTiles = 5
	maxTiles = 10
)

// TileCount returns the number of tiles for two quotes of lenA and lenB words.
//
// With cap = min(lenA, lenB, 10) the result lies in [min(cap,5), cap] and is
// drawn at seed. A zero cap yields ErrEmptyQuote.
func TileCount(seed int64, lenA, lenB int) (int, error) {
	limit := min(lenA, lenB, maxTiles)
	if limit <= 0 {
		return 0, ErrEmptyQuote
	}
	lo := min(limit, minTiles)
	n := lo + int(Draw(seed)*float64(limit-lo+1))
	return min(n, limit), nil
}

// Distribute splits words into n groups in order. The first len(words)%n
// groups get one extra word. Each group is its words joined by a space;
// groups past the end of a too-short list are empty.
func Distribute(words []string, n int) []string {
	if n <= 0 {
		return nil
	}
	groups := make([]string, n)
	per, extra := len(words)/n, len(words)%n
	next := 0
	for i := 0; i < n; i++ {
		count := per
		if i < extra {
			count++
		}
		groups[i] = strings.Join(words[next:next+count], " ")
		next += count
	}
	return groups
}
