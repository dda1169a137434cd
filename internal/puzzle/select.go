package puzzle

import "errors"

// ErrInsufficientCatalog is returned when fewer than two quotes are available.
var ErrInsufficientCatalog = errors.New("puzzle: catalog needs at least two quotes")

const (
	quoteBOffset = 100
	maxReseeds   = 64
)

// SelectQuotes picks the day's two distinct catalog indices.
//
// Index A is drawn at seed. Index B is drawn at seed+100 and, on collision,
// at seed+101, seed+102, ... After maxReseeds collisions it falls back to the
// index after A, which keeps the result deterministic for tiny catalogs.
func SelectQuotes(seed int64, catalogSize int) (int, int, error) {
	if catalogSize < 2 {
		return 0, 0, ErrInsufficientCatalog
	}
	a := Intn(seed, catalogSize)
	for k := int64(0); k < maxReseeds; k++ {
		if b := Intn(seed+quoteBOffset+k, catalogSize); b != a {
			return a, b, nil
		}
	}
	return a, (a + 1) % catalogSize, nil
}
