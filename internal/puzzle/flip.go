package puzzle

// Tile is one logical position of the puzzle.
type Tile struct {
	Position    int
	Top         string
	Bottom      string
	CorrectFlip bool
	ID          string
}

// flipThreshold splits top/bottom. Generation and validation both go through
// CorrectFlip, so the orientation below is the only place it is decided.
const flipThreshold = 0.5

// CorrectFlip reports the canonical flip of position: true when quote B's
// group sits in the top slot.
func CorrectFlip(seed int64, position int) bool {
	return Draw(seed+int64(position)) <= flipThreshold
}

// Assign lays out groupsA and groupsB (same length) into tiles. Quote A goes
// to the top slot unless the position's canonical flip says otherwise, and
// quote B takes the opposite slot.
func Assign(seed int64, groupsA, groupsB []string, h *Hasher) []Tile {
	tiles := make([]Tile, len(groupsA))
	for i := range tiles {
		t := &tiles[i]
		t.Position = i
		t.CorrectFlip = CorrectFlip(seed, i)
		t.ID = h.TileID(seed, i)
		place(t, !t.CorrectFlip, groupsA[i])
		if i < len(groupsB) {
			place(t, t.CorrectFlip, groupsB[i])
		}
	}
	return tiles
}

// place writes words into the preferred slot of t. An occupied slot sends the
// words to the other one; if both are taken they are appended to the
// preferred slot so nothing is dropped.
func place(t *Tile, top bool, words string) {
	if words == "" {
		return
	}
	pref, other := &t.Bottom, &t.Top
	if top {
		pref, other = &t.Top, &t.Bottom
	}
	switch {
	case *pref == "":
		*pref = words
	case *other == "":
		*other = words
	default:
		*pref += " " + words
	}
}
