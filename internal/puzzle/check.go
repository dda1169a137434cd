package puzzle

// Placement is one submitted tile, in the order the player arranged them.
type Placement struct {
	TileID  string
	Flipped bool
}

// Verdict is the result of checking a submission against a recomputed puzzle.
type Verdict struct {
	// Order[i] is true when the tile at index i belongs at logical position i.
	Order []bool
	// Inverted[i] is true when the flip at index i differs from canonical.
	Inverted []bool
	// Correct holds when every Order entry is true and the flips are either
	// all canonical or all inverted.
	Correct bool
	// Mirrored is set when the flips were all inverted: quote B reads on top.
	Mirrored bool
}

// Check compares a submission with the canonical tiles of seed. It needs
// only the tile count; ids and flips are recomputed from (seed, index).
func (e *Engine) Check(seed int64, tileCount int, sub []Placement) Verdict {
	v := Verdict{Order: make([]bool, len(sub)), Inverted: make([]bool, len(sub))}
	orderOK := len(sub) == tileCount
	allCanonical, allInverted := true, true
	for i, pl := range sub {
		v.Order[i] = i < tileCount && e.hasher.Verify(pl.TileID, seed, i)
		orderOK = orderOK && v.Order[i]

		v.Inverted[i] = pl.Flipped != CorrectFlip(seed, i)
		allCanonical = allCanonical && !v.Inverted[i]
		allInverted = allInverted && v.Inverted[i]
	}
	flipOK := allCanonical || allInverted
	v.Correct = orderOK && flipOK && len(sub) > 0
	v.Mirrored = v.Correct && !allCanonical
	return v
}
