package puzzle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = int64(20261015)

func TestDrawIsDeterministicAndInRange(t *testing.T) {
	for s := int64(-500); s < 20000; s += 7 {
		v := Draw(testSeed + s)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
		require.Equal(t, v, Draw(testSeed+s))
	}
}

func TestIntnRange(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10, 97} {
		for s := int64(0); s < 500; s++ {
			i := Intn(testSeed+s, n)
			require.GreaterOrEqual(t, i, 0)
			require.Less(t, i, n)
		}
	}
	assert.Equal(t, 0, Intn(testSeed, 0))
	assert.Equal(t, 0, Intn(testSeed, -4))
}

func TestSelectQuotes(t *testing.T) {
	t.Run("insufficient catalog", func(t *testing.T) {
		for _, n := range []int{-1, 0, 1} {
			_, _, err := SelectQuotes(testSeed, n)
			assert.ErrorIs(t, err, ErrInsufficientCatalog)
		}
	})

	t.Run("distinct and in range", func(t *testing.T) {
		for _, n := range []int{2, 3, 5, 40, 1000} {
			for d := int64(0); d < 366; d++ {
				a, b, err := SelectQuotes(testSeed+d, n)
				require.NoError(t, err)
				require.NotEqual(t, a, b)
				require.True(t, a >= 0 && a < n && b >= 0 && b < n)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		a1, b1, _ := SelectQuotes(testSeed, 40)
		a2, b2, _ := SelectQuotes(testSeed, 40)
		assert.Equal(t, a1, a2)
		assert.Equal(t, b1, b2)
		assert.Equal(t, Intn(testSeed, 40), a1)
	})
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Don't stop, BELIEVE!", "dont stop believe"},
		{"  Well   done\tis better.  ", "well done is better"},
		{"10,000 ways_to fail", "10000 ways_to fail"},
		{"Élan — vital", "élan vital"},
		{"...", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), tc.in)
	}
	assert.Equal(t, []string{"a", "b"}, Words("a b"))
	assert.Empty(t, Words(""))
}

func TestTileCountBounds(t *testing.T) {
	for la := 1; la <= 25; la++ {
		for lb := 1; lb <= 25; lb++ {
			limit := min(la, lb, maxTiles)
			lo := min(limit, minTiles)
			for d := int64(0); d < 30; d++ {
				n, err := TileCount(testSeed+d, la, lb)
				require.NoError(t, err)
				require.GreaterOrEqual(t, n, lo)
				require.LessOrEqual(t, n, limit)
			}
		}
	}
}

func TestTileCountMinEqualsCap(t *testing.T) {
	// "the quick fox jumps" (4) vs "a lazy dog sleeps now" (5): cap 4, min 4.
	for d := int64(0); d < 366; d++ {
		n, err := TileCount(testSeed+d, 4, 5)
		require.NoError(t, err)
		require.Equal(t, 4, n)
	}
}

func TestTileCountEmptyQuote(t *testing.T) {
	_, err := TileCount(testSeed, 0, 7)
	assert.ErrorIs(t, err, ErrEmptyQuote)
}

func TestDistributeReconstructsWords(t *testing.T) {
	for l := 1; l <= 40; l++ {
		words := make([]string, l)
		for i := range words {
			words[i] = "w" + strings.Repeat("x", i%3) + string(rune('a'+i%26))
		}
		for n := 1; n <= l; n++ {
			groups := Distribute(words, n)
			require.Len(t, groups, n)

			var rebuilt []string
			for i, g := range groups {
				size := len(strings.Fields(g))
				want := l / n
				if i < l%n {
					want++
				}
				require.Equal(t, want, size, "l=%d n=%d group=%d", l, n, i)
				rebuilt = append(rebuilt, strings.Fields(g)...)
			}
			require.Equal(t, words, rebuilt, "l=%d n=%d", l, n)
		}
	}
}

func TestDistributeShortList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, Distribute([]string{"a", "b"}, 3))
	assert.Nil(t, Distribute([]string{"a"}, 0))
}

func TestTileIDs(t *testing.T) {
	h := NewHasher("secret-one")

	t.Run("unique per position", func(t *testing.T) {
		for d := int64(0); d < 50; d++ {
			seen := map[string]int{}
			for i := 0; i < maxTiles; i++ {
				id := h.TileID(testSeed+d, i)
				require.Len(t, id, 2*tileIDBytes)
				prev, dup := seen[id]
				require.False(t, dup, "positions %d and %d collide", prev, i)
				seen[id] = i
			}
		}
	})

	t.Run("deterministic and secret dependent", func(t *testing.T) {
		assert.Equal(t, h.TileID(testSeed, 3), NewHasher("secret-one").TileID(testSeed, 3))
		assert.NotEqual(t, h.TileID(testSeed, 3), NewHasher("secret-two").TileID(testSeed, 3))
		assert.NotEqual(t, h.TileID(testSeed, 3), h.TileID(testSeed+1, 3))
	})

	t.Run("verify", func(t *testing.T) {
		id := h.TileID(testSeed, 2)
		assert.True(t, h.Verify(id, testSeed, 2))
		assert.False(t, h.Verify(id, testSeed, 3))
		assert.False(t, h.Verify("not-hex", testSeed, 2))
		assert.False(t, h.Verify("", testSeed, 2))
	})
}

func TestPlaceOverflow(t *testing.T) {
	var tile Tile
	place(&tile, true, "alpha")
	assert.Equal(t, "alpha", tile.Top)

	place(&tile, true, "beta")
	assert.Equal(t, "alpha", tile.Top)
	assert.Equal(t, "beta", tile.Bottom, "occupied top overflows to bottom")

	place(&tile, false, "gamma")
	assert.Equal(t, "beta gamma", tile.Bottom, "both taken: appended to preferred slot")

	place(&tile, true, "")
	assert.Equal(t, "alpha", tile.Top)
}

func TestAssignFollowsCanonicalFlip(t *testing.T) {
	h := NewHasher("s")
	groupsA := []string{"a0", "a1", "a2", "a3", "a4", "a5"}
	groupsB := []string{"b0", "b1", "b2", "b3", "b4", "b5"}

	tiles := Assign(testSeed, groupsA, groupsB, h)
	again := Assign(testSeed, groupsA, groupsB, h)
	require.Equal(t, tiles, again)

	for i, tile := range tiles {
		assert.Equal(t, i, tile.Position)
		assert.Equal(t, h.TileID(testSeed, i), tile.ID)
		assert.Equal(t, CorrectFlip(testSeed, i), tile.CorrectFlip)
		if tile.CorrectFlip {
			assert.Equal(t, groupsB[i], tile.Top)
			assert.Equal(t, groupsA[i], tile.Bottom)
		} else {
			assert.Equal(t, groupsA[i], tile.Top)
			assert.Equal(t, groupsB[i], tile.Bottom)
		}
	}
}

func TestCorrectFlipThreshold(t *testing.T) {
	for i := 0; i < maxTiles; i++ {
		assert.Equal(t, Draw(testSeed+int64(i)) <= 0.5, CorrectFlip(testSeed, i))
	}
}
