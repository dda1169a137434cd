package puzzle

import (
	"crypto/hmac"
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/sha3"
)

// tileIDBytes is how much of the digest is kept in a tile id.
const tileIDBytes = 16

// TileIDLen is the length of an encoded tile id.
const TileIDLen = 2 * tileIDBytes

// Hasher derives opaque tile ids from (seed, position) keyed by a secret.
//
// Ids encode the logical position a tile belongs to, never its content.
// Rotating the secret invalidates every id issued before.
type Hasher struct {
	key []byte
}

// NewHasher returns a Hasher keyed by secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{key: []byte(secret)}
}

// TileID returns the id of the tile at position for the given seed,
// computed as HMAC-SHA3-256(secret, "seed:position").
func (h *Hasher) TileID(seed int64, position int) string {
	return hex.EncodeToString(h.sum(seed, position))
}

// Verify reports whether id is the tile id of position for seed.
func (h *Hasher) Verify(id string, seed int64, position int) bool {
	raw, err := hex.DecodeString(id)
	if err != nil {
		return false
	}
	return hmac.Equal(raw, h.sum(seed, position))
}

func (h *Hasher) sum(seed int64, position int) []byte {
	mac := hmac.New(sha3.New256, h.key)
	mac.Write([]byte(strconv.FormatInt(seed, 10) + ":" + strconv.Itoa(position)))
	return mac.Sum(nil)[:tileIDBytes]
}
