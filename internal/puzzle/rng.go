// internal/puzzle/rng.go
//
// Seeded deterministic draws.
//
// Every random decision in a puzzle re-seeds explicitly and draws once, so
// the same decision can be recomputed from scratch on any instance without
// replaying the draws that came before it. There is no generator state.
//
// Seed layout used across the package (d = the day's seed):
//   d           → quote A, tile count, flip of position 0
//   d+i         → flip of position i (i < 10)
//   d+100+k     → quote B, k-th retry
//   d+1000+i    → display shuffle step i

package puzzle

import "math"

// Draw returns a pseudo-random value in [0,1) that depends only on seed.
func Draw(seed int64) float64 {
	x := math.Sin(float64(seed)) * 10000
	v := x - math.Floor(x)
	// x-floor(x) can round up to 1 for tiny negative x.
	if v >= 1 || v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// Intn returns a pseudo-random integer in [0,n) that depends only on seed.
// It returns 0 when n <= 0.
func Intn(seed int64, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(Draw(seed) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
