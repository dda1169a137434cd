package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsYYYYMMDDInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 2026-10-15 20:00 UTC is already the 16th at UTC+10.
	ts := time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(20261015), Seed(ts))
	assert.Equal(t, int64(20261016), Seed(ts.In(loc)))
}

func TestSeedConstantWithinDay(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24; h++ {
		assert.Equal(t, int64(20260131), Seed(start.Add(time.Duration(h)*time.Hour+59*time.Minute)))
	}
}

func TestNextMidnight(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid day", time.Date(2026, 10, 15, 13, 4, 5, 0, time.UTC), time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"exact midnight", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)},
		{"year end", time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.want.Equal(NextMidnight(tc.in)), "got %s", NextMidnight(tc.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, int64(20261015), Seed(d))
	assert.Equal(t, "2026-10-15", DateKey(d))

	_, err = ParseDate("15/10/2026", time.UTC)
	assert.Error(t, err)
}
