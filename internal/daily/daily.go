// Package daily maps wall-clock time onto puzzle days.
//
// A puzzle day runs from local midnight to local midnight in the configured
// location. Its seed is the date written as the integer YYYYMMDD.
package daily

import "time"

// Clock returns the current time.
type Clock func() time.Time

// DateKey returns YYYY-MM-DD in t's location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Seed returns the day's seed, e.g. 20261015, in t's location.
func Seed(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}

// NextMidnight returns the start of the day after t, in t's location.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// ParseDate parses YYYY-MM-DD in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
