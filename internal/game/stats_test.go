package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/quotetiles/internal/store"
)

func TestAggregate(t *testing.T) {
	sessions := []store.Session{
		{ID: "a", Solved: true, GuessNumber: 1},
		{ID: "b", Solved: true, GuessNumber: 2},
		{ID: "c", Solved: false, GuessNumber: 3},
		{ID: "d", Solved: false, GuessNumber: 1},
	}
	st := Aggregate(sessions, DefaultMaxGuesses)
	assert.Equal(t, Stats{SolvedIn1: 1, SolvedIn2: 1, SolvedIn3: 0, Failed: 1, Total: 4}, st)
	assert.Equal(t, 2, st.Solved())

	assert.Equal(t, Stats{}, Aggregate(nil, DefaultMaxGuesses))
}

func TestStateOf(t *testing.T) {
	cases := []struct {
		sess store.Session
		want State
	}{
		{store.Session{}, StateNew},
		{store.Session{GuessNumber: 2}, StateActive},
		{store.Session{GuessNumber: 3}, StateExhausted},
		{store.Session{GuessNumber: 3, Solved: true}, StateSolved},
		{store.Session{GuessNumber: 1, Solved: true}, StateSolved},
	}
	for _, tc := range cases {
		got := StateOf(&tc.sess, DefaultMaxGuesses)
		assert.Equal(t, tc.want, got, "%+v", tc.sess)
	}
	assert.True(t, StateSolved.Finished())
	assert.True(t, StateExhausted.Finished())
	assert.False(t, StateActive.Finished())
	assert.False(t, StateNew.Finished())
}
