package game

import "github.com/robalobadob/quotetiles/internal/store"

// Aggregate folds sessions into outcome buckets. A session is failed only
// when unsolved with every guess used; unfinished sessions count toward
// Total alone, as do solved ones with a count outside 1..3.
func Aggregate(sessions []store.Session, maxGuesses int) Stats {
	var st Stats
	for _, s := range sessions {
		st.Total++
		switch {
		case s.Solved && s.GuessNumber == 1:
			st.SolvedIn1++
		case s.Solved && s.GuessNumber == 2:
			st.SolvedIn2++
		case s.Solved && s.GuessNumber == 3:
			st.SolvedIn3++
		case !s.Solved && s.GuessNumber >= maxGuesses:
			st.Failed++
		}
	}
	return st
}
