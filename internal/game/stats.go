package game

import "fmt"

// Stats accumulates results for one player session.
// Invariant: Wins + Losses == GamesPlayed.
type Stats struct {
	GamesPlayed   int   `json:"gamesPlayed"`
	Wins          int   `json:"wins"`
	Losses        int   `json:"losses"`
	Streak        int   `json:"streak"`
	TotalGuesses  int   `json:"totalGuesses"`
	GuessesPerWin []int `json:"guessesPerWin"`
}

// Record folds a finished round into the aggregate and marks the round as
// recorded, so a second call for the same round fails instead of
// double-counting.
func (s *Stats) Record(r *Round) error {
	if !r.status.Ended() {
		return fmt.Errorf("%w: round %s is %s", ErrRoundNotEnded, r.id, r.status)
	}
	if r.recorded {
		return fmt.Errorf("%w: round %s", ErrOutcomeRecorded, r.id)
	}

	n := len(r.guesses)
	s.GamesPlayed++
	s.TotalGuesses += n
	if r.status == StatusWon {
		s.Wins++
		s.Streak++
		s.GuessesPerWin = append(s.GuessesPerWin, n)
	} else {
		s.Losses++
		s.Streak = 0
	}
	r.recorded = true
	return nil
}

// AverageGuessesPerWin is the mean guess count over won rounds (0 with no wins).
func (s Stats) AverageGuessesPerWin() float64 {
	if len(s.GuessesPerWin) == 0 {
		return 0
	}
	sum := 0
	for _, n := range s.GuessesPerWin {
		sum += n
	}
	return float64(sum) / float64(len(s.GuessesPerWin))
}

// WinRate is Wins/GamesPlayed, or 0 before any round completes.
func (s Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed)
}

// Distribution counts wins by the guess they were won on; index 0 is the
// first guess.
func (s Stats) Distribution() [MaxGuesses]int {
	var out [MaxGuesses]int
	for _, n := range s.GuessesPerWin {
		if n >= 1 && n <= MaxGuesses {
			out[n-1]++
		}
	}
	return out
}

// Snapshot returns a deep copy.
func (s Stats) Snapshot() Stats {
	c := s
	c.GuessesPerWin = append([]int(nil), s.GuessesPerWin...)
	if c.GuessesPerWin == nil {
		c.GuessesPerWin = []int{}
	}
	return c
}
