package session

import (
	"errors"
	"testing"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/game"
	"github.com/robalobadob/mlbwordle/apps/go-server/internal/provider"
)

func newRound(t *testing.T) *game.Round {
	t.Helper()
	d, err := game.NewDate(2021, 4, 15)
	if err != nil {
		t.Fatal(err)
	}
	r, err := game.StartRound(d)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

var (
	hit  = game.Guess{Month: 4, Day: 15, Year: 2021}
	miss = game.Guess{Month: 1, Day: 1, Year: 2000}
)

func TestGuess_NoRound(t *testing.T) {
	s := New("s1", provider.Beginner)
	if _, err := s.Guess(hit); !errors.Is(err, ErrNoRound) {
		t.Fatalf("expected ErrNoRound, got %v", err)
	}
	if _, err := s.View(); !errors.Is(err, ErrNoRound) {
		t.Fatalf("expected ErrNoRound from View, got %v", err)
	}
}

func TestGuess_WinRecordsOnce(t *testing.T) {
	s := New("s1", provider.Beginner)
	s.Begin(newRound(t), 632169, "redacted", "")

	out, err := s.Guess(miss)
	if err != nil || out.Recorded || out.Answer != "" || out.GamePK != 0 || out.Remaining != 4 {
		t.Fatalf("first guess: %+v, %v", out, err)
	}
	out, err = s.Guess(hit)
	if err != nil {
		t.Fatalf("winning guess: %v", err)
	}
	if !out.Recorded || out.Answer != "04-15-2021" || out.GamePK != 632169 || out.Feedback.Status != game.StatusWon {
		t.Fatalf("winning guess outcome: %+v", out)
	}

	if _, err := s.Guess(hit); !errors.Is(err, game.ErrRoundEnded) {
		t.Fatalf("expected ErrRoundEnded, got %v", err)
	}
	st := s.Stats()
	if st.GamesPlayed != 1 || st.Wins != 1 || st.TotalGuesses != 2 || st.Streak != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestGuess_LossRecorded(t *testing.T) {
	s := New("s1", provider.Expert)
	s.Begin(newRound(t), 1, "x", "")
	var out Outcome
	for i := 0; i < game.MaxGuesses; i++ {
		var err error
		out, err = s.Guess(miss)
		if err != nil {
			t.Fatal(err)
		}
	}
	if out.Feedback.Status != game.StatusLost || !out.Recorded || out.Answer == "" {
		t.Fatalf("outcome = %+v", out)
	}
	st := s.Stats()
	if st.Losses != 1 || st.Streak != 0 || st.TotalGuesses != game.MaxGuesses {
		t.Errorf("stats = %+v", st)
	}
}

func TestSwitchMode_DiscardsWithoutRecording(t *testing.T) {
	s := New("s1", provider.Beginner)
	s.Begin(newRound(t), 1, "x", "")
	_, _ = s.Guess(miss)

	s.SwitchMode(provider.Expert)
	if s.Mode() != provider.Expert {
		t.Errorf("mode = %s", s.Mode())
	}
	if _, err := s.View(); !errors.Is(err, ErrNoRound) {
		t.Errorf("round survived mode switch")
	}
	if st := s.Stats(); st.GamesPlayed != 0 {
		t.Errorf("abandoned round was recorded: %+v", st)
	}
}

func TestBegin_ReplacesUnfinishedRound(t *testing.T) {
	s := New("s1", provider.Beginner)
	s.Begin(newRound(t), 1, "x", "")
	_, _ = s.Guess(miss)
	s.Begin(newRound(t), 2, "y", "2021-04-15|Beginner")

	v, err := s.View()
	if err != nil {
		t.Fatal(err)
	}
	if v.GamePK != 2 || len(v.Guesses) != 0 || !v.Daily || v.BoxScore != "y" {
		t.Errorf("view = %+v", v)
	}
	if s.Stats().GamesPlayed != 0 {
		t.Error("replaced round was recorded")
	}
}

func TestView_ReplaysFeedback(t *testing.T) {
	s := New("s1", provider.Beginner)
	s.Begin(newRound(t), 1, "x", "")
	_, _ = s.Guess(game.Guess{Month: 5, Day: 16, Year: 2021})

	v, _ := s.View()
	if len(v.Guesses) != 1 {
		t.Fatalf("guesses = %d", len(v.Guesses))
	}
	fb := v.Guesses[0].Feedback
	if fb.Month != game.Close || fb.Day != game.VeryClose || fb.Year != game.Correct {
		t.Errorf("feedback = %+v", fb)
	}
	if v.Answer != "" {
		t.Error("answer leaked before round ended")
	}
}

func TestDailyPlayed_KeptAfterFinish(t *testing.T) {
	const key = "2025-06-01|Beginner"
	s := New("s1", provider.Beginner)
	s.Begin(newRound(t), 7, "x", key)
	if _, ok := s.DailyPlayed(key); ok {
		t.Fatal("unfinished daily reported as played")
	}
	_, _ = s.Guess(hit)

	// the finished daily survives the player moving on
	s.Begin(newRound(t), 8, "y", "")
	v, ok := s.DailyPlayed(key)
	if !ok || v.GamePK != 7 || v.Status != game.StatusWon || v.Answer != "04-15-2021" || len(v.Guesses) != 1 {
		t.Fatalf("DailyPlayed = %+v, %v", v, ok)
	}
	if _, ok := s.DailyPlayed("2025-06-02|Beginner"); ok {
		t.Error("other day reported as played")
	}
	if cur, _ := s.View(); cur.Daily || cur.DailyKey != "" {
		t.Errorf("ordinary round marked daily: %+v", cur)
	}
}
