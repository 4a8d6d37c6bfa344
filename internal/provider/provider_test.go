package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":             Beginner,
		"Beginner":     Beginner,
		"intermediate": Intermediate,
		" EXPERT ":     Expert,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("hall-of-fame"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestRanges(t *testing.T) {
	r := DefaultRanges()
	yr, err := r.For(Intermediate)
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if !yr.Contains(2000) || !yr.Contains(2024) || yr.Contains(1999) {
		t.Errorf("intermediate range = %+v", yr)
	}
	if _, err := r.For(Mode("Rookie")); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
	got := r.Modes()
	want := []Mode{Beginner, Intermediate, Expert}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Modes() = %v, want %v", got, want)
		}
	}
}

// fakeScript writes a shell script standing in for the statistics script.
func fakeScript(t *testing.T, body string) *Script {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stats.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatal(err)
	}
	return &Script{Bin: "/bin/sh", Path: path, Timeout: 5 * time.Second}
}

func TestScript_RandomGame(t *testing.T) {
	s := fakeScript(t, `
echo "warming up"
if [ "$1" = "random-game" ] && [ "$2" = "Expert" ]; then
  printf '%s\n' '{"gamePK": 7171, "boxscore": "line\nApril 15, 2021\n\n"}'
else
  printf '%s\n' '{"error": "Invalid command"}'
fi
`)
	g, err := s.RandomGame(context.Background(), Expert)
	if err != nil {
		t.Fatalf("RandomGame: %v", err)
	}
	if g.GamePK != 7171 || g.BoxScore != "line\nApril 15, 2021\n\n" {
		t.Errorf("got %+v", g)
	}
}

func TestScript_GameIDsAndErrors(t *testing.T) {
	s := fakeScript(t, `
case "$1 $2" in
  "game-ids Beginner") echo '{"game_ids": [1, 2, 3]}' ;;
  "game-ids Expert") echo '{"error": "No game IDs found in the database"}' ;;
  *) echo '{"error": "Invalid mode"}' ;;
esac
`)
	ids, err := s.GameIDs(context.Background(), Beginner)
	if err != nil || len(ids) != 3 {
		t.Fatalf("GameIDs = %v, %v", ids, err)
	}
	if _, err := s.GameIDs(context.Background(), Expert); !errors.Is(err, ErrNoGames) {
		t.Errorf("expected ErrNoGames, got %v", err)
	}
	if _, err := s.GameIDs(context.Background(), Mode("x")); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestScript_FailureModes(t *testing.T) {
	crash := fakeScript(t, "echo boom >&2\nexit 3\n")
	if _, err := crash.BoxScore(context.Background(), 1); err == nil {
		t.Error("expected error from failing script")
	}

	garbage := fakeScript(t, "echo not-json\n")
	if _, err := garbage.RandomGame(context.Background(), Beginner); err == nil {
		t.Error("expected decode error")
	}

	slow := fakeScript(t, "exec sleep 5\n")
	slow.Timeout = 100 * time.Millisecond
	if _, err := slow.RandomGame(context.Background(), Beginner); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
