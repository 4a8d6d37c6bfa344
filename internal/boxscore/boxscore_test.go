package boxscore

import (
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/mlbwordle/apps/go-server/internal/game"
)

const sample = `----------------------------------------------------------------
Yankees (9-3)                      |  Orioles (5-7)
----------------------------------------------------------------
Batters                  AB R H RBI|Batters              AB R H RBI
Judge, A RF               4 2 2  3 |Mullins, C CF         4 0 1  0
----------------------------------------------------------------
T: 3:02.
Att: 11,000.
Venue: Oriole Park at Camden Yards.
April 15, 2021

`

func TestExtractDate(t *testing.T) {
	d, err := ExtractDate(sample)
	if err != nil {
		t.Fatalf("ExtractDate: %v", err)
	}
	if d.String() != "04-15-2021" {
		t.Errorf("got %s", d)
	}
}

func TestExtractDate_Layouts(t *testing.T) {
	for _, line := range []string{
		"April 15, 2021",
		"Apr 15, 2021",
		"Thursday, April 15, 2021",
		"2021-04-15",
		"04/15/2021",
		"4/15/2021",
		"04-15-2021",
	} {
		text := "header\n" + line + "\n\n"
		d, err := ExtractDate(text)
		if err != nil {
			t.Errorf("%q: %v", line, err)
			continue
		}
		if d.Year() != 2021 || d.Month() != 4 || d.Day() != 15 {
			t.Errorf("%q: got %s", line, d)
		}
	}
}

func TestExtractDate_Failures(t *testing.T) {
	if _, err := ExtractDate("x\n"); !errors.Is(err, ErrNoDate) {
		t.Errorf("short text: expected ErrNoDate, got %v", err)
	}
	if _, err := ExtractDate("a\n\n\n"); !errors.Is(err, ErrNoDate) {
		t.Errorf("blank line: expected ErrNoDate, got %v", err)
	}
	if _, err := ExtractDate("a\nWeather: 60 degrees\n\n"); !errors.Is(err, game.ErrInvalidDate) {
		t.Errorf("garbage: expected ErrInvalidDate, got %v", err)
	}
}

func TestRedact(t *testing.T) {
	out := Redact(sample)
	if strings.Contains(out, "2021") {
		t.Errorf("date leaked:\n%s", out)
	}
	if !strings.HasSuffix(out, "Venue: Oriole Park at Camden Yards.\n"+Mask) {
		t.Errorf("unexpected tail:\n%s", out)
	}
	if !strings.HasPrefix(out, "------") {
		t.Errorf("header dropped:\n%s", out)
	}
	if Redact("short") != Mask {
		t.Errorf("short text should redact to mask only")
	}
}
