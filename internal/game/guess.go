package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseGuess converts the three form fields into a Guess.
// Month and day take one or two digits, year exactly four. Calendar
// validity is not checked.
func ParseGuess(month, day, year string) (Guess, error) {
	m, err := parseField("month", month, 1, 2)
	if err != nil {
		return Guess{}, err
	}
	d, err := parseField("day", day, 1, 2)
	if err != nil {
		return Guess{}, err
	}
	y, err := parseField("year", year, 4, 4)
	if err != nil {
		return Guess{}, err
	}
	return Guess{Month: m, Day: d, Year: y}, nil
}

func parseField(name, s string, minLen, maxLen int) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) < minLen || len(s) > maxLen || !isDigits(s) {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedGuess, name, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedGuess, name, s)
	}
	return n, nil
}

// isDigits checks that a string consists only of ASCII 0–9.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
