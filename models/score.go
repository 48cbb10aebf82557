package models

import (
	"strconv"
	"strings"
)

// Score is the textual result of a match, "<games A>-<games B>".
type Score string

// Outcome is what a score means for the two teams of a match.
type Outcome int

const (
	Unplayed Outcome = iota
	WinA
	WinB
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WinA:
		return "win_a"
	case WinB:
		return "win_b"
	case Draw:
		return "draw"
	default:
		return "unplayed"
	}
}

// Games parses the score. ok is false for an empty or malformed score.
func (s Score) Games() (a, b int, ok bool) {
	raw := strings.TrimSpace(string(s))
	if raw == "" {
		return 0, 0, false
	}
	left, right, found := strings.Cut(raw, "-")
	if !found {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(strings.TrimSpace(left))
	b, errB := strconv.Atoi(strings.TrimSpace(right))
	if errA != nil || errB != nil || a < 0 || b < 0 {
		return 0, 0, false
	}
	return a, b, true
}

func (s Score) Outcome() Outcome {
	a, b, ok := s.Games()
	switch {
	case !ok:
		return Unplayed
	case a > b:
		return WinA
	case b > a:
		return WinB
	default:
		return Draw
	}
}

func (s Score) Played() bool {
	return s.Outcome() != Unplayed
}

// Decisive reports whether the score names a winner.
func (s Score) Decisive() bool {
	o := s.Outcome()
	return o == WinA || o == WinB
}

// IsBlank reports whether no score has been entered at all.
func (s Score) IsBlank() bool {
	return strings.TrimSpace(string(s)) == ""
}
