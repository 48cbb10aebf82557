package models

import "sort"

// AllCourts lists the club courts from the highest to the lowest precedence.
var AllCourts = []string{
	"Campo Central",
	"Campo 11",
	"Campo 10",
	"Campo 9",
	"Campo 8",
	"Campo 7",
	"Campo 6",
	"Campo 5",
	"Campo 4",
	"Campo 3",
	"Campo 2",
	"Campo 1",
}

const unknownCourtRank = 9999

var courtRank = func() map[string]int {
	m := make(map[string]int, len(AllCourts))
	for i, c := range AllCourts {
		m[c] = i
	}
	return m
}()

// CourtRank returns the precedence index of a court; lower is better.
func CourtRank(court string) int {
	if r, ok := courtRank[court]; ok {
		return r
	}
	return unknownCourtRank
}

func IsKnownCourt(court string) bool {
	_, ok := courtRank[court]
	return ok
}

// OrderCourtsDesc returns a copy of courts ordered by precedence.
// Unknown courts keep their relative order after the known ones.
func OrderCourtsDesc(courts []string) []string {
	out := make([]string, len(courts))
	copy(out, courts)
	sort.SliceStable(out, func(i, j int) bool {
		return CourtRank(out[i]) < CourtRank(out[j])
	})
	return out
}

// DefaultCourts returns the n best courts of the club.
func DefaultCourts(n int) []string {
	if n > len(AllCourts) {
		n = len(AllCourts)
	}
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	copy(out, AllCourts[:n])
	return out
}
