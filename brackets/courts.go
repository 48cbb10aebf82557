package brackets

import "fmt"

// CourtGame is a pairing placed on a court.
type CourtGame struct {
	Pairing
	Court string
}

// AssignCourts shuffles the games of a round and gives game i the court i.
func AssignCourts(games []Pairing, courts []string, shuffler Shuffler) ([]CourtGame, error) {
	if len(games) > len(courts) {
		return nil, fmt.Errorf("%d games for %d courts: %w", len(games), len(courts), ErrMissingCourts)
	}
	order := append([]Pairing(nil), games...)
	shuffler.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	out := make([]CourtGame, 0, len(order))
	for i, g := range order {
		out = append(out, CourtGame{Pairing: g, Court: courts[i]})
	}
	return out, nil
}
