package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

// Pairing is a game between two seed indices.
type Pairing struct {
	A int
	B int
}

// RoundRobinPairs builds a single round robin over n teams with the circle method.
// Index 0 stays fixed; every other index rotates one step per round.
func RoundRobinPairs(n int) ([][]Pairing, error) {
	if n <= 0 || n%2 != 0 {
		return nil, fmt.Errorf("round robin over %d teams: %w", n, ErrInvalidInput)
	}

	teams := make([]int, n)
	for i := range teams {
		teams[i] = i
	}

	rounds := make([][]Pairing, 0, n-1)
	for r := 0; r < n-1; r++ {
		left := teams[:n/2]
		right := teams[n/2:]
		games := make([]Pairing, 0, n/2)
		for i := 0; i < n/2; i++ {
			games = append(games, Pairing{A: left[i], B: right[n/2-1-i]})
		}
		rounds = append(rounds, games)

		next := make([]int, 0, n)
		next = append(next, teams[0], teams[n-1])
		next = append(next, teams[1:n-1]...)
		teams = next
	}
	return rounds, nil
}

// RoundRobinGenerator builds the LIGA6 calendar: every pair plays every other once.
type RoundRobinGenerator struct {
	shuffler Shuffler
}

func NewRoundRobinGenerator(shuffler Shuffler) BracketGenerator {
	return &RoundRobinGenerator{shuffler: shuffler}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]models.Round, error) {
	names := pairNames(params.Pairs)
	if len(names) < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: not enough pairs (found %d, min 2 required): %w", len(names), ErrInvalidInput)
	}

	schedule, err := RoundRobinPairs(len(names))
	if err != nil {
		return nil, err
	}

	rounds := make([]models.Round, 0, len(schedule))
	for i, games := range schedule {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		roundNo := i + 1
		assigned, err := AssignCourts(games, params.Courts, g.shuffler)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", roundNo, err)
		}
		matches := make(models.MatchList, 0, len(assigned))
		for _, a := range assigned {
			matches = append(matches, &models.GroupMatch{
				MatchBase: models.MatchBase{
					Round: roundNo,
					TeamA: names[a.A],
					TeamB: names[a.B],
					Court: a.Court,
				},
			})
		}
		rounds = append(rounds, models.Round{Number: roundNo, Matches: matches})
	}
	return rounds, nil
}

func pairNames(pairs []models.Pair) []string {
	names := make([]string, 0, len(pairs))
	for _, p := range pairs {
		names = append(names, p.Name)
	}
	return names
}
