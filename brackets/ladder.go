package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/padel-tournament/models"
)

// LadderGenerator builds the UPDOWN format: round 1 is drawn at random, later rounds
// are derived from results, winners moving one court up and losers one court down.
type LadderGenerator struct {
	shuffler Shuffler
}

func NewLadderGenerator(shuffler Shuffler) BracketGenerator {
	return &LadderGenerator{shuffler: shuffler}
}

func (g *LadderGenerator) GetName() string {
	return "UpDown"
}

func (g *LadderGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]models.Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return GenerateLadder(pairNames(params.Pairs), params.ExpectedPairs, params.Courts, g.shuffler)
}

func validateLadder(pairs []string, expected int, courts []string) error {
	if expected <= 0 || len(pairs) != expected {
		return fmt.Errorf("ladder expects %d pairs, got %d: %w", expected, len(pairs), ErrSizeMismatch)
	}
	if len(pairs)%2 != 0 {
		return fmt.Errorf("ladder needs an even number of pairs, got %d: %w", len(pairs), ErrInvalidInput)
	}
	if len(courts)*2 != len(pairs) {
		return fmt.Errorf("%d courts for %d pairs: %w", len(courts), len(pairs), ErrWrongCourtCount)
	}
	return nil
}

func drawFirstRound(pairs, courts []string, shuffler Shuffler) models.MatchList {
	ordered := models.OrderCourtsDesc(courts)
	names := shuffleStrings(shuffler, pairs)
	games := make(models.MatchList, 0, len(ordered))
	for i, court := range ordered {
		games = append(games, &models.LadderMatch{
			MatchBase: models.MatchBase{
				Round: 1,
				TeamA: names[2*i],
				TeamB: names[2*i+1],
				Court: court,
			},
		})
	}
	return games
}

// GenerateLadder returns the five ladder rounds with only round 1 filled in.
func GenerateLadder(pairs []string, expected int, courts []string, shuffler Shuffler) ([]models.Round, error) {
	if err := validateLadder(pairs, expected, courts); err != nil {
		return nil, err
	}
	rounds := make([]models.Round, 0, models.TotalRounds)
	rounds = append(rounds, models.Round{Number: 1, Matches: drawFirstRound(pairs, courts, shuffler)})
	for n := 2; n <= models.TotalRounds; n++ {
		rounds = append(rounds, models.Round{Number: n, Matches: models.MatchList{}})
	}
	return rounds, nil
}

// RegenerateFirstRound draws round 1 again. Only allowed before any result and
// before later rounds exist; later rounds are emptied.
func RegenerateFirstRound(t *models.Tournament, shuffler Shuffler) error {
	r1 := t.Round(1)
	if r1 == nil {
		return fmt.Errorf("round 1: %w", ErrRoundNotFound)
	}
	for _, m := range r1.Matches {
		if !m.Base().Score.IsBlank() {
			return fmt.Errorf("round 1: %w", ErrRoundAlreadyScored)
		}
	}
	for n := 2; n <= models.TotalRounds; n++ {
		if r := t.Round(n); r != nil && len(r.Matches) > 0 {
			return fmt.Errorf("round %d: %w", n, ErrLaterRoundsExist)
		}
	}
	names := t.PairNames()
	if err := validateLadder(names, t.ExpectedPairs, t.Courts); err != nil {
		return err
	}

	r1.Matches = drawFirstRound(names, t.Courts, shuffler)
	for n := 2; n <= models.TotalRounds; n++ {
		if r := t.Round(n); r != nil {
			r.Matches = models.MatchList{}
		}
	}
	t.RebuildMatches()
	return nil
}

// AdvanceLadder builds round current+1 from the results of round current.
func AdvanceLadder(rounds []models.Round, current int, courts []string) (models.Round, error) {
	next := current + 1
	if next > models.TotalRounds {
		return models.Round{}, fmt.Errorf("no round after %d: %w", current, ErrInvalidInput)
	}
	var games models.MatchList
	found := false
	for _, r := range rounds {
		if r.Number == current {
			games, found = r.Matches, true
			break
		}
	}
	if !found {
		return models.Round{}, fmt.Errorf("round %d: %w", current, ErrRoundNotFound)
	}

	ordered := models.OrderCourtsDesc(courts)
	if len(ordered) == 0 {
		return models.Round{}, fmt.Errorf("ladder without courts: %w", ErrInvalidLadderState)
	}
	courtIdx := make(map[string]int, len(ordered))
	for i, c := range ordered {
		courtIdx[c] = i
	}
	last := len(ordered) - 1

	type outcome struct {
		idx           int
		winner, loser string
	}
	results := make([]outcome, 0, len(games))
	for _, m := range games {
		b := m.Base()
		winner, loser, ok := b.Winner()
		if !ok {
			return models.Round{}, fmt.Errorf("round %d, %s vs %s: %w", current, b.TeamA, b.TeamB, ErrIndecisiveResult)
		}
		idx, ok := courtIdx[b.Court]
		if !ok {
			return models.Round{}, fmt.Errorf("court %q is not in use: %w", b.Court, ErrInvalidLadderState)
		}
		results = append(results, outcome{idx: idx, winner: winner, loser: loser})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].idx < results[j].idx })

	dest := make([][]string, len(ordered))
	for _, r := range results {
		up := r.idx - 1
		if up < 0 {
			up = 0
		}
		down := r.idx + 1
		if down > last {
			down = last
		}
		dest[up] = append(dest[up], r.winner)
		dest[down] = append(dest[down], r.loser)
	}

	out := make(models.MatchList, 0, len(ordered))
	for i, court := range ordered {
		if len(dest[i]) != 2 {
			return models.Round{}, fmt.Errorf("court %s would host %d pairs: %w", court, len(dest[i]), ErrInvalidLadderState)
		}
		out = append(out, &models.LadderMatch{
			MatchBase: models.MatchBase{
				Round: next,
				TeamA: dest[i][0],
				TeamB: dest[i][1],
				Court: court,
			},
		})
	}
	return models.Round{Number: next, Matches: out}, nil
}
