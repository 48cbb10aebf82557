package brackets

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Dosada05/padel-tournament/models"
)

const (
	CrossoverRound = MaxGroupRound + 1
	PlacementRound = MaxGroupRound + 2
)

const unknownCourt = "Campo ?"

// WinnerPlaceholder names the undecided winner of a game.
func WinnerPlaceholder(label string) string { return "Vencedor " + label }

// LoserPlaceholder names the undecided loser of a game.
func LoserPlaceholder(label string) string { return "Perdedor " + label }

var placeholderShape = regexp.MustCompile(fmt.Sprintf(
	`^(?:Vencedor|Perdedor) (?:R%d-\d+|\d+º e \d+º lugar|.+ vs .+)$`, CrossoverRound))

// IsPlaceholder reports whether team is one of the names WinnerPlaceholder and
// LoserPlaceholder produce for a crossover game, a placement game or a ladder game.
func IsPlaceholder(team string) bool {
	return placeholderShape.MatchString(team)
}

// PlacementLabel returns the label of the game deciding positions pos and pos+1.
func PlacementLabel(pos int) string {
	return fmt.Sprintf("%dº e %dº lugar", pos, pos+1)
}

// BuildCrossoverRounds derives round 4 (crossovers) and round 5 (placement games)
// from the group tables. Round 5 starts with placeholders for round 4 results.
func BuildCrossoverRounds(tables map[string][]models.StandingRow, courts []string) ([]models.Round, error) {
	if len(tables) == 0 {
		return nil, ErrNoGroups
	}
	if len(courts) == 0 {
		return nil, fmt.Errorf("crossovers: %w", ErrMissingCourts)
	}

	groups := make([]string, 0, len(tables))
	for g := range tables {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	if n := len(groups); n < 2 || n > 4 {
		return nil, fmt.Errorf("%d groups: %w", n, ErrUnsupportedGroupCount)
	}

	pos := make(map[string][]models.StandingRow, len(groups))
	for _, g := range groups {
		rows := append([]models.StandingRow(nil), tables[g]...)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
		if len(rows) < 4 {
			return nil, fmt.Errorf("group %s has %d pairs, need 4: %w", g, len(rows), ErrSizeMismatch)
		}
		pos[g] = rows
	}

	team := func(g string, p int) string { return pos[g][p-1].Team }
	sameRank := func(p int) []string {
		rows := make([]models.StandingRow, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, pos[g][p-1])
		}
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Points != rows[j].Points {
				return rows[i].Points > rows[j].Points
			}
			if rows[i].Diff != rows[j].Diff {
				return rows[i].Diff > rows[j].Diff
			}
			return rows[i].Team < rows[j].Team
		})
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Team)
		}
		return out
	}

	var pairs [][2]string
	switch len(groups) {
	case 2:
		a, b := groups[0], groups[1]
		pairs = [][2]string{
			{team(a, 1), team(b, 2)},
			{team(b, 1), team(a, 2)},
			{team(a, 3), team(b, 4)},
			{team(b, 3), team(a, 4)},
		}
	case 3:
		a, b, c := groups[0], groups[1], groups[2]
		seconds := sameRank(2)
		thirds := sameRank(3)
		fourths := sameRank(4)
		pairs = [][2]string{
			{team(a, 1), seconds[0]},
			{team(b, 1), team(c, 1)},
			{seconds[1], thirds[1]},
			{seconds[2], thirds[0]},
			{thirds[2], fourths[0]},
			{fourths[1], fourths[2]},
		}
	case 4:
		a, b, c, d := groups[0], groups[1], groups[2], groups[3]
		for p := 1; p <= 4; p++ {
			pairs = append(pairs,
				[2]string{team(a, p), team(d, p)},
				[2]string{team(b, p), team(c, p)},
			)
		}
	}

	round4 := make(models.MatchList, 0, len(pairs))
	for i, p := range pairs {
		round4 = append(round4, &models.FinalsMatch{
			MatchBase: models.MatchBase{
				Round: CrossoverRound,
				TeamA: p[0],
				TeamB: p[1],
				Court: courts[i%len(courts)],
			},
		})
	}

	return []models.Round{
		{Number: CrossoverRound, Matches: round4},
		{Number: PlacementRound, Matches: BuildPlacementRound(round4, courts)},
	}, nil
}

// BuildPlacementRound pairs round 4 winners and losers block by block: games 2k and
// 2k+1 decide positions 4k+1..4k+4. Undecided games leave placeholders.
func BuildPlacementRound(round4 models.MatchList, courts []string) models.MatchList {
	if len(courts) == 0 {
		courts = []string{unknownCourt}
	}
	out := make(models.MatchList, 0, len(round4))
	courtIdx := 0
	nextCourt := func() string {
		c := courts[courtIdx%len(courts)]
		courtIdx++
		return c
	}
	for i := 0; i+1 < len(round4); i += 2 {
		w1, l1 := decideOrPlaceholder(round4[i], fmt.Sprintf("R%d-%d", CrossoverRound, i+1))
		w2, l2 := decideOrPlaceholder(round4[i+1], fmt.Sprintf("R%d-%d", CrossoverRound, i+2))
		base := i/2*4 + 1

		out = append(out, &models.FinalsMatch{
			MatchBase: models.MatchBase{Round: PlacementRound, TeamA: w1, TeamB: w2, Court: nextCourt()},
			Placement: PlacementLabel(base),
		})
		out = append(out, &models.FinalsMatch{
			MatchBase: models.MatchBase{Round: PlacementRound, TeamA: l1, TeamB: l2, Court: nextCourt()},
			Placement: PlacementLabel(base + 2),
		})
	}
	return out
}

func decideOrPlaceholder(m models.Match, label string) (winner, loser string) {
	if w, l, ok := m.Base().Winner(); ok {
		return w, l
	}
	return WinnerPlaceholder(label), LoserPlaceholder(label)
}

// ApplyCrossovers replaces every round after the group stage with round 4 and round 5.
func ApplyCrossovers(t *models.Tournament, seeds map[string]int) error {
	rounds, err := BuildCrossoverRounds(GroupTables(t, seeds), t.Courts)
	if err != nil {
		return err
	}
	kept := make([]models.Round, 0, models.TotalRounds)
	for _, r := range t.Rounds {
		if r.Number <= MaxGroupRound {
			kept = append(kept, r)
		}
	}
	t.Rounds = append(kept, rounds...)
	t.RebuildMatches()
	return nil
}

// RecalculatePlacementRound rebuilds round 5 from the current round 4 results.
// A recorded placement score is kept while its game still opposes the same teams;
// cleared counts the scores dropped because the crossovers changed.
// It reports rebuilt false when round 4 has fewer than two games.
func RecalculatePlacementRound(t *models.Tournament) (rebuilt bool, cleared int) {
	r4 := t.Round(CrossoverRound)
	if r4 == nil || len(r4.Matches) < 2 {
		return false, 0
	}
	games := BuildPlacementRound(r4.Matches, t.Courts)
	if len(games) == 0 {
		return false, 0
	}

	previous := make(map[string]*models.FinalsMatch)
	if r5 := t.Round(PlacementRound); r5 != nil {
		for _, m := range r5.Matches {
			if fm, ok := m.(*models.FinalsMatch); ok && !fm.Score.IsBlank() {
				previous[fm.Placement] = fm
			}
		}
	}
	for _, m := range games {
		fm := m.(*models.FinalsMatch)
		old, ok := previous[fm.Placement]
		if !ok {
			continue
		}
		if old.TeamA == fm.TeamA && old.TeamB == fm.TeamB {
			fm.Score = old.Score
			continue
		}
		cleared++
	}

	t.SetRound(models.Round{Number: PlacementRound, Matches: games})
	t.RebuildMatches()
	return true, cleared
}
