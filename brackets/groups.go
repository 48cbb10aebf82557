package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/padel-tournament/models"
)

// MaxGroupRound is the last round of the group stage.
const MaxGroupRound = 3

func groupLabel(i int) string {
	return string(rune('A' + i))
}

// GroupDistribution splits seeded pairs (best first) into groups of size.
// The returned indices point into seeded.
func GroupDistribution(seeded []models.Pair, groups, size int, mode models.FormatCode, shuffler Shuffler) (map[string][]int, error) {
	n := len(seeded)
	if groups <= 0 || size <= 0 || groups*size != n {
		return nil, fmt.Errorf("%d groups of %d for %d pairs: %w", groups, size, n, ErrSizeMismatch)
	}

	byGroup := make(map[string][]int, groups)
	for i := 0; i < groups; i++ {
		byGroup[groupLabel(i)] = []int{}
	}

	switch mode {
	case models.FormatGroups2x4:
		if groups != 2 || n < 4 {
			return nil, fmt.Errorf("mode %s with %d groups: %w", mode, groups, ErrSizeMismatch)
		}
		byGroup["A"] = append(byGroup["A"], 0, 2)
		byGroup["B"] = append(byGroup["B"], 1, 3)
		for k, ix := range shuffledRange(4, n, shuffler) {
			g := "B"
			if len(byGroup["A"]) < size && k%2 == 0 {
				g = "A"
			}
			if len(byGroup[g]) >= size {
				g = otherOf(g)
			}
			byGroup[g] = append(byGroup[g], ix)
		}

	case models.FormatGroups3x4:
		if groups != 3 || n < 6 {
			return nil, fmt.Errorf("mode %s with %d groups: %w", mode, groups, ErrSizeMismatch)
		}
		byGroup["A"] = append(byGroup["A"], 0, 3)
		byGroup["B"] = append(byGroup["B"], 1, 4)
		byGroup["C"] = append(byGroup["C"], 2, 5)
		cycle := []string{"A", "B", "C"}
		i := 0
		for _, ix := range shuffledRange(6, n, shuffler) {
			g := cycle[i%3]
			for len(byGroup[g]) >= size {
				i++
				g = cycle[i%3]
			}
			byGroup[g] = append(byGroup[g], ix)
			i++
		}

	case models.FormatGroups4x4:
		// Serpentine pointer: advances when the current group reaches a multiple of size,
		// bouncing at the first and last group.
		last := groups - 1
		direction := 1
		pos := 0
		for ix := 0; ix < n; ix++ {
			g := groupLabel(pos)
			byGroup[g] = append(byGroup[g], ix)
			if len(byGroup[g])%size != 0 {
				continue
			}
			if direction == 1 {
				pos++
				if pos >= last {
					direction = -1
				}
			} else {
				pos--
				if pos <= 0 {
					direction = 1
				}
			}
			if pos < 0 || pos > last {
				break
			}
		}

	default:
		return nil, fmt.Errorf("group mode %q: %w", mode, ErrInvalidInput)
	}

	for g, members := range byGroup {
		if len(members) != size {
			return nil, fmt.Errorf("group %s has %d pairs, want %d: %w", g, len(members), size, ErrSizeMismatch)
		}
	}
	return byGroup, nil
}

func otherOf(g string) string {
	if g == "A" {
		return "B"
	}
	return "A"
}

func shuffledRange(from, to int, shuffler Shuffler) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	shuffler.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// GroupStageGenerator builds the group formats: three group rounds followed by
// two empty rounds for crossovers and placement games.
type GroupStageGenerator struct {
	shuffler Shuffler
}

func NewGroupStageGenerator(shuffler Shuffler) BracketGenerator {
	return &GroupStageGenerator{shuffler: shuffler}
}

func (g *GroupStageGenerator) GetName() string {
	return "GroupStage"
}

func (g *GroupStageGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]models.Round, error) {
	format := params.Format
	if !format.IsGrouped() {
		return nil, fmt.Errorf("GroupStageGenerator: format %s has no groups: %w", format.Code, ErrInvalidInput)
	}
	if len(params.Courts) == 0 {
		return nil, fmt.Errorf("GroupStageGenerator: %w", ErrMissingCourts)
	}

	dist, err := GroupDistribution(params.Pairs, format.Groups, format.GroupSize, format.Code, g.shuffler)
	if err != nil {
		return nil, err
	}
	schedule, err := RoundRobinPairs(format.GroupSize)
	if err != nil {
		return nil, err
	}
	names := pairNames(params.Pairs)

	labels := make([]string, 0, len(dist))
	for label := range dist {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	byRound := make(map[int]models.MatchList, len(schedule))
	for gi, label := range labels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		members := make([]string, 0, len(dist[label]))
		for _, ix := range dist[label] {
			members = append(members, names[ix])
		}
		for ri, games := range schedule {
			courts := groupCourts(params.Courts, gi, len(games))
			for j, p := range games {
				byRound[ri+1] = append(byRound[ri+1], &models.GroupMatch{
					MatchBase: models.MatchBase{
						Round: ri + 1,
						TeamA: members[p.A],
						TeamB: members[p.B],
						Court: courts[j%len(courts)],
					},
					Group: label,
				})
			}
		}
	}

	rounds := make([]models.Round, 0, models.TotalRounds)
	for r := 1; r <= len(schedule); r++ {
		rounds = append(rounds, models.Round{Number: r, Matches: byRound[r]})
	}
	for r := len(schedule) + 1; r <= len(schedule)+2; r++ {
		rounds = append(rounds, models.Round{Number: r, Matches: models.MatchList{}})
	}
	return rounds, nil
}

// groupCourts returns the slice of courts reserved for group gi, or every court when it is too short.
func groupCourts(courts []string, gi, games int) []string {
	width := games
	if width < 2 {
		width = 2
	}
	start := 2 * gi
	end := start + width
	if start > len(courts) {
		start = len(courts)
	}
	if end > len(courts) {
		end = len(courts)
	}
	slice := courts[start:end]
	if len(slice) < games {
		return courts
	}
	return slice
}

// GroupMembers returns each group's teams in order of first appearance.
func GroupMembers(t *models.Tournament) map[string][]string {
	out := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, r := range t.Rounds {
		for _, m := range r.Matches {
			gm, ok := m.(*models.GroupMatch)
			if !ok || gm.Group == "" {
				continue
			}
			if seen[gm.Group] == nil {
				seen[gm.Group] = make(map[string]bool)
			}
			for _, team := range []string{gm.TeamA, gm.TeamB} {
				if !seen[gm.Group][team] {
					seen[gm.Group][team] = true
					out[gm.Group] = append(out[gm.Group], team)
				}
			}
		}
	}
	return out
}

func groupMatches(t *models.Tournament, group string, maxRound int) []models.Match {
	var out []models.Match
	for _, r := range t.Rounds {
		if r.Number > maxRound {
			continue
		}
		for _, m := range r.Matches {
			if gm, ok := m.(*models.GroupMatch); ok && gm.Group == group {
				out = append(out, gm)
			}
		}
	}
	return out
}

// GroupTables computes the live table of every group from its group-stage matches.
// A group without any played match is listed in seed order.
func GroupTables(t *models.Tournament, seeds map[string]int) map[string][]models.StandingRow {
	members := GroupMembers(t)
	tables := make(map[string][]models.StandingRow, len(members))
	for group, teams := range members {
		matches := groupMatches(t, group, MaxGroupRound)
		var rows []models.StandingRow
		if countPlayed(matches) == 0 {
			rows = seededTable(teams, seeds)
		} else {
			rows = ComputeStandings(matches, teams)
		}
		for i := range rows {
			rows[i].Seed = seeds[rows[i].Team]
		}
		markHeadToHeadTies(rows)
		tables[group] = rows
	}
	return tables
}

func countPlayed(matches []models.Match) int {
	n := 0
	for _, m := range matches {
		if m.Base().Score.Played() {
			n++
		}
	}
	return n
}

func seededTable(teams []string, seeds map[string]int) []models.StandingRow {
	ordered := append([]string(nil), teams...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if seeds[ordered[i]] != seeds[ordered[j]] {
			return seeds[ordered[i]] > seeds[ordered[j]]
		}
		return ordered[i] < ordered[j]
	})
	rows := make([]models.StandingRow, 0, len(ordered))
	for i, team := range ordered {
		rows = append(rows, models.StandingRow{Position: i + 1, Team: team})
	}
	return rows
}
