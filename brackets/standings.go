package brackets

import (
	"sort"

	"github.com/Dosada05/padel-tournament/models"
)

const (
	pointsWin  = 3
	pointsDraw = 1
)

type headToHead map[[2]string]int

func (h headToHead) against(team string, others []string) int {
	total := 0
	for _, o := range others {
		if o != team {
			total += h[[2]string{team, o}]
		}
	}
	return total
}

// ComputeStandings builds a table from the played matches. Teams listed in teams
// appear even without games. Order: points, game difference, name; teams level on
// points and difference are separated by wins against each other.
func ComputeStandings(matches []models.Match, teams []string) []models.StandingRow {
	table := make(map[string]*models.StandingRow)
	order := make([]string, 0)
	ensure := func(team string) *models.StandingRow {
		row, ok := table[team]
		if !ok {
			row = &models.StandingRow{Team: team}
			table[team] = row
			order = append(order, team)
		}
		return row
	}
	for _, team := range teams {
		ensure(team)
	}

	h2h := make(headToHead)
	for _, m := range matches {
		b := m.Base()
		ga, gb, ok := b.Score.Games()
		if !ok {
			continue
		}
		a := ensure(b.TeamA)
		c := ensure(b.TeamB)
		a.Played++
		c.Played++
		a.GamesFor += ga
		a.GamesAgainst += gb
		c.GamesFor += gb
		c.GamesAgainst += ga
		a.Diff = a.GamesFor - a.GamesAgainst
		c.Diff = c.GamesFor - c.GamesAgainst

		switch {
		case ga > gb:
			a.Wins++
			c.Losses++
			a.Points += pointsWin
			h2h[[2]string{b.TeamA, b.TeamB}] = 1
			h2h[[2]string{b.TeamB, b.TeamA}] = 0
		case gb > ga:
			c.Wins++
			a.Losses++
			c.Points += pointsWin
			h2h[[2]string{b.TeamB, b.TeamA}] = 1
			h2h[[2]string{b.TeamA, b.TeamB}] = 0
		default:
			a.Draws++
			c.Draws++
			a.Points += pointsDraw
			c.Points += pointsDraw
			h2h[[2]string{b.TeamA, b.TeamB}] = 0
			h2h[[2]string{b.TeamB, b.TeamA}] = 0
		}
	}

	if len(order) == 0 {
		return []models.StandingRow{}
	}

	sort.Slice(order, func(i, j int) bool {
		ri, rj := table[order[i]], table[order[j]]
		if ri.Points != rj.Points {
			return ri.Points > rj.Points
		}
		if ri.Diff != rj.Diff {
			return ri.Diff > rj.Diff
		}
		return ri.Team < rj.Team
	})

	final := make([]string, 0, len(order))
	for i := 0; i < len(order); {
		j := i + 1
		for j < len(order) && table[order[j]].Points == table[order[i]].Points && table[order[j]].Diff == table[order[i]].Diff {
			j++
		}
		block := append([]string(nil), order[i:j]...)
		if len(block) > 1 {
			sort.SliceStable(block, func(x, y int) bool {
				return h2h.against(block[x], block) > h2h.against(block[y], block)
			})
		}
		final = append(final, block...)
		i = j
	}

	rows := make([]models.StandingRow, 0, len(final))
	for pos, team := range final {
		row := *table[team]
		row.Position = pos + 1
		cd := h2h.against(team, final)
		row.HeadToHead = &cd
		rows = append(rows, row)
	}
	return rows
}

// markHeadToHeadTies keeps the head-to-head value only on rows whose points are shared.
func markHeadToHeadTies(rows []models.StandingRow) {
	count := make(map[int]int, len(rows))
	for _, r := range rows {
		count[r.Points]++
	}
	for i := range rows {
		if count[rows[i].Points] < 2 {
			rows[i].HeadToHead = nil
		}
	}
}
