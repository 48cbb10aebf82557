package brackets

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/Dosada05/padel-tournament/models"
)

var leadingNumber = regexp.MustCompile(`(\d+)`)

// ClassifyFromPlacements reads the final positions from the round 5 placement games.
// Games without a placement label are ignored.
func ClassifyFromPlacements(round5 models.MatchList) []models.Placement {
	out := make([]models.Placement, 0, len(round5)*2)
	for _, m := range round5 {
		fm, ok := m.(*models.FinalsMatch)
		if !ok {
			continue
		}
		found := leadingNumber.FindString(fm.Placement)
		if found == "" {
			continue
		}
		base, err := strconv.Atoi(found)
		if err != nil {
			continue
		}
		winner, loser, decided := fm.Winner()
		if !decided {
			winner, loser = WinnerPlaceholder(fm.Placement), LoserPlaceholder(fm.Placement)
		}
		out = append(out,
			models.Placement{Position: base, Team: winner},
			models.Placement{Position: base + 1, Team: loser},
		)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// ClassifyLadder ranks the last ladder round court by court: the winner on the best
// court is first, its opponent second, and so on.
func ClassifyLadder(round5 models.MatchList) []models.Placement {
	games := append(models.MatchList(nil), round5...)
	sort.SliceStable(games, func(i, j int) bool {
		return models.CourtRank(games[i].Base().Court) < models.CourtRank(games[j].Base().Court)
	})

	out := make([]models.Placement, 0, len(games)*2)
	next := 1
	for _, m := range games {
		b := m.Base()
		winner, loser, decided := b.Winner()
		if !decided {
			label := b.TeamA + " vs " + b.TeamB
			winner, loser = WinnerPlaceholder(label), LoserPlaceholder(label)
		}
		out = append(out,
			models.Placement{Position: next, Team: winner},
			models.Placement{Position: next + 1, Team: loser},
		)
		next += 2
	}
	return out
}

// ClassifyLeague turns a finished league table into final positions.
func ClassifyLeague(rows []models.StandingRow) []models.Placement {
	out := make([]models.Placement, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Placement{Position: r.Position, Team: r.Team})
	}
	return out
}

// LeagueTable is the table of a league event over all its rounds.
func LeagueTable(t *models.Tournament) []models.StandingRow {
	rows := ComputeStandings(t.Matches, t.PairNames())
	seeds := t.SeedMap()
	for i := range rows {
		rows[i].Seed = seeds[rows[i].Team]
	}
	markHeadToHeadTies(rows)
	return rows
}

// FinalClassification returns the final positions of an event. An event that has not
// reached its last round yields an empty list.
func FinalClassification(t *models.Tournament) []models.Placement {
	format, ok := models.LookupFormat(t.Format)
	if !ok {
		return []models.Placement{}
	}

	if format.Code == models.FormatLeague6 {
		if len(t.Matches) == 0 {
			return []models.Placement{}
		}
		for _, m := range t.Matches {
			if !m.Base().Score.Played() {
				return []models.Placement{}
			}
		}
		return ClassifyLeague(LeagueTable(t))
	}

	r5 := t.Round(models.TotalRounds)
	if r5 == nil || len(r5.Matches) == 0 {
		return []models.Placement{}
	}
	if format.IsLadder() {
		return ClassifyLadder(r5.Matches)
	}
	return ClassifyFromPlacements(r5.Matches)
}
