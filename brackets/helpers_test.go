package brackets

import (
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

// keepOrder is a Shuffler that leaves every slice untouched.
type keepOrder struct{}

func (keepOrder) Shuffle(int, func(i, j int)) {}

// reverseOrder is a Shuffler that reverses the slice.
type reverseOrder struct{}

func (reverseOrder) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func seededPairs(n int) []models.Pair {
	out := make([]models.Pair, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Pair{
			A:    fmt.Sprintf("A%02d", i),
			B:    fmt.Sprintf("B%02d", i),
			Name: fmt.Sprintf("P%02d", i),
			Seed: 100 - i,
		})
	}
	return out
}

func tableOf(teams ...string) []models.StandingRow {
	rows := make([]models.StandingRow, 0, len(teams))
	for i, t := range teams {
		rows = append(rows, models.StandingRow{Position: i + 1, Team: t})
	}
	return rows
}

func teamsOf(games models.MatchList) [][2]string {
	out := make([][2]string, 0, len(games))
	for _, g := range games {
		out = append(out, [2]string{g.Base().TeamA, g.Base().TeamB})
	}
	return out
}

func setScores(games models.MatchList, scores ...string) {
	for i, s := range scores {
		games[i].Base().Score = models.Score(s)
	}
}

func scoresOf(games models.MatchList) []models.Score {
	out := make([]models.Score, 0, len(games))
	for _, g := range games {
		out = append(out, g.Base().Score)
	}
	return out
}
