package brackets

import (
	"testing"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placements(games models.MatchList) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.(*models.FinalsMatch).Placement)
	}
	return out
}

func TestBuildCrossoverRounds_TwoGroups(t *testing.T) {
	tables := map[string][]models.StandingRow{
		"A": tableOf("A1", "A2", "A3", "A4"),
		"B": tableOf("B1", "B2", "B3", "B4"),
	}
	rounds, err := BuildCrossoverRounds(tables, models.DefaultCourts(4))
	require.NoError(t, err)
	require.Len(t, rounds, 2)

	r4, r5 := rounds[0], rounds[1]
	assert.Equal(t, CrossoverRound, r4.Number)
	assert.Equal(t, [][2]string{{"A1", "B2"}, {"B1", "A2"}, {"A3", "B4"}, {"B3", "A4"}}, teamsOf(r4.Matches))
	for i, m := range r4.Matches {
		assert.Equal(t, models.PhaseFinals, m.Phase())
		assert.Equal(t, CrossoverRound, m.Base().Round)
		assert.Equal(t, models.AllCourts[i], m.Base().Court)
	}

	assert.Equal(t, PlacementRound, r5.Number)
	assert.Equal(t, [][2]string{
		{"Vencedor R4-1", "Vencedor R4-2"},
		{"Perdedor R4-1", "Perdedor R4-2"},
		{"Vencedor R4-3", "Vencedor R4-4"},
		{"Perdedor R4-3", "Perdedor R4-4"},
	}, teamsOf(r5.Matches))
	assert.Equal(t, []string{"1º e 2º lugar", "3º e 4º lugar", "5º e 6º lugar", "7º e 8º lugar"}, placements(r5.Matches))
}

func TestBuildCrossoverRounds_ThreeGroupsRanksAcrossGroups(t *testing.T) {
	tables := map[string][]models.StandingRow{
		"A": tableOf("A1", "A2", "A3", "A4"),
		"B": tableOf("B1", "B2", "B3", "B4"),
		"C": tableOf("C1", "C2", "C3", "C4"),
	}
	// Seconds: A2 on points, then C2 on difference, then B2.
	tables["A"][1].Points = 6
	tables["B"][1].Points = 3
	tables["C"][1].Points = 3
	tables["C"][1].Diff = 4
	// Thirds: B3 best, then C3, then A3.
	tables["B"][2].Points = 3
	tables["C"][2].Points = 1
	// Fourths level on everything: name order.

	rounds, err := BuildCrossoverRounds(tables, models.DefaultCourts(6))
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"A1", "A2"},
		{"B1", "C1"},
		{"C2", "C3"},
		{"B2", "B3"},
		{"A3", "A4"},
		{"B4", "C4"},
	}, teamsOf(rounds[0].Matches))
	assert.Len(t, rounds[1].Matches, 6)
	assert.Equal(t, "9º e 10º lugar", rounds[1].Matches[4].(*models.FinalsMatch).Placement)
}

func TestBuildCrossoverRounds_FourGroups(t *testing.T) {
	tables := map[string][]models.StandingRow{
		"A": tableOf("A1", "A2", "A3", "A4"),
		"B": tableOf("B1", "B2", "B3", "B4"),
		"C": tableOf("C1", "C2", "C3", "C4"),
		"D": tableOf("D1", "D2", "D3", "D4"),
	}
	rounds, err := BuildCrossoverRounds(tables, models.DefaultCourts(8))
	require.NoError(t, err)

	assert.Equal(t, [][2]string{
		{"A1", "D1"}, {"B1", "C1"},
		{"A2", "D2"}, {"B2", "C2"},
		{"A3", "D3"}, {"B3", "C3"},
		{"A4", "D4"}, {"B4", "C4"},
	}, teamsOf(rounds[0].Matches))
	assert.Equal(t, "15º e 16º lugar", rounds[1].Matches[7].(*models.FinalsMatch).Placement)
}

func TestBuildCrossoverRounds_Errors(t *testing.T) {
	_, err := BuildCrossoverRounds(nil, models.DefaultCourts(4))
	assert.ErrorIs(t, err, ErrNoGroups)

	one := map[string][]models.StandingRow{"A": tableOf("A1", "A2", "A3", "A4")}
	_, err = BuildCrossoverRounds(one, models.DefaultCourts(4))
	assert.ErrorIs(t, err, ErrUnsupportedGroupCount)

	short := map[string][]models.StandingRow{
		"A": tableOf("A1", "A2", "A3"),
		"B": tableOf("B1", "B2", "B3", "B4"),
	}
	_, err = BuildCrossoverRounds(short, models.DefaultCourts(4))
	assert.ErrorIs(t, err, ErrSizeMismatch)

	two := map[string][]models.StandingRow{
		"A": tableOf("A1", "A2", "A3", "A4"),
		"B": tableOf("B1", "B2", "B3", "B4"),
	}
	_, err = BuildCrossoverRounds(two, nil)
	assert.ErrorIs(t, err, ErrMissingCourts)
}

func TestBuildPlacementRound_UsesDecidedResults(t *testing.T) {
	r4 := models.MatchList{
		&models.FinalsMatch{MatchBase: models.MatchBase{TeamA: "A1", TeamB: "B2", Score: "6-3"}},
		&models.FinalsMatch{MatchBase: models.MatchBase{TeamA: "B1", TeamB: "A2", Score: "2-6"}},
		&models.FinalsMatch{MatchBase: models.MatchBase{TeamA: "A3", TeamB: "B4", Score: "4-4"}},
		&models.FinalsMatch{MatchBase: models.MatchBase{TeamA: "B3", TeamB: "A4"}},
	}
	r5 := BuildPlacementRound(r4, nil)

	assert.Equal(t, [][2]string{
		{"A1", "A2"},
		{"B2", "B1"},
		{"Vencedor R4-3", "Vencedor R4-4"},
		{"Perdedor R4-3", "Perdedor R4-4"},
	}, teamsOf(r5))
	for _, m := range r5 {
		assert.Equal(t, "Campo ?", m.Base().Court)
		assert.Equal(t, PlacementRound, m.Base().Round)
	}
}

func TestApplyCrossoversAndRecalculate(t *testing.T) {
	tour := generateGroups(t, models.FormatGroups2x4)

	require.NoError(t, ApplyCrossovers(tour, tour.SeedMap()))
	require.Len(t, tour.Rounds, models.TotalRounds)
	r4 := tour.Round(CrossoverRound)
	require.Len(t, r4.Matches, 4)
	// Without results the group tables follow the seeds.
	assert.Equal(t, [2]string{"P00", "P03"}, teamsOf(r4.Matches)[0])
	assert.Len(t, tour.Matches, 12+4+4)

	setScores(r4.Matches, "6-1", "6-2", "1-6", "2-6")
	rebuilt, cleared := RecalculatePlacementRound(tour)
	require.True(t, rebuilt)
	assert.Zero(t, cleared)

	r5 := tour.Round(PlacementRound)
	assert.Equal(t, [][2]string{
		{"P00", "P01"},
		{"P03", "P02"},
		{"P07", "P06"},
		{"P04", "P05"},
	}, teamsOf(r5.Matches))
	assert.Len(t, tour.Matches, 20, "matches are rebuilt from rounds")
}

func TestRecalculatePlacementRound_NeedsRoundFour(t *testing.T) {
	tour := generateGroups(t, models.FormatGroups2x4)
	rebuilt, _ := RecalculatePlacementRound(tour)
	assert.False(t, rebuilt)
}

func TestRecalculatePlacementRound_KeepsScoresOfUnchangedGames(t *testing.T) {
	tour := generateGroups(t, models.FormatGroups2x4)
	require.NoError(t, ApplyCrossovers(tour, tour.SeedMap()))
	setScores(tour.Round(CrossoverRound).Matches, "6-1", "6-2", "1-6", "2-6")
	_, _ = RecalculatePlacementRound(tour)
	setScores(tour.Round(PlacementRound).Matches, "6-2", "6-3", "6-4", "6-5")

	rebuilt, cleared := RecalculatePlacementRound(tour)
	require.True(t, rebuilt)
	assert.Zero(t, cleared)
	assert.Equal(t, []models.Score{"6-2", "6-3", "6-4", "6-5"}, scoresOf(tour.Round(PlacementRound).Matches))
	assert.Len(t, FinalClassification(tour), 8)
	assert.Equal(t, "P00", FinalClassification(tour)[0].Team)

	// Flipping the first crossover changes the title game and the third place game only.
	setScores(tour.Round(CrossoverRound).Matches, "1-6")
	rebuilt, cleared = RecalculatePlacementRound(tour)
	require.True(t, rebuilt)
	assert.Equal(t, 2, cleared)
	assert.Equal(t, []models.Score{"", "", "6-4", "6-5"}, scoresOf(tour.Round(PlacementRound).Matches))
	assert.Equal(t, [2]string{"P03", "P01"}, teamsOf(tour.Round(PlacementRound).Matches)[0])
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		team string
		want bool
	}{
		{WinnerPlaceholder("R4-3"), true},
		{LoserPlaceholder("R4-12"), true},
		{WinnerPlaceholder(PlacementLabel(5)), true},
		{LoserPlaceholder("A / B vs C / D"), true},
		{"Vencedor Silva / Rui Costa", false},
		{"Perdedor / Ana", false},
		{"Vencedor R4-", false},
		{"P01", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.team, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlaceholder(tt.team))
		})
	}
}
