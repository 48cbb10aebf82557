package brackets

import (
	"context"
	"testing"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ladderCourts = []string{"Campo 9", "Campo Central", "Campo 10", "Campo 11"}

func ladderNames() []string {
	return []string{"P00", "P01", "P02", "P03", "P04", "P05", "P06", "P07"}
}

func courtsOf(games models.MatchList) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.Base().Court)
	}
	return out
}

func TestGenerateLadder_FirstRoundOnRankedCourts(t *testing.T) {
	rounds, err := GenerateLadder(ladderNames(), 8, ladderCourts, keepOrder{})
	require.NoError(t, err)
	require.Len(t, rounds, models.TotalRounds)

	r1 := rounds[0].Matches
	assert.Equal(t, []string{"Campo Central", "Campo 11", "Campo 10", "Campo 9"}, courtsOf(r1))
	assert.Equal(t, [][2]string{{"P00", "P01"}, {"P02", "P03"}, {"P04", "P05"}, {"P06", "P07"}}, teamsOf(r1))
	for _, m := range r1 {
		assert.Equal(t, models.PhaseUpDown, m.Phase())
		assert.Equal(t, 1, m.Base().Round)
	}
	for _, r := range rounds[1:] {
		assert.Empty(t, r.Matches, "round %d", r.Number)
	}
}

func TestLadderGenerator(t *testing.T) {
	gen := NewLadderGenerator(reverseOrder{})
	assert.Equal(t, "UpDown", gen.GetName())

	pairs := seededPairs(4)
	rounds, err := gen.GenerateBracket(context.Background(), GenerateBracketParams{
		Pairs:         pairs,
		Courts:        []string{"Campo 2", "Campo 3"},
		ExpectedPairs: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"P03", "P02"}, {"P01", "P00"}}, teamsOf(rounds[0].Matches))
	assert.Equal(t, []string{"Campo 3", "Campo 2"}, courtsOf(rounds[0].Matches))
}

func TestGenerateLadder_Validation(t *testing.T) {
	_, err := GenerateLadder(ladderNames(), 10, ladderCourts, keepOrder{})
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = GenerateLadder(ladderNames()[:5], 5, ladderCourts[:2], keepOrder{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = GenerateLadder(ladderNames(), 8, ladderCourts[:3], keepOrder{})
	assert.ErrorIs(t, err, ErrWrongCourtCount)
}

func TestAdvanceLadder_WinnersUpLosersDown(t *testing.T) {
	rounds, err := GenerateLadder(ladderNames(), 8, ladderCourts, keepOrder{})
	require.NoError(t, err)
	setScores(rounds[0].Matches, "6-1", "6-2", "6-3", "6-4")

	next, err := AdvanceLadder(rounds, 1, ladderCourts)
	require.NoError(t, err)

	assert.Equal(t, 2, next.Number)
	assert.Equal(t, []string{"Campo Central", "Campo 11", "Campo 10", "Campo 9"}, courtsOf(next.Matches))
	assert.Equal(t, [][2]string{
		{"P00", "P02"},
		{"P01", "P04"},
		{"P03", "P06"},
		{"P05", "P07"},
	}, teamsOf(next.Matches))
	for _, m := range next.Matches {
		assert.Equal(t, 2, m.Base().Round)
		assert.True(t, m.Base().Score.IsBlank())
	}
}

func TestAdvanceLadder_IgnoresGameOrder(t *testing.T) {
	rounds, err := GenerateLadder(ladderNames(), 8, ladderCourts, keepOrder{})
	require.NoError(t, err)
	setScores(rounds[0].Matches, "1-6", "6-2", "3-6", "6-4")
	want, err := AdvanceLadder(rounds, 1, ladderCourts)
	require.NoError(t, err)

	games := rounds[0].Matches
	rounds[0].Matches = models.MatchList{games[3], games[1], games[0], games[2]}
	got, err := AdvanceLadder(rounds, 1, ladderCourts)
	require.NoError(t, err)

	assert.Equal(t, teamsOf(want.Matches), teamsOf(got.Matches))
	assert.Equal(t, [][2]string{{"P01", "P02"}, {"P00", "P05"}, {"P03", "P06"}, {"P04", "P07"}}, teamsOf(got.Matches))
}

func TestAdvanceLadder_Errors(t *testing.T) {
	rounds, err := GenerateLadder(ladderNames(), 8, ladderCourts, keepOrder{})
	require.NoError(t, err)

	setScores(rounds[0].Matches, "6-1", "6-2", "3-3", "6-4")
	_, err = AdvanceLadder(rounds, 1, ladderCourts)
	assert.ErrorIs(t, err, ErrIndecisiveResult)

	setScores(rounds[0].Matches, "6-1", "6-2", "", "6-4")
	_, err = AdvanceLadder(rounds, 1, ladderCourts)
	assert.ErrorIs(t, err, ErrIndecisiveResult)

	_, err = AdvanceLadder(rounds, models.TotalRounds, ladderCourts)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = AdvanceLadder(rounds[1:], 1, ladderCourts)
	assert.ErrorIs(t, err, ErrRoundNotFound)

	setScores(rounds[0].Matches, "6-1", "6-2", "6-3", "6-4")
	_, err = AdvanceLadder(rounds, 1, []string{"Campo 1", "Campo 2", "Campo 3", "Campo 4"})
	assert.ErrorIs(t, err, ErrInvalidLadderState)

	_, err = AdvanceLadder(rounds, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidLadderState)
}

func ladderTournament(t *testing.T) *models.Tournament {
	t.Helper()
	rounds, err := GenerateLadder(ladderNames(), 8, ladderCourts, keepOrder{})
	require.NoError(t, err)
	pairs := make([]models.Pair, 0, 8)
	for _, n := range ladderNames() {
		pairs = append(pairs, models.Pair{Name: n})
	}
	tour := &models.Tournament{
		Format:        models.FormatUpDown,
		ExpectedPairs: 8,
		Pairs:         pairs,
		Courts:        models.OrderCourtsDesc(ladderCourts),
		Rounds:        rounds,
		State:         models.StateScheduled,
	}
	tour.RebuildMatches()
	return tour
}

func TestRegenerateFirstRound(t *testing.T) {
	tour := ladderTournament(t)

	require.NoError(t, RegenerateFirstRound(tour, reverseOrder{}))
	assert.Equal(t, [][2]string{{"P07", "P06"}, {"P05", "P04"}, {"P03", "P02"}, {"P01", "P00"}}, teamsOf(tour.Round(1).Matches))
	assert.Len(t, tour.Matches, 4)
}

func TestRegenerateFirstRound_Refusals(t *testing.T) {
	tour := ladderTournament(t)
	tour.Round(1).Matches[0].Base().Score = "6-0"
	assert.ErrorIs(t, RegenerateFirstRound(tour, keepOrder{}), ErrRoundAlreadyScored)

	tour = ladderTournament(t)
	setScores(tour.Round(1).Matches, "6-1", "6-2", "6-3", "6-4")
	next, err := AdvanceLadder(tour.Rounds, 1, tour.Courts)
	require.NoError(t, err)
	tour.SetRound(next)
	setScores(tour.Round(1).Matches, "", "", "", "")
	assert.ErrorIs(t, RegenerateFirstRound(tour, keepOrder{}), ErrLaterRoundsExist)
}
