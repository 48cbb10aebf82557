package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/padel-tournament/models"
)

func TestRankingService_Overview(t *testing.T) {
	results := newFakeResultRepo(
		models.HistoricalResult{TemplateID: "F5.2_20SEX", Year: 2025, Month: "Janeiro", Day: 10, Position: 1, Team: "Ana / Bia"},
		models.HistoricalResult{TemplateID: "F5.2_20SEX", Year: 2025, Month: "Janeiro", Day: 10, Position: 2, Team: "Cat / Dora"},
		models.HistoricalResult{TemplateID: "F5.2_20SEX", Year: 2025, Month: "Janeiro", Day: 10, Position: 3, Team: "Eva / Fia"},
		models.HistoricalResult{TemplateID: "F5.2_20SEX", Year: 2025, Month: "Janeiro", Day: 10, Position: 4, Team: "Gil / Hel"},
		models.HistoricalResult{TemplateID: "M5.2_1830DOM", Year: 2025, Month: "Janeiro", Day: 12, Position: 1, Team: "Rui / Tiago"},
	)
	tournaments := newFakeTournamentRepo()
	require.NoError(t, tournaments.Create(context.Background(), &models.Tournament{
		ID: "F5.2_20SEX_20250307", TemplateID: "F5.2_20SEX", State: models.StateSetup, Date: eventDate,
	}))
	svc := NewRankingService(results, tournaments)

	overview, err := svc.Overview(context.Background(), "F5.2_20SEX")
	require.NoError(t, err)
	assert.Equal(t, "F5.2_20SEX", overview.Template.ID)
	require.Len(t, overview.Ranking, 8)
	assert.Equal(t, "Ana", overview.Ranking[0].Player)
	assert.Equal(t, 6, overview.Ranking[0].Points)
	assert.Equal(t, []string{"2025-01-10"}, overview.Dates)
	require.Len(t, overview.Events, 1)
	assert.Equal(t, "F5.2_20SEX_20250307", overview.Events[0].ID)

	players, err := svc.Players(context.Background(), "F5.2_20SEX")
	require.NoError(t, err)
	assert.Equal(t, "Bia (1)", players[0].Partners)

	points, err := svc.PointsMap(context.Background(), "M5.2_1830DOM")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Rui": 0, "Tiago": 0}, points, "a single-pair event has no points table")
}

func TestRankingService_UntrackedAndUnknownTemplates(t *testing.T) {
	results := newFakeResultRepo(
		models.HistoricalResult{TemplateID: "M3.2_20DOM", Year: 2025, Month: "Maio", Day: 4, Position: 1, Team: "A / B"},
	)
	svc := NewRankingService(results, newFakeTournamentRepo())

	got, err := svc.Ranking(context.Background(), "M3.2_20DOM")
	require.NoError(t, err)
	assert.Empty(t, got)

	overview, err := svc.Overview(context.Background(), "M3.2_20DOM")
	require.NoError(t, err)
	assert.Empty(t, overview.Ranking)
	assert.NotNil(t, overview.Events)
	assert.NotNil(t, overview.Dates)

	_, err = svc.Ranking(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
	_, err = svc.Overview(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}
