package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/padel-tournament/models"
)

// playLeague opens a LIGA6 event and records every round.
func playLeague(t *testing.T, env *serviceEnv, templateID string) *models.Tournament {
	t.Helper()
	ctx := context.Background()
	tour := env.open(t, templateID)

	_, err := env.svc.SetFormat(ctx, testOrganizer, tour.ID, models.FormatLeague6, 0)
	require.NoError(t, err)
	_, err = env.svc.SetPairs(ctx, testOrganizer, tour.ID, rawPairs(6))
	require.NoError(t, err)
	tour, err = env.svc.GenerateSchedule(ctx, testOrganizer, tour.ID)
	require.NoError(t, err)
	for round := 1; round <= models.TotalRounds; round++ {
		outcome, err := env.svc.SaveRoundResults(ctx, testOrganizer, tour.ID, round, strongerWins(tour, round))
		require.NoError(t, err)
		tour = outcome.Tournament
	}
	return tour
}

func TestExport(t *testing.T) {
	env := newServiceEnv()
	tour := playLeague(t, env, "M3.2_20DOM")
	uploader := newFakeUploader()
	svc := NewExportService(env.svc, uploader, nil)

	res, err := svc.Export(context.Background(), testOrganizer, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, tour.ID, res.TournamentID)
	assert.True(t, strings.HasPrefix(res.ClassificationURL, "https://files.example.com/exports/"+tour.ID+"/classificacao_"))
	assert.True(t, strings.HasSuffix(res.TournamentURL, ".json"))
	require.Len(t, uploader.objects, 2)

	key := strings.TrimPrefix(res.ClassificationURL, "https://files.example.com/")
	lines := strings.Split(strings.TrimSpace(string(uploader.objects[key])), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Pos,Dupla / Equipa", lines[0])
	assert.Equal(t, "1,"+tour.Pairs[0].Name, lines[1])
}

func TestExport_Failures(t *testing.T) {
	env := newServiceEnv()
	ctx := context.Background()
	open := env.open(t, "F5.2_20SEX")

	_, err := NewExportService(env.svc, nil, nil).Export(ctx, testOrganizer, open.ID)
	assert.ErrorIs(t, err, ErrExportUnavailable)

	_, err = NewExportService(env.svc, newFakeUploader(), nil).Export(ctx, Organizer{}, open.ID)
	assert.ErrorIs(t, err, ErrForbiddenOperation)

	_, err = NewExportService(env.svc, newFakeUploader(), nil).Export(ctx, testOrganizer, open.ID)
	assert.ErrorIs(t, err, ErrClassificationIncomplete)

	_, err = NewExportService(env.svc, newFakeUploader(), nil).Export(ctx, testOrganizer, "missing")
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	played := playLeague(t, env, "M3.2_20DOM")
	uploader := newFakeUploader()
	uploader.failOn = ".json"
	_, err = NewExportService(env.svc, uploader, nil).Export(ctx, testOrganizer, played.ID)
	require.Error(t, err)
	assert.Empty(t, uploader.objects)
	require.Len(t, uploader.deleted, 1)
	assert.Contains(t, uploader.deleted[0], "classificacao_")
}

func TestClassificationCSV_QuotesNames(t *testing.T) {
	data, err := ClassificationCSV([]models.Placement{{Position: 1, Team: `Ana "Tita" / Bia`}})
	require.NoError(t, err)
	assert.Equal(t, "Pos,Dupla / Equipa\n1,\"Ana \"\"Tita\"\" / Bia\"\n", string(data))
}
