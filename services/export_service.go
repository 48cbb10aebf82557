package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/storage"
	"github.com/google/uuid"
)

const exportPrefix = "exports"

type ExportResult struct {
	TournamentID      string `json:"tournament_id"`
	ClassificationURL string `json:"classification_url"`
	TournamentURL     string `json:"tournament_url"`
}

type ExportService interface {
	Export(ctx context.Context, org Organizer, tournamentID string) (*ExportResult, error)
}

type exportService struct {
	tournaments TournamentService
	uploader    storage.FileUploader
	logger      *slog.Logger
}

// NewExportService builds the export service. A nil uploader disables exports.
func NewExportService(tournaments TournamentService, uploader storage.FileUploader, logger *slog.Logger) ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &exportService{tournaments: tournaments, uploader: uploader, logger: logger}
}

func (s *exportService) Export(ctx context.Context, org Organizer, tournamentID string) (*ExportResult, error) {
	if !org.Valid() {
		return nil, ErrForbiddenOperation
	}
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}

	t, err := s.tournaments.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	placements := brackets.FinalClassification(t)
	if len(placements) == 0 {
		return nil, ErrClassificationIncomplete
	}

	csvData, err := ClassificationCSV(placements)
	if err != nil {
		return nil, err
	}
	jsonData, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}

	suffix := uuid.NewString()[:8]
	csvKey := fmt.Sprintf("%s/%s/classificacao_%s.csv", exportPrefix, t.ID, suffix)
	jsonKey := fmt.Sprintf("%s/%s/torneio_%s.json", exportPrefix, t.ID, suffix)

	csvUpload, err := s.uploader.Upload(ctx, csvKey, storage.ContentTypeCSV, bytes.NewReader(csvData))
	if err != nil {
		return nil, err
	}
	jsonUpload, err := s.uploader.Upload(ctx, jsonKey, storage.ContentTypeJSON, bytes.NewReader(jsonData))
	if err != nil {
		if delErr := s.uploader.Delete(ctx, csvKey); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove partial export", "key", csvKey, "error", delErr)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament exported", "tournament_id", t.ID, "csv_key", csvKey, "json_key", jsonKey)
	return &ExportResult{
		TournamentID:      t.ID,
		ClassificationURL: csvUpload.Location,
		TournamentURL:     jsonUpload.Location,
	}, nil
}

// ClassificationCSV renders the final positions as "Pos,Dupla / Equipa" rows.
func ClassificationCSV(placements []models.Placement) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Pos", "Dupla / Equipa"}); err != nil {
		return nil, err
	}
	for _, p := range placements {
		if err := w.Write([]string{strconv.Itoa(p.Position), p.Team}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write classification csv: %w", err)
	}
	return buf.Bytes(), nil
}
