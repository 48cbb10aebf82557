package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/lib/pq"
)

var ErrResultsAlreadyArchived = errors.New("results for this event are already archived")

// ResultRepository stores the final tables of past events, the input of the player ranking.
type ResultRepository interface {
	ListByTemplate(ctx context.Context, templateID string) ([]models.HistoricalResult, error)
	// AppendEvent stores the final table of one event atomically.
	AppendEvent(ctx context.Context, eventID string, results []models.HistoricalResult) error
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) ListByTemplate(ctx context.Context, templateID string) ([]models.HistoricalResult, error) {
	query := `
		SELECT template_id, year, month, day, position, team
		FROM historical_results
		WHERE template_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results of %s: %w", templateID, err)
	}
	defer rows.Close()

	out := make([]models.HistoricalResult, 0)
	for rows.Next() {
		var res models.HistoricalResult
		if err := rows.Scan(&res.TemplateID, &res.Year, &res.Month, &res.Day, &res.Position, &res.Team); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		out = append(out, res)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresResultRepository) AppendEvent(ctx context.Context, eventID string, results []models.HistoricalResult) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO historical_results (event_id, template_id, year, month, day, position, team)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`)
		if err != nil {
			return fmt.Errorf("failed to prepare result insert: %w", err)
		}
		defer stmt.Close()

		for _, res := range results {
			if _, err := stmt.ExecContext(ctx, eventID, res.TemplateID, res.Year, res.Month, res.Day, res.Position, res.Team); err != nil {
				var pqErr *pq.Error
				if errors.As(err, &pqErr) && pqErr.Code == "23505" {
					return ErrResultsAlreadyArchived
				}
				return fmt.Errorf("failed to insert result %d of %s: %w", res.Position, eventID, err)
			}
		}
		return nil
	})
}
