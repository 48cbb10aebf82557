package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTournamentExists   = errors.New("tournament already exists")
)

// TournamentSummary is the list view of an event.
type TournamentSummary struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	TemplateID string                 `json:"template_id"`
	Format     models.FormatCode      `json:"format,omitempty"`
	State      models.TournamentState `json:"state"`
	Date       models.EventDate       `json:"date"`
}

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	GetByID(ctx context.Context, id string) (*models.Tournament, error)
	ListByTemplate(ctx context.Context, templateID string) ([]TournamentSummary, error)
	// Save stores the tournament and a history snapshot of it in one transaction.
	Save(ctx context.Context, t *models.Tournament) error
	Delete(ctx context.Context, id string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO tournaments (id, template_id, name, state, event_date, document, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
		_, err := tx.ExecContext(ctx, query,
			t.ID, t.TemplateID, t.Name, t.State, t.Date.String(), doc, t.CreatedAt,
		)
		if err != nil {
			return r.handleTournamentError(err)
		}
		return insertSnapshot(ctx, tx, t.ID, doc)
	})
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT document FROM tournaments WHERE id = $1`
	var doc []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	t := &models.Tournament{}
	if err := json.Unmarshal(doc, t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament %s: %w", id, err)
	}
	t.RebuildMatches()
	return t, nil
}

func (r *postgresTournamentRepository) ListByTemplate(ctx context.Context, templateID string) ([]TournamentSummary, error) {
	query := `
		SELECT id, name, template_id, COALESCE(document->>'format', ''), state, document->'date'
		FROM tournaments
		WHERE template_id = $1
		ORDER BY event_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TournamentSummary, 0)
	for rows.Next() {
		var s TournamentSummary
		var rawDate []byte
		if err := rows.Scan(&s.ID, &s.Name, &s.TemplateID, &s.Format, &s.State, &rawDate); err != nil {
			return nil, err
		}
		if len(rawDate) > 0 {
			if err := json.Unmarshal(rawDate, &s.Date); err != nil {
				return nil, fmt.Errorf("failed to decode date of %s: %w", s.ID, err)
			}
		}
		out = append(out, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresTournamentRepository) Save(ctx context.Context, t *models.Tournament) error {
	t.RebuildMatches()
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			UPDATE tournaments SET
				name = $1,
				state = $2,
				document = $3,
				updated_at = $4
			WHERE id = $5`
		result, err := tx.ExecContext(ctx, query, t.Name, t.State, doc, t.UpdatedAt, t.ID)
		if err != nil {
			return r.handleTournamentError(err)
		}
		if err := checkAffectedRows(result, ErrTournamentNotFound); err != nil {
			return err
		}
		return insertSnapshot(ctx, tx, t.ID, doc)
	})
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func insertSnapshot(ctx context.Context, exec SQLExecutor, id string, doc []byte) error {
	query := `INSERT INTO tournament_snapshots (tournament_id, document) VALUES ($1, $2)`
	if _, err := exec.ExecContext(ctx, query, id, doc); err != nil {
		return fmt.Errorf("failed to store snapshot of %s: %w", id, err)
	}
	return nil
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "tournaments_pkey" {
				return ErrTournamentExists
			}
		}
	}
	return err
}
