package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/ranking"
	"github.com/Dosada05/padel-tournament/repositories"
	"golang.org/x/sync/errgroup"
)

// RankingOverview is the landing view of a template: ranking plus its events.
type RankingOverview struct {
	Template models.Template                  `json:"template"`
	Ranking  []ranking.PlayerStanding         `json:"ranking"`
	Events   []repositories.TournamentSummary `json:"events"`
	Dates    []string                         `json:"dates"`
}

type RankingService interface {
	Ranking(ctx context.Context, templateID string) ([]ranking.PlayerStanding, error)
	Players(ctx context.Context, templateID string) ([]ranking.PlayerStanding, error)
	Overview(ctx context.Context, templateID string) (*RankingOverview, error)
	PointsMap(ctx context.Context, templateID string) (map[string]int, error)
}

type rankingService struct {
	resultRepo     repositories.ResultRepository
	tournamentRepo repositories.TournamentRepository
}

func NewRankingService(resultRepo repositories.ResultRepository, tournamentRepo repositories.TournamentRepository) RankingService {
	return &rankingService{resultRepo: resultRepo, tournamentRepo: tournamentRepo}
}

func (s *rankingService) expanded(ctx context.Context, templateID string) ([]ranking.PlayerResult, error) {
	tpl, ok := models.LookupTemplate(templateID)
	if !ok {
		return nil, ErrUnknownTemplate
	}
	// Шаблоны без истории результатов дают пустой рейтинг.
	if !tpl.TracksResults {
		return []ranking.PlayerResult{}, nil
	}
	results, err := s.resultRepo.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results of template %s: %w", templateID, err)
	}
	return ranking.Expand(results), nil
}

func (s *rankingService) Ranking(ctx context.Context, templateID string) ([]ranking.PlayerStanding, error) {
	expanded, err := s.expanded(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return ranking.WithMomentum(expanded), nil
}

func (s *rankingService) Players(ctx context.Context, templateID string) ([]ranking.PlayerStanding, error) {
	expanded, err := s.expanded(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return ranking.WithPartners(expanded), nil
}

func (s *rankingService) PointsMap(ctx context.Context, templateID string) (map[string]int, error) {
	expanded, err := s.expanded(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return ranking.PointsMap(expanded), nil
}

func (s *rankingService) Overview(ctx context.Context, templateID string) (*RankingOverview, error) {
	tpl, ok := models.LookupTemplate(templateID)
	if !ok {
		return nil, ErrUnknownTemplate
	}

	var (
		expanded []ranking.PlayerResult
		events   []repositories.TournamentSummary
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expanded, err = s.expanded(gCtx, templateID)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.tournamentRepo.ListByTemplate(gCtx, templateID)
		if err != nil {
			return fmt.Errorf("failed to list events of template %s: %w", templateID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []repositories.TournamentSummary{}
	}

	dates := make([]string, 0)
	for _, k := range ranking.EventDates(expanded) {
		dates = append(dates, k.ISODate())
	}
	return &RankingOverview{
		Template: tpl,
		Ranking:  ranking.WithMomentum(expanded),
		Events:   events,
		Dates:    dates,
	}, nil
}
