package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/ranking"
	"github.com/Dosada05/padel-tournament/repositories"
	"github.com/Dosada05/padel-tournament/utils"
)

// StandingsView holds the live tables of an event: per group, or one league table.
type StandingsView struct {
	Groups map[string][]models.StandingRow `json:"groups,omitempty"`
	League []models.StandingRow            `json:"league,omitempty"`
}

// RoundResultsOutcome reports what saving a round changed besides the scores.
type RoundResultsOutcome struct {
	Tournament       *models.Tournament `json:"tournament"`
	NextRoundBuilt   bool               `json:"next_round_built"`
	PlacementRebuilt bool               `json:"placement_rebuilt"`
}

type TournamentService interface {
	OpenEvent(ctx context.Context, org Organizer, templateID string, date models.EventDate) (*models.Tournament, bool, error)
	GetTournament(ctx context.Context, id string) (*models.Tournament, error)
	ListEvents(ctx context.Context, templateID string) ([]repositories.TournamentSummary, error)

	SetFormat(ctx context.Context, org Organizer, id string, code models.FormatCode, expectedPairs int) (*models.Tournament, error)
	SetPairs(ctx context.Context, org Organizer, id string, pairs [][2]string) (*models.Tournament, error)
	SetCourts(ctx context.Context, org Organizer, id string, courts []string) (*models.Tournament, error)
	GenerateSchedule(ctx context.Context, org Organizer, id string) (*models.Tournament, error)
	SaveRoundResults(ctx context.Context, org Organizer, id string, round int, scores []string) (*RoundResultsOutcome, error)
	GenerateFinals(ctx context.Context, org Organizer, id string) (*models.Tournament, error)
	RegenerateLadder(ctx context.Context, org Organizer, id string) (*models.Tournament, error)
	AdvanceLadder(ctx context.Context, org Organizer, id string, round int) (*models.Tournament, error)
	Close(ctx context.Context, org Organizer, id string) (*models.Tournament, error)
	Delete(ctx context.Context, org Organizer, id string) error

	Standings(ctx context.Context, id string) (*StandingsView, error)
	FinalClassification(ctx context.Context, id string) ([]models.Placement, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	resultRepo     repositories.ResultRepository
	rankingService RankingService
	notifier       Notifier
	shuffler       brackets.Shuffler
	logger         *slog.Logger
	locks          *keyedMutex
	now            func() time.Time
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	resultRepo repositories.ResultRepository,
	rankingService RankingService,
	notifier Notifier,
	shuffler brackets.Shuffler,
	logger *slog.Logger,
) TournamentService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if shuffler == nil {
		shuffler = brackets.NewRandomShuffler()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		resultRepo:     resultRepo,
		rankingService: rankingService,
		notifier:       notifier,
		shuffler:       shuffler,
		logger:         logger,
		locks:          newKeyedMutex(),
		now:            time.Now,
	}
}

func (s *tournamentService) load(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %s: %w", id, err)
	}
	return t, nil
}

func (s *tournamentService) broadcast(t *models.Tournament) {
	s.notifier.BroadcastToRoom(brackets.RoomForTournament(t.ID), brackets.WebSocketMessage{
		Type:    brackets.MessageTournamentUpdated,
		Payload: t,
		RoomID:  brackets.RoomForTournament(t.ID),
	})
}

// mutate runs fn on a copy of the tournament under its lock and saves the copy
// only when fn succeeds.
func (s *tournamentService) mutate(ctx context.Context, org Organizer, id string, fn func(ctx context.Context, t *models.Tournament) error) (*models.Tournament, error) {
	if !org.Valid() {
		return nil, ErrForbiddenOperation
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.State == models.StateClosed {
		return nil, ErrTournamentClosed
	}

	work := current.Clone()
	if err := fn(ctx, work); err != nil {
		return nil, err
	}
	if !isValidStateTransition(current.State, work.State) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, current.State, work.State)
	}
	work.RebuildMatches()
	work.UpdatedAt = s.now().UTC()

	if err := s.tournamentRepo.Save(ctx, work); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to save tournament %s: %w", id, err)
	}
	s.broadcast(work)
	return work, nil
}

func formatOf(t *models.Tournament) (models.Format, error) {
	if t.Format == "" {
		return models.Format{}, ErrFormatNotSet
	}
	format, ok := models.LookupFormat(t.Format)
	if !ok {
		return models.Format{}, fmt.Errorf("%w: %s", ErrUnknownFormat, t.Format)
	}
	return format, nil
}

// unschedule drops generated rounds so setup data can change. Recorded results block it.
func unschedule(t *models.Tournament) error {
	if hasRecordedResults(t) {
		return ErrScheduleLocked
	}
	if len(t.Rounds) > 0 {
		t.Rounds = nil
		t.SetNotice(models.NoticeRounds, "Jornadas removidas; gere novamente após as alterações.")
	}
	t.State = models.StateSetup
	return nil
}

func (s *tournamentService) OpenEvent(ctx context.Context, org Organizer, templateID string, date models.EventDate) (*models.Tournament, bool, error) {
	if !org.Valid() {
		return nil, false, ErrForbiddenOperation
	}
	tpl, ok := models.LookupTemplate(templateID)
	if !ok {
		return nil, false, ErrUnknownTemplate
	}
	if !date.Valid() {
		return nil, false, ErrInvalidDate
	}

	id := models.EventID(tpl.ID, date)
	unlock := s.locks.Lock(id)
	defer unlock()

	existing, err := s.load(ctx, id)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrTournamentNotFound) {
		return nil, false, err
	}

	now := s.now().UTC()
	t := &models.Tournament{
		ID:         id,
		Name:       models.EventName(tpl, date),
		TemplateID: tpl.ID,
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
		State:      models.StateSetup,
		Pairs:      []models.Pair{},
		Courts:     []string{},
		Rounds:     []models.Round{},
		Matches:    models.MatchList{},
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentExists) {
			existing, loadErr := s.load(ctx, id)
			return existing, false, loadErr
		}
		return nil, false, fmt.Errorf("failed to create tournament %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "event opened", "tournament_id", id, "template_id", tpl.ID)
	return t, true, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	return s.load(ctx, id)
}

func (s *tournamentService) ListEvents(ctx context.Context, templateID string) ([]repositories.TournamentSummary, error) {
	if _, ok := models.LookupTemplate(templateID); !ok {
		return nil, ErrUnknownTemplate
	}
	events, err := s.tournamentRepo.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events of template %s: %w", templateID, err)
	}
	if events == nil {
		return []repositories.TournamentSummary{}, nil
	}
	return events, nil
}

func (s *tournamentService) SetFormat(ctx context.Context, org Organizer, id string, code models.FormatCode, expectedPairs int) (*models.Tournament, error) {
	return s.mutate(ctx, org, id, func(ctx context.Context, t *models.Tournament) error {
		format, ok := models.LookupFormat(code)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownFormat, code)
		}
		expected := format.PairsFor(expectedPairs)
		if format.IsLadder() && (expected < models.MinLadderPairs || expected%2 != 0) {
			return fmt.Errorf("%w: up & down needs an even number of pairs, at least %d", ErrInvalidPairs, models.MinLadderPairs)
		}
		if format.IsLadder() && expected > 2*len(models.AllCourts) {
			return fmt.Errorf("%w: up & down takes at most %d pairs, one game per court", ErrInvalidPairs, 2*len(models.AllCourts))
		}
		if err := unschedule(t); err != nil {
			return err
		}

		t.Format = format.Code
		t.ExpectedPairs = expected
		if len(t.Pairs) > expected {
			t.Pairs = t.Pairs[:expected]
		}
		t.Courts = models.DefaultCourts(format.CourtsFor(expected))
		if format.IsLadder() {
			t.Courts = models.OrderCourtsDesc(t.Courts)
		}
		t.SetNotice(models.NoticeFormat, fmt.Sprintf("Formato: %s, %d duplas.", format.Label, expected))
		return nil
	})
}

func cleanPairs(raw [][2]string, expected int) ([][2]string, error) {
	if len(raw) != expected {
		return nil, fmt.Errorf("%w: expected %d pairs, got %d", ErrInvalidPairs, expected, len(raw))
	}
	seen := make(map[string]bool, 2*len(raw))
	out := make([][2]string, 0, len(raw))
	for i, p := range raw {
		a, b := utils.CleanName(p[0]), utils.CleanName(p[1])
		if a == "" || b == "" {
			return nil, fmt.Errorf("%w: pair %d is incomplete", ErrInvalidPairs, i+1)
		}
		if strings.Contains(a, "/") || strings.Contains(b, "/") {
			return nil, fmt.Errorf("%w: player names cannot contain '/'", ErrInvalidPairs)
		}
		for _, player := range []string{a, b} {
			key := strings.ToLower(player)
			if seen[key] {
				return nil, fmt.Errorf("%w: %s appears twice", ErrInvalidPairs, player)
			}
			seen[key] = true
		}
		out = append(out, [2]string{a, b})
	}
	return out, nil
}

func (s *tournamentService) SetPairs(ctx context.Context, org Organizer, id string, pairs [][2]string) (*models.Tournament, error) {
	return s.mutate(ctx, org, id, func(ctx context.Context, t *models.Tournament) error {
		format, err := formatOf(t)
		if err != nil {
			return err
		}
		cleaned, err := cleanPairs(pairs, t.ExpectedPairs)
		if err != nil {
			return err
		}
		points, err := s.rankingService.PointsMap(ctx, t.TemplateID)
		if err != nil {
			return err
		}
		if err := unschedule(t); err != nil {
			return err
		}

		t.Pairs = ranking.SeedPairs(cleaned, points)
		if format.IsLadder() && len(t.Courts) != format.CourtsFor(len(t.Pairs)) {
			t.Courts = models.OrderCourtsDesc(models.DefaultCourts(format.CourtsFor(len(t.Pairs))))
		}
		t.SetNotice(models.NoticePairs, fmt.Sprintf("%d duplas registadas.", len(t.Pairs)))
		return nil
	})
}

func (s *tournamentService) SetCourts(ctx context.Context, org Organizer, id string, courts []string) (*models.Tournament, error) {
	return s.mutate(ctx, org, id, func(ctx context.Context, t *models.Tournament) error {
		format, err := formatOf(t)
		if err != nil {
			return err
		}
		required := format.CourtsFor(t.ExpectedPairs)
		if len(courts) != required {
			return fmt.Errorf("%w: expected %d courts, got %d", ErrInvalidCourts, required, len(courts))
		}
		seen := make(map[string]bool, len(courts))
		cleaned := make([]string, 0, len(courts))
		for _, c := range courts {
			c = strings.TrimSpace(c)
			if !models.IsKnownCourt(c) {
				return fmt.Errorf("%w: unknown court %q", ErrInvalidCourts, c)
			}
			if seen[c] {
				return fmt.Errorf("%w: %s chosen twice", ErrInvalidCourts, c)
			}
			seen[c] = true
			cleaned = append(cleaned, c)
		}
		if err := unschedule(t); err != nil {
			return err
		}

		if format.IsLadder() {
			cleaned = models.OrderCourtsDesc(cleaned)
		}
		t.Courts = cleaned
		t.SetNotice(models.NoticeCourts, fmt.Sprintf("%d campos definidos.", len(cleaned)))
		return nil
	})
}

func (s *tournamentService) GenerateSchedule(ctx context.Context, org Organizer, id string) (*models.Tournament, error) {
	return s.mutate(ctx, org, id, func(ctx context.Context, t *models.Tournament) error {
		format, err := formatOf(t)
		if err != nil {
			return err
		}
		if hasRecordedResults(t) {
			return ErrScheduleLocked
		}
		if len(t.Pairs) != t.ExpectedPairs {
			return fmt.Errorf("%w: expected %d pairs, got %d", ErrInvalidPairs, t.ExpectedPairs, len(t.Pairs))
		}
		if required := format.CourtsFor(t.ExpectedPairs); len(t.Courts) != required {
			return fmt.Errorf("%w: expected %d courts, got %d", ErrInvalidCourts, required, len(t.Courts))
		}

		points, err := s.rankingService.PointsMap(ctx, t.TemplateID)
		if err != nil {
			return err
		}
		t.Pairs = ranking.Reseed(t.Pairs, points)

		generator, err := brackets.GeneratorFor(format, s.shuffler)
		if err != nil {
			return err
		}
		rounds, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
			Format:        format,
			Pairs:         t.Pairs,
			Courts:        t.Courts,
			ExpectedPairs: t.ExpectedPairs,
		})
		if err != nil {
			return fmt.Errorf("%s generation failed: %w", generator.GetName(), err)
		}

		t.Rounds = rounds
		t.State = models.StateScheduled
		t.SetNotice(models.NoticeRounds, fmt.Sprintf("%d jornadas geradas.", len(rounds)))
		s.logger.InfoContext(ctx, "schedule generated",
			"tournament_id", t.ID, "format", format.Code, "generator", generator.GetName(), "rounds", len(rounds))
		return nil
	})
}

func parseScores(games models.MatchList, raw []string) ([]models.Score, error) {
	if len(raw) != len(games) {
		return nil, fmt.Errorf("%w: round has %d games, got %d scores", ErrInvalidScore, len(games), len(raw))
	}
	out := make([]models.Score, len(raw))
	for i, r := range raw {
		score := models.Score(strings.ReplaceAll(strings.TrimSpace(r), " ", ""))
		if score.IsBlank() {
			continue
		}
		if !score.Played() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidScore, r)
		}
		base := games[i].Base()
		if isPlaceholder(base.TeamA) || isPlaceholder(base.TeamB) {
			return nil, fmt.Errorf("%w: game %d has undecided teams", ErrInvalidScore, i+1)
		}
		out[i] = score
	}
	return out, nil
}

func roundHasScores(r *models.Round) bool {
	if r == nil {
		return false
	}
	for _, m := range r.Matches {
		if !m.Base().Score.IsBlank() {
			return true
		}
	}
	return false
}

func (s *tournamentService) SaveRoundResults(ctx context.Context, org Organizer, id string, round int, scores []string) (*RoundResultsOutcome, error) {
	outcome := &RoundResultsOutcome{}
	t, err := s.mutate(ctx, org, id, func(ctx context.Context, t *models.Tournament) error {
		if t.State != models.StateScheduled {
			return ErrNotScheduled
		}
		format, err := formatOf(t)
		if err != nil {
			return err
		}
		r := t.Round(round)
		if r == nil {
			return fmt.Errorf("round %d: %w", round, brackets.ErrRoundNotFound)
		}
		parsed, err := parseScores(r.Matches, scores)
		if err != nil {
			return err
		}
		for i, m := range r.Matches {
			m.Base().Score = parsed[i]
		}
		t.RebuildMatches()

		switch {
		case format.IsLadder() && round < models.TotalRounds:
			outcome.NextRoundBuilt = s.advanceAfterSave(ctx, t, round)
		case format.IsGrouped() && round == brackets.CrossoverRound:
			rebuilt, cleared := brackets.RecalculatePlacementRound(t)
			outcome.PlacementRebuilt = rebuilt
			if cleared > 0 {
				t.SetNotice(models.NoticeRounds, fmt.Sprintf("%d resultado(s) da ronda %d removido(s): os cruzamentos mudaram.", cleared, brackets.PlacementRound))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	outcome.Tournament = t
	return outcome, nil
}

// advanceAfterSave builds the next ladder round when the saved one is decided.
// A blocked advance is reported as a notice, never as an error.
func (s *tournamentService) advanceAfterSave(ctx context.Context, t *models.Tournament, round int) bool {
	if roundHasScores(t.Round(round + 1)) {
		t.SetNotice(models.NoticeRounds, fmt.Sprintf("Ronda %d já tem resultados e não foi recalculada.", round+1))
		return false
	}
	next, err := brackets.AdvanceLadder(t.Rounds, round, t.Courts)
	if err != nil {
		if !errors.Is(err, brackets.ErrIndecisiveResult) {
			s.logger.WarnContext(ctx, "ladder advance failed", "tournament_id", t.ID, "round", round, "error", err)
		}
		t.SetNotice(models.NoticeRounds, fmt.Sprintf("Ronda %d por completar: %v", round, err))
		return false
	}
	t.SetRound(next)
	t.RebuildMatches()
	t.SetNotice(models.NoticeRounds, fmt.Sprintf("Ronda %d gerada.", next.Number))
	return true
}

func (s *tournamentService) GenerateFinals(ctx context.Context, org Organizer, id string) (*models.Tournament, error) {
	return s.mutate(ctx, org, id, func(ctx context.Context, t *models.Tournament) error {
		format, err := formatOf(t)
		if err != nil {
			return err
		}
		if !format.IsGrouped() {
			return ErrWrongFormat
		}
		if t.State != models.StateScheduled {
			return ErrNotScheduled
		}
		for _, n := range []int{brackets.CrossoverRound, brackets.PlacementRound} {
			if roundHasScores(t.Round(n)) {
				return fmt.Errorf("round %d: %w", n, brackets.ErrRoundAlreadyScored)
			}
		}
		if err := brackets.ApplyCrossovers(t, t.SeedMap()); err != nil {
			return err
		}
		t.SetNotice(models.NoticeRounds, "Cruzamentos gerados a partir das classificações dos grupos.")
		return nil
	})
}

func (s *tournamentService) RegenerateLadder(ctx context.Context, org Organizer, id string) (*models.Tournament, error) {
	return s.mutate(ctx, org, id, func(ctx context.Context, t *models.Tournament) error {
		format, err := formatOf(t)
		if err != nil {
			return err
		}
		if !format.IsLadder() {
			return ErrWrongFormat
		}
		if t.State != models.StateScheduled {
			return ErrNotScheduled
		}
		if err := brackets.RegenerateFirstRound(t, s.shuffler); err != nil {
			return err
		}
		t.SetNotice(models.NoticeRounds, "Ronda 1 sorteada novamente.")
		return nil
	})
}

func (s *tournamentService) AdvanceLadder(ctx context.Context, org Organizer, id string, round int) (*models.Tournament, error) {
	return s.mutate(ctx, org, id, func(ctx context.Context, t *models.Tournament) error {
		format, err := formatOf(t)
		if err != nil {
			return err
		}
		if !format.IsLadder() {
			return ErrWrongFormat
		}
		if t.State != models.StateScheduled {
			return ErrNotScheduled
		}
		if roundHasScores(t.Round(round + 1)) {
			return fmt.Errorf("round %d: %w", round+1, brackets.ErrRoundAlreadyScored)
		}
		next, err := brackets.AdvanceLadder(t.Rounds, round, t.Courts)
		if err != nil {
			return err
		}
		t.SetRound(next)
		t.SetNotice(models.NoticeRounds, fmt.Sprintf("Ronda %d gerada.", next.Number))
		return nil
	})
}

func (s *tournamentService) Close(ctx context.Context, org Organizer, id string) (*models.Tournament, error) {
	return s.mutate(ctx, org, id, func(ctx context.Context, t *models.Tournament) error {
		if t.State != models.StateScheduled {
			return ErrNotScheduled
		}
		placements := brackets.FinalClassification(t)
		if len(placements) == 0 {
			return ErrClassificationIncomplete
		}
		for _, p := range placements {
			if isPlaceholder(p.Team) {
				return fmt.Errorf("%w: position %d is undecided", ErrClassificationIncomplete, p.Position)
			}
		}

		tpl, ok := models.LookupTemplate(t.TemplateID)
		if ok && tpl.TracksResults {
			results := make([]models.HistoricalResult, 0, len(placements))
			for _, p := range placements {
				results = append(results, models.HistoricalResult{
					TemplateID: t.TemplateID,
					Year:       t.Date.Year,
					Month:      models.MonthName(t.Date.Month),
					Day:        t.Date.Day,
					Position:   p.Position,
					Team:       p.Team,
				})
			}
			err := s.resultRepo.AppendEvent(ctx, t.ID, results)
			if err != nil && !errors.Is(err, repositories.ErrResultsAlreadyArchived) {
				return fmt.Errorf("failed to archive results of %s: %w", t.ID, err)
			}
		}

		t.State = models.StateClosed
		s.logger.InfoContext(ctx, "event closed", "tournament_id", t.ID, "placements", len(placements))
		return nil
	})
}

func (s *tournamentService) Delete(ctx context.Context, org Organizer, id string) error {
	if !org.Valid() {
		return ErrForbiddenOperation
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}
	room := brackets.RoomForTournament(id)
	s.notifier.BroadcastToRoom(room, brackets.WebSocketMessage{
		Type:    brackets.MessageTournamentDeleted,
		Payload: map[string]string{"id": id},
		RoomID:  room,
	})
	s.logger.InfoContext(ctx, "event deleted", "tournament_id", id)
	return nil
}

func (s *tournamentService) Standings(ctx context.Context, id string) (*StandingsView, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	format, err := formatOf(t)
	if err != nil {
		return &StandingsView{}, nil
	}
	switch {
	case format.Code == models.FormatLeague6:
		if len(t.Matches) == 0 {
			return &StandingsView{}, nil
		}
		return &StandingsView{League: brackets.LeagueTable(t)}, nil
	case format.IsGrouped():
		return &StandingsView{Groups: brackets.GroupTables(t, t.SeedMap())}, nil
	default:
		return &StandingsView{}, nil
	}
}

func (s *tournamentService) FinalClassification(ctx context.Context, id string) ([]models.Placement, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.FinalClassification(t), nil
}
