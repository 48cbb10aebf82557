package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
	exportService     services.ExportService
}

func NewTournamentHandler(ts services.TournamentService, es services.ExportService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts, exportService: es}
}

type OpenEventInput struct {
	Date string `json:"date" example:"2025-03-14"`
}

type SetFormatInput struct {
	Format        models.FormatCode `json:"format" example:"G2x4"`
	ExpectedPairs int               `json:"expected_pairs,omitempty"`
}

type PairInput struct {
	A string `json:"a"`
	B string `json:"b"`
}

type SetPairsInput struct {
	Pairs []PairInput `json:"pairs"`
}

type SetCourtsInput struct {
	Courts []string `json:"courts"`
}

type RoundResultsInput struct {
	// Scores в порядке игр раунда, "6-4"; пустая строка означает «не сыграно».
	Scores []string `json:"scores"`
}

func parseEventDate(raw string) (models.EventDate, error) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return models.EventDate{}, errors.New("date must be formatted as yyyy-mm-dd")
	}
	return models.EventDate{Year: d.Year(), Month: int(d.Month()), Day: d.Day()}, nil
}

func (h *TournamentHandler) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}, err error) {
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, status, data, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// OpenEvent godoc
// @Summary Открыть турнир шаблона на дату
// @Tags tournaments
// @Description Создаёт турнир (шаблон, дата) или возвращает уже существующий.
// @Accept json
// @Produce json
// @Param templateID path string true "ID шаблона"
// @Param body body OpenEventInput true "Дата турнира"
// @Success 201 {object} models.Tournament "Турнир создан"
// @Success 200 {object} models.Tournament "Турнир уже существовал"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 404 {object} map[string]string "Шаблон не найден"
// @Security BearerAuth
// @Router /templates/{templateID}/events [post]
func (h *TournamentHandler) OpenEvent(w http.ResponseWriter, r *http.Request) {
	var input OpenEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	date, err := parseEventDate(input.Date)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	t, created, err := h.tournamentService.OpenEvent(r.Context(), organizerFromRequest(r), chi.URLParam(r, "templateID"), date)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.respond(w, r, status, t, err)
}

// ListEvents godoc
// @Summary Турниры шаблона
// @Tags tournaments
// @Produce json
// @Param templateID path string true "ID шаблона"
// @Success 200 {array} repositories.TournamentSummary
// @Failure 404 {object} map[string]string "Шаблон не найден"
// @Router /templates/{templateID}/events [get]
func (h *TournamentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.tournamentService.ListEvents(r.Context(), chi.URLParam(r, "templateID"))
	h.respond(w, r, http.StatusOK, events, err)
}

// GetTournament godoc
// @Summary Получить турнир
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} models.Tournament
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	t, err := h.tournamentService.GetTournament(r.Context(), chi.URLParam(r, "tournamentID"))
	h.respond(w, r, http.StatusOK, t, err)
}

// GetStandings godoc
// @Summary Таблицы групп или лиги
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} services.StandingsView
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID}/groups [get]
func (h *TournamentHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	view, err := h.tournamentService.Standings(r.Context(), chi.URLParam(r, "tournamentID"))
	h.respond(w, r, http.StatusOK, view, err)
}

// GetClassification godoc
// @Summary Итоговая классификация
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {array} models.Placement
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Router /tournaments/{tournamentID}/classification [get]
func (h *TournamentHandler) GetClassification(w http.ResponseWriter, r *http.Request) {
	placements, err := h.tournamentService.FinalClassification(r.Context(), chi.URLParam(r, "tournamentID"))
	h.respond(w, r, http.StatusOK, placements, err)
}

// SetFormat godoc
// @Summary Выбрать формат турнира
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param body body SetFormatInput true "Формат и число пар (для UPDOWN)"
// @Success 200 {object} models.Tournament
// @Failure 409 {object} map[string]string "Уже есть результаты"
// @Failure 422 {object} map[string]string "Неизвестный формат"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/format [put]
func (h *TournamentHandler) SetFormat(w http.ResponseWriter, r *http.Request) {
	var input SetFormatInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.SetFormat(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"), input.Format, input.ExpectedPairs)
	h.respond(w, r, http.StatusOK, t, err)
}

// SetPairs godoc
// @Summary Записать пары
// @Tags tournaments
// @Description Пары сортируются по сумме очков рейтинга игроков.
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param body body SetPairsInput true "Пары"
// @Success 200 {object} models.Tournament
// @Failure 422 {object} map[string]string "Неполные или лишние пары"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/pairs [put]
func (h *TournamentHandler) SetPairs(w http.ResponseWriter, r *http.Request) {
	var input SetPairsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	pairs := make([][2]string, 0, len(input.Pairs))
	for _, p := range input.Pairs {
		pairs = append(pairs, [2]string{p.A, p.B})
	}
	t, err := h.tournamentService.SetPairs(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"), pairs)
	h.respond(w, r, http.StatusOK, t, err)
}

// SetCourts godoc
// @Summary Выбрать корты
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param body body SetCourtsInput true "Корты"
// @Success 200 {object} models.Tournament
// @Failure 422 {object} map[string]string "Неверное число или неизвестный корт"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/courts [put]
func (h *TournamentHandler) SetCourts(w http.ResponseWriter, r *http.Request) {
	var input SetCourtsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.SetCourts(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"), input.Courts)
	h.respond(w, r, http.StatusOK, t, err)
}

// GenerateSchedule godoc
// @Summary Сгенерировать раунды
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} models.Tournament
// @Failure 409 {object} map[string]string "Формат не выбран или уже есть результаты"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/schedule [post]
func (h *TournamentHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	t, err := h.tournamentService.GenerateSchedule(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"))
	h.respond(w, r, http.StatusOK, t, err)
}

// SaveRoundResults godoc
// @Summary Сохранить результаты раунда
// @Tags tournaments
// @Description В UPDOWN следующий раунд строится автоматически, когда все игры решены.
// @Accept json
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param round path int true "Номер раунда"
// @Param body body RoundResultsInput true "Счета"
// @Success 200 {object} services.RoundResultsOutcome
// @Failure 404 {object} map[string]string "Раунд не найден"
// @Failure 422 {object} map[string]string "Неверный счёт"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/rounds/{round}/results [put]
func (h *TournamentHandler) SaveRoundResults(w http.ResponseWriter, r *http.Request) {
	round, err := intURLParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input RoundResultsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	outcome, err := h.tournamentService.SaveRoundResults(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"), round, input.Scores)
	h.respond(w, r, http.StatusOK, outcome, err)
}

// GenerateFinals godoc
// @Summary Построить кроссоверы и матчи за места
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} models.Tournament
// @Failure 409 {object} map[string]string "Формат без групп или финалы уже сыграны"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/finals [post]
func (h *TournamentHandler) GenerateFinals(w http.ResponseWriter, r *http.Request) {
	t, err := h.tournamentService.GenerateFinals(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"))
	h.respond(w, r, http.StatusOK, t, err)
}

// RegenerateLadder godoc
// @Summary Пересортировать первый раунд UPDOWN
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} models.Tournament
// @Failure 409 {object} map[string]string "Уже есть результаты"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/ladder/regenerate [post]
func (h *TournamentHandler) RegenerateLadder(w http.ResponseWriter, r *http.Request) {
	t, err := h.tournamentService.RegenerateLadder(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"))
	h.respond(w, r, http.StatusOK, t, err)
}

// AdvanceLadder godoc
// @Summary Построить следующий раунд UPDOWN
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Param round path int true "Сыгранный раунд"
// @Success 200 {object} models.Tournament
// @Failure 409 {object} map[string]string "Раунд не решён"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/ladder/rounds/{round}/advance [post]
func (h *TournamentHandler) AdvanceLadder(w http.ResponseWriter, r *http.Request) {
	round, err := intURLParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournamentService.AdvanceLadder(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"), round)
	h.respond(w, r, http.StatusOK, t, err)
}

// CloseTournament godoc
// @Summary Закрыть турнир
// @Tags tournaments
// @Description Архивирует итоговую классификацию в историю рейтинга.
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 200 {object} models.Tournament
// @Failure 409 {object} map[string]string "Классификация не завершена"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/close [post]
func (h *TournamentHandler) CloseTournament(w http.ResponseWriter, r *http.Request) {
	t, err := h.tournamentService.Close(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"))
	h.respond(w, r, http.StatusOK, t, err)
}

// ExportTournament godoc
// @Summary Экспорт классификации в хранилище
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "ID турнира"
// @Success 201 {object} services.ExportResult
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/export [post]
func (h *TournamentHandler) ExportTournament(w http.ResponseWriter, r *http.Request) {
	result, err := h.exportService.Export(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID"))
	h.respond(w, r, http.StatusCreated, result, err)
}

// DeleteTournament godoc
// @Summary Удалить турнир
// @Tags tournaments
// @Param tournamentID path string true "ID турнира"
// @Success 204 "Турнир удалён"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /tournaments/{tournamentID} [delete]
func (h *TournamentHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	if err := h.tournamentService.Delete(r.Context(), organizerFromRequest(r), chi.URLParam(r, "tournamentID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
