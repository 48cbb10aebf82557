package handlers

import (
	"net/http"

	"github.com/Dosada05/padel-tournament/services"
	"github.com/go-chi/chi/v5"
)

type RankingHandler struct {
	rankingService services.RankingService
}

func NewRankingHandler(rs services.RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rs}
}

// GetRanking godoc
// @Summary Рейтинг игроков шаблона
// @Tags ranking
// @Description Накопленные очки, участия, среднее и изменение позиции после последнего турнира.
// @Produce json
// @Param templateID path string true "ID шаблона"
// @Success 200 {object} services.RankingOverview
// @Failure 404 {object} map[string]string "Шаблон не найден"
// @Router /templates/{templateID}/ranking [get]
func (h *RankingHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	overview, err := h.rankingService.Overview(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, overview, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPlayers godoc
// @Summary Игроки шаблона с частыми партнёрами
// @Tags ranking
// @Produce json
// @Param templateID path string true "ID шаблона"
// @Success 200 {array} ranking.PlayerStanding
// @Failure 404 {object} map[string]string "Шаблон не найден"
// @Router /templates/{templateID}/players [get]
func (h *RankingHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.rankingService.Players(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, players, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
