package handlers

import (
	"net/http"

	"github.com/Dosada05/padel-tournament/models"
)

// FormatHandler serves the static catalogs: formats, courts and templates.
type FormatHandler struct{}

func NewFormatHandler() *FormatHandler {
	return &FormatHandler{}
}

// ListFormats godoc
// @Summary Список форматов турнира
// @Tags formats
// @Produce json
// @Success 200 {array} models.Format
// @Router /formats [get]
func (h *FormatHandler) ListFormats(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, models.Formats(), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListCourts godoc
// @Summary Список кортов клуба по старшинству
// @Tags formats
// @Produce json
// @Success 200 {array} string
// @Router /courts [get]
func (h *FormatHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, models.DefaultCourts(len(models.AllCourts)), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListTemplates godoc
// @Summary Список шаблонов турниров
// @Tags templates
// @Produce json
// @Success 200 {array} models.Template
// @Router /templates [get]
func (h *FormatHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, models.Templates(), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
