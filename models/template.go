package models

import "fmt"

// Template is a recurring tournament slot of the club. Every event belongs to one.
type Template struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
	// TracksResults marks templates whose closed events feed the player ranking.
	TracksResults bool `json:"tracks_results"`
}

var templates = []Template{
	{ID: "F5.2_20SEX", Name: "PADEL4ALL EUL F5.2 / 6ª - Feira / 20h", Gender: "Feminino", TracksResults: true},
	{ID: "M5.2_1830DOM", Name: "PADEL4ALL EUL M5.2 / Dom / 18h30", Gender: "Masculino", TracksResults: true},
	{ID: "M3.2_20DOM", Name: "PADEL4ALL EUL M3.2 / Dom / 20h", Gender: "Masculino"},
}

func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

func LookupTemplate(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// EventID builds the identifier of the template's event on the given date.
func EventID(templateID string, date EventDate) string {
	return fmt.Sprintf("%s_%s", templateID, date.Compact())
}

// EventName builds the display name of the template's event on the given date.
func EventName(t Template, date EventDate) string {
	return fmt.Sprintf("%s — %s", t.Name, date.String())
}

// MonthOrder lists month names as stored in historical results.
var MonthOrder = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// MonthIndex returns the zero-based month index of a month name, or -1.
func MonthIndex(name string) int {
	for i, m := range MonthOrder {
		if m == name {
			return i
		}
	}
	return -1
}

// MonthName returns the month name for a 1-based month number.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprint(month)
	}
	return MonthOrder[month-1]
}

// HistoricalResult is one finishing position of a past event.
type HistoricalResult struct {
	TemplateID string `json:"template_id" db:"template_id"`
	Year       int    `json:"year" db:"year"`
	Month      string `json:"month" db:"month"`
	Day        int    `json:"day" db:"day"`
	Position   int    `json:"position" db:"position"`
	Team       string `json:"team" db:"team"`
}
