package models

// FormatCode identifies one of the supported tournament formats.
type FormatCode string

const (
	FormatLeague6   FormatCode = "LIGA6"
	FormatGroups2x4 FormatCode = "G2x4"
	FormatGroups3x4 FormatCode = "G3x4"
	FormatGroups4x4 FormatCode = "G4x4"
	FormatUpDown    FormatCode = "UPDOWN"
)

// MinLadderPairs is the smallest field the UPDOWN format accepts.
const MinLadderPairs = 4

// Format describes team count, group layout and court needs of a format.
// Teams == 0 means the field size is chosen per event (UPDOWN).
type Format struct {
	Code           FormatCode `json:"code"`
	Label          string     `json:"label"`
	Teams          int        `json:"teams"`
	Groups         int        `json:"groups,omitempty"`
	GroupSize      int        `json:"group_size,omitempty"`
	RequiredCourts int        `json:"required_courts"`
	Description    string     `json:"description"`
}

var formats = []Format{
	{
		Code:           FormatLeague6,
		Label:          "Liga Clássica (6 Equipas)",
		Teams:          6,
		RequiredCourts: 3,
		Description:    "Todos contra todos; 5 jornadas; 3 jogos/jornada",
	},
	{
		Code:           FormatGroups2x4,
		Label:          "Fase de Grupos: 2 Grupos de 4",
		Teams:          8,
		Groups:         2,
		GroupSize:      4,
		RequiredCourts: 4,
		Description:    "2 grupos; 3 jornadas; meias-finais cruzadas; total 5 jogos",
	},
	{
		Code:           FormatGroups3x4,
		Label:          "Fase de Grupos: 3 Grupos de 4",
		Teams:          12,
		Groups:         3,
		GroupSize:      4,
		RequiredCourts: 6,
		Description:    "3 grupos; 3 jornadas; potes finais; total 5 jogos",
	},
	{
		Code:           FormatGroups4x4,
		Label:          "Fase de Grupos: 4 Grupos de 4",
		Teams:          16,
		Groups:         4,
		GroupSize:      4,
		RequiredCourts: 8,
		Description:    "4 grupos; 3 jornadas; potes finais; total 5 jogos",
	},
	{
		Code:        FormatUpDown,
		Label:       "Torneio Americano (Up & Down)",
		Description: "Formato dinâmico por campos, com subidas/descidas",
	},
}

// Formats returns the supported formats in display order.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

func LookupFormat(code FormatCode) (Format, bool) {
	for _, f := range formats {
		if f.Code == code {
			return f, true
		}
	}
	return Format{}, false
}

func (f Format) IsGrouped() bool {
	return f.Groups > 0
}

func (f Format) IsLadder() bool {
	return f.Code == FormatUpDown
}

// CourtsFor returns how many courts an event with the given field needs.
func (f Format) CourtsFor(pairs int) int {
	if f.IsLadder() {
		return pairs / 2
	}
	return f.RequiredCourts
}

// PairsFor returns the field size for the format; dynamic formats keep the requested size.
func (f Format) PairsFor(requested int) int {
	if f.Teams > 0 {
		return f.Teams
	}
	return requested
}
