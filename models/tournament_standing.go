package models

// StandingRow is one line of a group or league table.
type StandingRow struct {
	Position     int    `json:"position"`
	Seed         int    `json:"seed"`
	Team         string `json:"team"`
	Played       int    `json:"played"`
	Points       int    `json:"points"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GamesFor     int    `json:"games_for"`
	GamesAgainst int    `json:"games_against"`
	Diff         int    `json:"diff"`
	// HeadToHead is only set when another team in the table has the same points.
	HeadToHead *int `json:"head_to_head,omitempty"`
}

// Placement is a final position of an event.
type Placement struct {
	Position int    `json:"position"`
	Team     string `json:"team"`
}
