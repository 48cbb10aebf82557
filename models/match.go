package models

import (
	"encoding/json"
	"fmt"
)

// Phase tags the kind of a match.
type Phase string

const (
	PhaseGroups Phase = "groups"
	PhaseFinals Phase = "finals"
	PhaseUpDown Phase = "updown"
)

// MatchBase holds the fields every match variant shares.
type MatchBase struct {
	Round int    `json:"round"`
	TeamA string `json:"team_a"`
	TeamB string `json:"team_b"`
	Court string `json:"court"`
	Score Score  `json:"score"`
}

func (m *MatchBase) Base() *MatchBase { return m }

// Winner returns the winning and losing team. ok is false unless the score is decisive.
func (m *MatchBase) Winner() (winner, loser string, ok bool) {
	switch m.Score.Outcome() {
	case WinA:
		return m.TeamA, m.TeamB, true
	case WinB:
		return m.TeamB, m.TeamA, true
	default:
		return "", "", false
	}
}

// Match is one of *GroupMatch, *FinalsMatch or *LadderMatch.
type Match interface {
	Phase() Phase
	Base() *MatchBase
}

// GroupMatch is a group stage (or league) game. League games have no group label.
type GroupMatch struct {
	MatchBase
	Group string `json:"group,omitempty"`
}

func (m *GroupMatch) Phase() Phase { return PhaseGroups }

// FinalsMatch is a crossover (round 4) or placement (round 5) game.
type FinalsMatch struct {
	MatchBase
	Placement string `json:"placement,omitempty"`
}

func (m *FinalsMatch) Phase() Phase { return PhaseFinals }

// LadderMatch is a game of the up/down format.
type LadderMatch struct {
	MatchBase
}

func (m *LadderMatch) Phase() Phase { return PhaseUpDown }

// CloneMatch returns a deep copy of m.
func CloneMatch(m Match) Match {
	switch v := m.(type) {
	case *GroupMatch:
		c := *v
		return &c
	case *FinalsMatch:
		c := *v
		return &c
	case *LadderMatch:
		c := *v
		return &c
	default:
		return m
	}
}

// matchRecord is the flat persisted form of any match variant.
type matchRecord struct {
	Phase     Phase  `json:"phase,omitempty"`
	Round     int    `json:"round"`
	TeamA     string `json:"team_a"`
	TeamB     string `json:"team_b"`
	Court     string `json:"court"`
	Score     Score  `json:"score"`
	Group     string `json:"group,omitempty"`
	Placement string `json:"placement,omitempty"`
}

func toRecord(m Match) matchRecord {
	b := m.Base()
	rec := matchRecord{
		Phase: m.Phase(),
		Round: b.Round,
		TeamA: b.TeamA,
		TeamB: b.TeamB,
		Court: b.Court,
		Score: b.Score,
	}
	switch v := m.(type) {
	case *GroupMatch:
		rec.Group = v.Group
	case *FinalsMatch:
		rec.Placement = v.Placement
	}
	return rec
}

func fromRecord(rec matchRecord) (Match, error) {
	base := MatchBase{
		Round: rec.Round,
		TeamA: rec.TeamA,
		TeamB: rec.TeamB,
		Court: rec.Court,
		Score: rec.Score,
	}
	switch rec.Phase {
	case PhaseGroups, "":
		return &GroupMatch{MatchBase: base, Group: rec.Group}, nil
	case PhaseFinals:
		return &FinalsMatch{MatchBase: base, Placement: rec.Placement}, nil
	case PhaseUpDown:
		return &LadderMatch{MatchBase: base}, nil
	default:
		return nil, fmt.Errorf("unknown match phase %q", rec.Phase)
	}
}

// MatchList is an ordered list of matches with a tagged JSON form.
type MatchList []Match

func (l MatchList) MarshalJSON() ([]byte, error) {
	recs := make([]matchRecord, 0, len(l))
	for _, m := range l {
		recs = append(recs, toRecord(m))
	}
	return json.Marshal(recs)
}

func (l *MatchList) UnmarshalJSON(data []byte) error {
	var recs []matchRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return err
	}
	out := make(MatchList, 0, len(recs))
	for _, rec := range recs {
		m, err := fromRecord(rec)
		if err != nil {
			return err
		}
		out = append(out, m)
	}
	*l = out
	return nil
}

// Clone returns a deep copy of the list.
func (l MatchList) Clone() MatchList {
	out := make(MatchList, 0, len(l))
	for _, m := range l {
		out = append(out, CloneMatch(m))
	}
	return out
}
