package models

import (
	"fmt"
	"sort"
	"time"
)

// TournamentState represents the lifecycle of an event.
type TournamentState string

const (
	StateSetup     TournamentState = "setup"
	StateScheduled TournamentState = "scheduled"
	StateClosed    TournamentState = "closed"
)

// TotalRounds is the number of rounds every format plays.
const TotalRounds = 5

// Notice sections shown to the organizer.
const (
	NoticeFormat = "format"
	NoticePairs  = "pairs"
	NoticeCourts = "courts"
	NoticeRounds = "rounds"
)

type EventDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d EventDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d EventDate) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

func (d EventDate) Valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && int(t.Month()) == d.Month && t.Day() == d.Day
}

// Pair is a doubles team. Name is "A / B".
type Pair struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Name string `json:"name"`
	Seed int    `json:"seed"`
}

type Round struct {
	Number  int       `json:"n"`
	Matches MatchList `json:"games"`
}

// Tournament is one event of a template, with its schedule and results.
type Tournament struct {
	ID            string            `json:"id" db:"id"`
	Name          string            `json:"name" db:"name"`
	TemplateID    string            `json:"template_id" db:"template_id"`
	Format        FormatCode        `json:"format,omitempty" db:"format"`
	ExpectedPairs int               `json:"expected_pairs,omitempty"`
	Date          EventDate         `json:"date"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
	State         TournamentState   `json:"state" db:"state"`
	Pairs         []Pair            `json:"pairs"`
	Courts        []string          `json:"courts"`
	Rounds        []Round           `json:"rounds"`
	Matches       MatchList         `json:"matches"`
	Notices       map[string]string `json:"notices,omitempty"`
}

// RebuildMatches flattens rounds into Matches. Call it after every rounds mutation.
func (t *Tournament) RebuildMatches() {
	all := make(MatchList, 0)
	for _, r := range t.Rounds {
		all = append(all, r.Matches...)
	}
	t.Matches = all
}

// Round returns the round with number n, or nil.
func (t *Tournament) Round(n int) *Round {
	for i := range t.Rounds {
		if t.Rounds[i].Number == n {
			return &t.Rounds[i]
		}
	}
	return nil
}

// SetRound replaces round r.Number, or appends it, keeping rounds sorted.
func (t *Tournament) SetRound(r Round) {
	if existing := t.Round(r.Number); existing != nil {
		*existing = r
	} else {
		t.Rounds = append(t.Rounds, r)
	}
	sort.SliceStable(t.Rounds, func(i, j int) bool { return t.Rounds[i].Number < t.Rounds[j].Number })
}

func (t *Tournament) PairNames() []string {
	out := make([]string, 0, len(t.Pairs))
	for _, p := range t.Pairs {
		out = append(out, p.Name)
	}
	return out
}

// SeedMap maps pair names to their seed points.
func (t *Tournament) SeedMap() map[string]int {
	out := make(map[string]int, len(t.Pairs))
	for _, p := range t.Pairs {
		out[p.Name] = p.Seed
	}
	return out
}

func (t *Tournament) SetNotice(section, message string) {
	if t.Notices == nil {
		t.Notices = make(map[string]string)
	}
	if message == "" {
		delete(t.Notices, section)
		return
	}
	t.Notices[section] = message
}

// Clone returns a deep copy, so engines can work on a tournament without touching the original.
func (t *Tournament) Clone() *Tournament {
	c := *t
	c.Pairs = append([]Pair(nil), t.Pairs...)
	c.Courts = append([]string(nil), t.Courts...)
	c.Rounds = make([]Round, len(t.Rounds))
	for i, r := range t.Rounds {
		c.Rounds[i] = Round{Number: r.Number, Matches: r.Matches.Clone()}
	}
	if t.Notices != nil {
		c.Notices = make(map[string]string, len(t.Notices))
		for k, v := range t.Notices {
			c.Notices[k] = v
		}
	}
	c.RebuildMatches()
	return &c
}
