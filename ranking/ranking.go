// Package ranking turns historical event results into cumulative player standings.
package ranking

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Dosada05/padel-tournament/models"
)

const partnersShown = 5

var slashSpacing = regexp.MustCompile(`\s*/\s*`)

// NormalizeTeam rewrites a team name to the canonical "A / B" form.
func NormalizeTeam(team string) string {
	parts := strings.Split(slashSpacing.ReplaceAllString(strings.TrimSpace(team), " / "), "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, " / ")
}

// SplitTeam returns both players of a team. A name without exactly one "/" is a single player.
func SplitTeam(team string) (string, string) {
	parts := strings.Split(team, "/")
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(team), ""
}

// EventKey identifies an event by its date.
type EventKey struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
	Day   int    `json:"day"`
}

func (k EventKey) sortKey() (int, int, int) {
	mi := models.MonthIndex(k.Month)
	if mi < 0 {
		mi = 99
	}
	return k.Year, mi, k.Day
}

func (k EventKey) before(o EventKey) bool {
	ay, am, ad := k.sortKey()
	by, bm, bd := o.sortKey()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// ISODate renders the event date, falling back to the raw month for unknown names.
func (k EventKey) ISODate() string {
	if mi := models.MonthIndex(k.Month); mi >= 0 {
		return fmt.Sprintf("%04d-%02d-%02d", k.Year, mi+1, k.Day)
	}
	return fmt.Sprintf("%04d-%s-%02d", k.Year, k.Month, k.Day)
}

// PlayerResult is the share of one player in one event result.
type PlayerResult struct {
	Event    EventKey `json:"event"`
	Team     string   `json:"team"`
	Player   string   `json:"player"`
	Position int      `json:"position"`
	Points   int      `json:"points"`
}

// Expand scores every historical result and credits both players of the team.
// The field size of an event is the number of results sharing its date.
// Output is ordered newest event first, then by position.
func Expand(results []models.HistoricalResult) []PlayerResult {
	byEvent := make(map[EventKey][]models.HistoricalResult)
	for _, r := range results {
		k := EventKey{Year: r.Year, Month: strings.TrimSpace(r.Month), Day: r.Day}
		byEvent[k] = append(byEvent[k], r)
	}

	out := make([]PlayerResult, 0, len(results)*2)
	for k, rows := range byEvent {
		field := len(rows)
		for _, r := range rows {
			team := NormalizeTeam(r.Team)
			pts := PointsFor(field, r.Position)
			a, b := SplitTeam(team)
			for _, player := range []string{a, b} {
				if player == "" {
					continue
				}
				out = append(out, PlayerResult{Event: k, Team: team, Player: player, Position: r.Position, Points: pts})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Event != out[j].Event {
			return out[j].Event.before(out[i].Event)
		}
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Player < out[j].Player
	})
	return out
}

// PlayerStanding is one line of the cumulative ranking.
type PlayerStanding struct {
	Position       int     `json:"position"`
	Player         string  `json:"player"`
	Points         int     `json:"points"`
	Participations int     `json:"participations"`
	Average        float64 `json:"average"`
	// Movement is the change since the previous event, e.g. "▲ +2" or "▼ -1"; empty when unchanged or new.
	Movement string `json:"movement,omitempty"`
	// Partners lists frequent partners, e.g. "Ana (3), Rita (1)".
	Partners string `json:"partners,omitempty"`
}

// Compute aggregates expanded results into the ranking: points desc, average desc,
// participations desc, name asc.
func Compute(expanded []PlayerResult) []PlayerStanding {
	type agg struct {
		points, count int
	}
	totals := make(map[string]*agg)
	for _, r := range expanded {
		a, ok := totals[r.Player]
		if !ok {
			a = &agg{}
			totals[r.Player] = a
		}
		a.points += r.Points
		a.count++
	}

	out := make([]PlayerStanding, 0, len(totals))
	for player, a := range totals {
		out = append(out, PlayerStanding{
			Player:         player,
			Points:         a.points,
			Participations: a.count,
			Average:        round2(float64(a.points) / float64(a.count)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].Average != out[j].Average {
			return out[i].Average > out[j].Average
		}
		if out[i].Participations != out[j].Participations {
			return out[i].Participations > out[j].Participations
		}
		return out[i].Player < out[j].Player
	})
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PointsMap returns the cumulative points of every player.
func PointsMap(expanded []PlayerResult) map[string]int {
	out := make(map[string]int)
	for _, r := range expanded {
		out[r.Player] += r.Points
	}
	return out
}

// EventDates lists the distinct event dates, oldest first.
func EventDates(expanded []PlayerResult) []EventKey {
	seen := make(map[EventKey]bool)
	out := make([]EventKey, 0)
	for _, r := range expanded {
		if !seen[r.Event] {
			seen[r.Event] = true
			out = append(out, r.Event)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].before(out[j]) })
	return out
}

// WithMomentum computes the ranking and, when there are at least two events, the
// position change of each player against the ranking without the latest event.
func WithMomentum(expanded []PlayerResult) []PlayerStanding {
	current := Compute(expanded)
	dates := EventDates(expanded)
	if len(dates) < 2 {
		return current
	}

	latest := dates[len(dates)-1]
	previous := make([]PlayerResult, 0, len(expanded))
	for _, r := range expanded {
		if r.Event != latest {
			previous = append(previous, r)
		}
	}
	prevPos := make(map[string]int)
	for _, s := range Compute(previous) {
		prevPos[s.Player] = s.Position
	}

	for i := range current {
		before, ok := prevPos[current[i].Player]
		if !ok {
			continue
		}
		switch diff := before - current[i].Position; {
		case diff > 0:
			current[i].Movement = fmt.Sprintf("▲ +%d", diff)
		case diff < 0:
			current[i].Movement = fmt.Sprintf("▼ %d", diff)
		}
	}
	return current
}

// WithPartners computes the ranking with each player's most frequent partners.
func WithPartners(expanded []PlayerResult) []PlayerStanding {
	type partnerCount struct {
		name  string
		count int
	}
	counts := make(map[string]map[string]int)
	for _, r := range expanded {
		a, b := SplitTeam(r.Team)
		partner := a
		if r.Player == a {
			partner = b
		}
		if counts[r.Player] == nil {
			counts[r.Player] = make(map[string]int)
		}
		counts[r.Player][partner]++
	}

	standings := Compute(expanded)
	for i := range standings {
		var list []partnerCount
		total := 0
		for name, c := range counts[standings[i].Player] {
			list = append(list, partnerCount{name: name, count: c})
			total += c
		}
		sort.Slice(list, func(x, y int) bool {
			if list[x].count != list[y].count {
				return list[x].count > list[y].count
			}
			return list[x].name < list[y].name
		})

		shown := list
		if len(shown) > partnersShown {
			shown = shown[:partnersShown]
		}
		parts := make([]string, 0, len(shown)+1)
		shownSum := 0
		for _, p := range shown {
			parts = append(parts, fmt.Sprintf("%s (%d)", p.name, p.count))
			shownSum += p.count
		}
		if rest := total - shownSum; rest > 0 {
			parts = append(parts, fmt.Sprintf("Outros (%d)", rest))
		}
		standings[i].Partners = strings.Join(parts, ", ")
	}
	return standings
}
