package ranking

import (
	"sort"
	"strings"

	"github.com/Dosada05/padel-tournament/models"
)

// PairKey is the display name of a pair.
func PairKey(a, b string) string {
	return strings.TrimSpace(a) + " / " + strings.TrimSpace(b)
}

// SeedPairs scores each pair with the sum of its players' points and orders the
// pairs best first, ties broken by the players' names.
func SeedPairs(pairs [][2]string, points map[string]int) []models.Pair {
	out := make([]models.Pair, 0, len(pairs))
	for _, p := range pairs {
		a, b := strings.TrimSpace(p[0]), strings.TrimSpace(p[1])
		out = append(out, models.Pair{
			A:    a,
			B:    b,
			Name: PairKey(a, b),
			Seed: points[a] + points[b],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Seed != out[j].Seed {
			return out[i].Seed > out[j].Seed
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Reseed recomputes seeds of existing pairs and orders them best first.
func Reseed(pairs []models.Pair, points map[string]int) []models.Pair {
	raw := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		raw = append(raw, [2]string{p.A, p.B})
	}
	return SeedPairs(raw, points)
}
