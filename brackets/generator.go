package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/padel-tournament/models"
)

type GenerateBracketParams struct {
	Format        models.Format
	Pairs         []models.Pair // seeded, best first
	Courts        []string
	ExpectedPairs int
}

// BracketGenerator produces the initial rounds of an event for one format.
type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]models.Round, error)

	GetName() string
}

// GeneratorFor picks the generator of a format.
func GeneratorFor(format models.Format, shuffler Shuffler) (BracketGenerator, error) {
	switch {
	case format.Code == models.FormatLeague6:
		return NewRoundRobinGenerator(shuffler), nil
	case format.IsGrouped():
		return NewGroupStageGenerator(shuffler), nil
	case format.IsLadder():
		return NewLadderGenerator(shuffler), nil
	default:
		return nil, fmt.Errorf("no generator for format %q: %w", format.Code, ErrInvalidInput)
	}
}
