package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		score    Score
		outcome  Outcome
		decisive bool
		blank    bool
	}{
		{score: "6-4", outcome: WinA, decisive: true},
		{score: " 2 - 6 ", outcome: WinB, decisive: true},
		{score: "5-5", outcome: Draw},
		{score: "", outcome: Unplayed, blank: true},
		{score: "   ", outcome: Unplayed, blank: true},
		{score: "6:4", outcome: Unplayed},
		{score: "a-b", outcome: Unplayed},
		{score: "-1-6", outcome: Unplayed},
		{score: "6-", outcome: Unplayed},
	}
	for _, tt := range tests {
		t.Run(string(tt.score), func(t *testing.T) {
			assert.Equal(t, tt.outcome, tt.score.Outcome())
			assert.Equal(t, tt.decisive, tt.score.Decisive())
			assert.Equal(t, tt.outcome != Unplayed, tt.score.Played())
			assert.Equal(t, tt.blank, tt.score.IsBlank())
		})
	}
}

func TestScore_Games(t *testing.T) {
	a, b, ok := Score("7-6").Games()
	assert.True(t, ok)
	assert.Equal(t, 7, a)
	assert.Equal(t, 6, b)

	_, _, ok = Score("7-x").Games()
	assert.False(t, ok)
}

func TestMatchBase_Winner(t *testing.T) {
	m := MatchBase{TeamA: "A", TeamB: "B", Score: "3-6"}
	w, l, ok := m.Winner()
	assert.True(t, ok)
	assert.Equal(t, "B", w)
	assert.Equal(t, "A", l)

	m.Score = "4-4"
	_, _, ok = m.Winner()
	assert.False(t, ok)
}
