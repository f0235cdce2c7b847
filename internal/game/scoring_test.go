package game_test

import (
	"testing"

	"cyberwise-server/internal/game"
	"cyberwise-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{-1000, 0},
		{-1, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{101, 100},
		{1000, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, game.Clamp(tc.in))
	}

	t.Run("idempotent", func(t *testing.T) {
		for _, x := range []int{-500, -1, 0, 33, 100, 250} {
			assert.Equal(t, game.Clamp(x), game.Clamp(game.Clamp(x)))
		}
	})
}

func TestApplyChoice(t *testing.T) {
	choice := models.Choice{SecurityScoreChange: 10, TrustChange: -15}
	score, trust := game.ApplyChoice(75, 50, choice)
	assert.Equal(t, 85, score)
	assert.Equal(t, 35, trust)

	t.Run("saturates at bounds", func(t *testing.T) {
		score, trust := game.ApplyChoice(95, 5, models.Choice{SecurityScoreChange: 1000, TrustChange: -1000})
		assert.Equal(t, 100, score)
		assert.Equal(t, 0, trust)
	})
}

func TestScoreCategory(t *testing.T) {
	// Границы категорий фиксированные, проверяем оба края каждой.
	cases := []struct {
		score int
		want  string
	}{
		{100, "excellent"},
		{80, "excellent"},
		{79, "good"},
		{60, "good"},
		{59, "fair"},
		{40, "fair"},
		{39, "critical"},
		{0, "critical"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, game.ScoreCategory(tc.score), "score %d", tc.score)
	}
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, "#22c55e", game.ScoreColor(80))
	assert.Equal(t, "#3b82f6", game.ScoreColor(60))
	assert.Equal(t, "#eab308", game.ScoreColor(40))
	assert.Equal(t, "#ef4444", game.ScoreColor(39))
}

func TestTrustLabel(t *testing.T) {
	cases := []struct {
		trust int
		want  string
	}{
		{80, "Highly Trusted"},
		{60, "Trusted"},
		{40, "Neutral"},
		{20, "Cautious"},
		{19, "Distrusted"},
		{0, "Distrusted"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, game.TrustLabel(tc.trust), "trust %d", tc.trust)
	}
}

func TestDayPerformance(t *testing.T) {
	opt := models.QualityOptimal
	dan := models.QualityDangerous

	assert.Equal(t, 0, game.DayPerformance(nil))
	assert.Equal(t, 0, game.DayPerformance([]models.ChoiceQuality{}))
	assert.Equal(t, 100, game.DayPerformance([]models.ChoiceQuality{opt, opt}))
	assert.Equal(t, 0, game.DayPerformance([]models.ChoiceQuality{dan}))
	assert.Equal(t, 50, game.DayPerformance([]models.ChoiceQuality{opt, dan}))

	t.Run("rounds to nearest", func(t *testing.T) {
		// acceptable=2 из 3 -> 66.67 -> 67
		assert.Equal(t, 67, game.DayPerformance([]models.ChoiceQuality{models.QualityAcceptable}))
		// poor=1 из 3 -> 33.33 -> 33
		assert.Equal(t, 33, game.DayPerformance([]models.ChoiceQuality{models.QualityPoor}))
	})
}
