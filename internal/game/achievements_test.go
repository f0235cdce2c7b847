package game_test

import (
	"testing"

	"cyberwise-server/internal/game"
	"cyberwise-server/internal/models"

	"github.com/stretchr/testify/assert"
)

func record(day models.DayID, quality models.ChoiceQuality) models.ChoiceRecord {
	return models.ChoiceRecord{DayID: day, Quality: quality}
}

func TestEvaluateAchievements_TrustBuilder(t *testing.T) {
	// Срабатывает в любой момент, не только в конце игры.
	earned := game.EvaluateAchievements(nil, 50, 80, nil, false)
	assert.Contains(t, earned, game.AchievementTrustBuilder)

	earned = game.EvaluateAchievements(nil, 50, 79, nil, false)
	assert.NotContains(t, earned, game.AchievementTrustBuilder)

	t.Run("not re-earned", func(t *testing.T) {
		earned := game.EvaluateAchievements(nil, 50, 90, []string{game.AchievementTrustBuilder}, false)
		assert.Empty(t, earned)
	})
}

func TestEvaluateAchievements_QuickLearner(t *testing.T) {
	history := []models.ChoiceRecord{
		record(models.DayMonday, models.QualityPoor),
		record(models.DayMonday, models.QualityOptimal),
	}
	earned := game.EvaluateAchievements(history, 50, 50, nil, false)
	assert.Contains(t, earned, game.AchievementQuickLearner)

	t.Run("dangerous then optimal also counts", func(t *testing.T) {
		history := []models.ChoiceRecord{
			record(models.DayMonday, models.QualityDangerous),
			record(models.DayMonday, models.QualityOptimal),
		}
		assert.Contains(t, game.EvaluateAchievements(history, 50, 50, nil, false), game.AchievementQuickLearner)
	})

	t.Run("non-adjacent pair does not count", func(t *testing.T) {
		history := []models.ChoiceRecord{
			record(models.DayMonday, models.QualityPoor),
			record(models.DayMonday, models.QualityAcceptable),
			record(models.DayMonday, models.QualityOptimal),
		}
		assert.NotContains(t, game.EvaluateAchievements(history, 50, 50, nil, false), game.AchievementQuickLearner)
	})
}

func TestEvaluateAchievements_PerfectDay(t *testing.T) {
	optimalDay := func(day models.DayID, n int) []models.ChoiceRecord {
		var records []models.ChoiceRecord
		for i := 0; i < n; i++ {
			records = append(records, record(day, models.QualityOptimal))
		}
		return records
	}

	t.Run("three optimal choices is not a full day", func(t *testing.T) {
		earned := game.EvaluateAchievements(optimalDay(models.DayMonday, 3), 50, 50, nil, false)
		assert.NotContains(t, earned, game.AchievementPerfectDay)
	})

	t.Run("four optimal choices triggers", func(t *testing.T) {
		earned := game.EvaluateAchievements(optimalDay(models.DayMonday, 4), 50, 50, nil, false)
		assert.Contains(t, earned, game.AchievementPerfectDay)
	})

	t.Run("five choices with one non-optimal does not trigger", func(t *testing.T) {
		history := append(optimalDay(models.DayMonday, 4), record(models.DayMonday, models.QualityAcceptable))
		earned := game.EvaluateAchievements(history, 50, 50, nil, false)
		assert.NotContains(t, earned, game.AchievementPerfectDay)
	})

	t.Run("grouping is per day", func(t *testing.T) {
		// По 2 optimal в двух днях - полного дня нет.
		history := append(optimalDay(models.DayMonday, 2), optimalDay(models.DayTuesday, 2)...)
		earned := game.EvaluateAchievements(history, 50, 50, nil, false)
		assert.NotContains(t, earned, game.AchievementPerfectDay)
	})
}

func TestEvaluateAchievements_GameEndOnly(t *testing.T) {
	history := []models.ChoiceRecord{record(models.DayFriday, models.QualityOptimal)}

	t.Run("not evaluated mid-game", func(t *testing.T) {
		earned := game.EvaluateAchievements(history, 90, 50, nil, false)
		assert.NotContains(t, earned, game.AchievementSecurityChampion)
		assert.NotContains(t, earned, game.AchievementZeroIncidents)
	})

	t.Run("security champion at final score >= 80", func(t *testing.T) {
		assert.Contains(t, game.EvaluateAchievements(history, 80, 50, nil, true), game.AchievementSecurityChampion)
		assert.NotContains(t, game.EvaluateAchievements(history, 79, 50, nil, true), game.AchievementSecurityChampion)
	})

	t.Run("zero incidents needs non-empty clean history", func(t *testing.T) {
		assert.Contains(t, game.EvaluateAchievements(history, 50, 50, nil, true), game.AchievementZeroIncidents)
		assert.NotContains(t, game.EvaluateAchievements(nil, 50, 50, nil, true), game.AchievementZeroIncidents)

		dirty := append(history, record(models.DayFriday, models.QualityDangerous))
		assert.NotContains(t, game.EvaluateAchievements(dirty, 50, 50, nil, true), game.AchievementZeroIncidents)
	})
}

func TestEvaluateAchievements_NoDuplicates(t *testing.T) {
	history := []models.ChoiceRecord{
		record(models.DayMonday, models.QualityPoor),
		record(models.DayMonday, models.QualityOptimal),
	}
	first := game.EvaluateAchievements(history, 90, 90, nil, true)
	assert.NotEmpty(t, first)

	// Повторный вызов с теми же данными и уже открытым набором пуст.
	second := game.EvaluateAchievements(history, 90, 90, first, true)
	assert.Empty(t, second)

	// Внутри одного вызова дублей нет.
	seen := map[string]bool{}
	for _, id := range first {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}
