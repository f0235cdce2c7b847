package game

import (
	"math"

	"cyberwise-server/internal/models"
)

// Стартовые константы сессии и границы обоих показателей.
const (
	InitialSecurityScore = 75
	InitialTrustLevel    = 50
	MinScore             = 0
	MaxScore             = 100
)

// Clamp ограничивает значение показателя диапазоном [0,100] с насыщением.
func Clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// ApplyChoice применяет дельты выбора к обоим показателям с клампингом.
func ApplyChoice(currentScore, currentTrust int, choice models.Choice) (newScore, newTrust int) {
	return Clamp(currentScore + choice.SecurityScoreChange), Clamp(currentTrust + choice.TrustChange)
}

// ScoreCategory возвращает категорию security score для отображения.
// Пороги фиксированные: >=80 excellent, >=60 good, >=40 fair, иначе critical.
func ScoreCategory(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	default:
		return "critical"
	}
}

// ScoreColor возвращает цветовой токен для шкалы security score.
func ScoreColor(score int) string {
	switch {
	case score >= 80:
		return "#22c55e"
	case score >= 60:
		return "#3b82f6"
	case score >= 40:
		return "#eab308"
	default:
		return "#ef4444"
	}
}

// TrustLabel возвращает текстовую метку уровня доверия.
func TrustLabel(trust int) string {
	switch {
	case trust >= 80:
		return "Highly Trusted"
	case trust >= 60:
		return "Trusted"
	case trust >= 40:
		return "Neutral"
	case trust >= 20:
		return "Cautious"
	default:
		return "Distrusted"
	}
}

// QualityScore переводит качество выбора в фиксированный балл 0..3.
func QualityScore(quality models.ChoiceQuality) int {
	switch quality {
	case models.QualityOptimal:
		return 3
	case models.QualityAcceptable:
		return 2
	case models.QualityPoor:
		return 1
	default: // dangerous
		return 0
	}
}

// DayPerformance считает процент качества выборов за день: сумма баллов
// качества, нормированная на максимум (3 за выбор), 0-100 с округлением.
// Пустой список дает 0.
func DayPerformance(qualities []models.ChoiceQuality) int {
	if len(qualities) == 0 {
		return 0
	}
	total := 0
	for _, q := range qualities {
		total += QualityScore(q)
	}
	return int(math.Round(float64(total) / float64(len(qualities)*3) * 100))
}
