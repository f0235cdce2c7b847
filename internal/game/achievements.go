package game

import "cyberwise-server/internal/models"

// Идентификаторы вычисляемых достижений. Прямые триггеры (eagle_eye и
// прочие) приходят из контента через Choice.AchievementTrigger и здесь
// не перечисляются.
const (
	AchievementTrustBuilder     = "trust_builder"
	AchievementQuickLearner     = "quick_learner"
	AchievementPerfectDay       = "perfect_day"
	AchievementSecurityChampion = "security_champion"
	AchievementZeroIncidents    = "zero_incidents"
)

// Минимум выборов за день, чтобы день считался полным для perfect_day.
const perfectDayMinChoices = 4

// EvaluateAchievements сканирует историю и состояние и возвращает список
// НОВЫХ достижений в порядке проверки правил. Уже открытые (в unlocked или
// добавленные этим же вызовом) повторно не срабатывают. Правила
// security_champion и zero_incidents проверяются только при isGameEnd.
func EvaluateAchievements(
	history []models.ChoiceRecord,
	securityScore int,
	trustLevel int,
	unlocked []string,
	isGameEnd bool,
) []string {
	var earned []string

	shouldUnlock := func(id string) bool {
		for _, u := range unlocked {
			if u == id {
				return false
			}
		}
		for _, e := range earned {
			if e == id {
				return false
			}
		}
		return true
	}

	// Trust Builder: trust level >= 80, срабатывает в любой момент.
	if trustLevel >= 80 && shouldUnlock(AchievementTrustBuilder) {
		earned = append(earned, AchievementTrustBuilder)
	}

	// Quick Learner: optimal сразу после poor/dangerous.
	if shouldUnlock(AchievementQuickLearner) && len(history) >= 2 {
		for i := 1; i < len(history); i++ {
			prev, curr := history[i-1], history[i]
			if (prev.Quality == models.QualityPoor || prev.Quality == models.QualityDangerous) &&
				curr.Quality == models.QualityOptimal {
				earned = append(earned, AchievementQuickLearner)
				break
			}
		}
	}

	// Perfect Day: все выборы полного дня (>= 4 записей) optimal.
	if shouldUnlock(AchievementPerfectDay) {
		byDay := make(map[models.DayID][]models.ChoiceRecord)
		for _, record := range history {
			byDay[record.DayID] = append(byDay[record.DayID], record)
		}
		for _, records := range byDay {
			if len(records) < perfectDayMinChoices {
				continue
			}
			allOptimal := true
			for _, r := range records {
				if r.Quality != models.QualityOptimal {
					allOptimal = false
					break
				}
			}
			if allOptimal {
				earned = append(earned, AchievementPerfectDay)
				break
			}
		}
	}

	if isGameEnd {
		// Security Champion: финальный score >= 80.
		if securityScore >= 80 && shouldUnlock(AchievementSecurityChampion) {
			earned = append(earned, AchievementSecurityChampion)
		}

		// Zero Incidents: вся игра без единого dangerous выбора.
		if shouldUnlock(AchievementZeroIncidents) && len(history) > 0 {
			clean := true
			for _, r := range history {
				if r.Quality == models.QualityDangerous {
					clean = false
					break
				}
			}
			if clean {
				earned = append(earned, AchievementZeroIncidents)
			}
		}
	}

	return earned
}
