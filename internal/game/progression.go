package game

import (
	"math"

	"cyberwise-server/internal/models"
)

// DayOrder задает фиксированный порядок игровых дней.
var DayOrder = []models.DayID{
	models.DayMonday,
	models.DayTuesday,
	models.DayWednesday,
	models.DayThursday,
	models.DayFriday,
}

// DayLabels - отображаемые названия дней.
var DayLabels = map[models.DayID]string{
	models.DayMonday:    "Monday",
	models.DayTuesday:   "Tuesday",
	models.DayWednesday: "Wednesday",
	models.DayThursday:  "Thursday",
	models.DayFriday:    "Friday",
}

// DayIndex возвращает позицию дня в DayOrder или -1.
func DayIndex(day models.DayID) int {
	for i, d := range DayOrder {
		if d == day {
			return i
		}
	}
	return -1
}

// IsValidDay проверяет, что идентификатор дня известен.
func IsValidDay(day models.DayID) bool {
	return DayIndex(day) >= 0
}

// NextDay возвращает следующий день в фиксированном порядке.
// ok == false, если день последний или неизвестен.
func NextDay(day models.DayID) (models.DayID, bool) {
	idx := DayIndex(day)
	if idx < 0 || idx >= len(DayOrder)-1 {
		return "", false
	}
	return DayOrder[idx+1], true
}

// IsLastDay проверяет, является ли день последним.
func IsLastDay(day models.DayID) bool {
	return day == DayOrder[len(DayOrder)-1]
}

// CurrentStep резолвит текущий шаг: если активна ветка и сценарий ее
// определяет - индексируем шаги ветки, иначе основной список. Выход за
// границы пути дает nil.
func CurrentStep(scenario *models.Scenario, stepIndex int, branchID *string) *models.ScenarioStep {
	if stepIndex < 0 {
		return nil
	}
	if branchID != nil {
		if branch, ok := scenario.Branches[*branchID]; ok {
			if stepIndex >= len(branch.Steps) {
				return nil
			}
			return &branch.Steps[stepIndex]
		}
		// Ветка не определена в этом сценарии - откатываемся на main.
	}
	if stepIndex >= len(scenario.Steps) {
		return nil
	}
	return &scenario.Steps[stepIndex]
}

// TotalSteps возвращает длину активного пути (ветки или main) по той же
// логике выбора, что и CurrentStep.
func TotalSteps(scenario *models.Scenario, branchID *string) int {
	if branchID != nil {
		if branch, ok := scenario.Branches[*branchID]; ok {
			return len(branch.Steps)
		}
	}
	return len(scenario.Steps)
}

// ProgressPercentage - общий прогресс по завершенным дням, 0-100.
func ProgressPercentage(completedDays []models.DayID) int {
	return int(math.Round(float64(len(completedDays)) / float64(len(DayOrder)) * 100))
}

// LockedChoiceIDs возвращает ID выборов шага, недоступных при текущем
// trust level. Залоченные выборы показываются, но не принимаются.
func LockedChoiceIDs(step *models.ScenarioStep, trustLevel int) []string {
	var locked []string
	for _, c := range step.Choices {
		if c.RequiresTrustLevel != nil && trustLevel < *c.RequiresTrustLevel {
			locked = append(locked, c.ID)
		}
	}
	return locked
}

// ShuffledChoices возвращает копию выборов шага в детерминированном
// "случайном" порядке с сидом от ID шага: порядок стабилен между запусками,
// но разный у разных шагов, чтобы правильный ответ не стоял всегда первым.
// Хеш 32-битный (h*31 + byte), перемешивание - Fisher-Yates.
func ShuffledChoices(step *models.ScenarioStep) []models.Choice {
	shuffled := make([]models.Choice, len(step.Choices))
	copy(shuffled, step.Choices)

	var hash int32
	for _, c := range step.ID {
		hash = hash*31 + int32(c)
	}
	for i := len(shuffled) - 1; i > 0; i-- {
		hash = hash*31 + int32(i)
		j := int(uint32(hash) % uint32(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
