package game

import "cyberwise-server/internal/models"

// TrustPenaltyThreshold - порог финального trust, ниже которого концовка
// понижается на одну ступень.
const TrustPenaltyThreshold = 20

// Идентификаторы ярусов концовок. Диапазоны очков живут в каталоге
// (таблица endings), цепочка понижения фиксированная:
// champion -> getting_there -> compromised, у нижней ступени понижения нет.
const (
	EndingChampion     = "champion"
	EndingGettingThere = "getting_there"
	EndingCompromised  = "compromised"
)

var endingDowngrade = map[string]string{
	EndingChampion:     EndingGettingThere,
	EndingGettingThere: EndingCompromised,
}

func findEnding(endings []models.Ending, score int) models.Ending {
	for _, e := range endings {
		if score >= e.MinScore && score <= e.MaxScore {
			return e
		}
	}
	// Диапазоны покрывают [0,100] без дыр; fallback на последнюю запись
	// на случай битого каталога.
	return endings[len(endings)-1]
}

// ResolveEnding выбирает концовку по финальному score и, если передан
// финальный trust ниже порога, понижает ее по цепочке. Результат при
// понижении несет флаг TrustPenalized и альтернативный нарратив ИСХОДНОЙ
// концовки. Нижний ярус не понижается независимо от trust.
func ResolveEnding(endings []models.Ending, finalScore int, finalTrust *int) (models.EndingResult, error) {
	if len(endings) == 0 {
		return models.EndingResult{}, models.ErrNotFound
	}

	original := findEnding(endings, finalScore)
	resolved := original

	penalized := finalTrust != nil && *finalTrust < TrustPenaltyThreshold
	if penalized {
		target, ok := endingDowngrade[original.ID]
		if !ok {
			penalized = false
		} else {
			for _, e := range endings {
				if e.ID == target {
					resolved = e
					break
				}
			}
		}
	}

	result := models.EndingResult{
		Ending:         resolved,
		TrustPenalized: penalized,
	}
	if penalized {
		result.PenaltyNarrative = original.TrustPenaltyNarrative
	}
	return result, nil
}
