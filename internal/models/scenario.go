package models

import "encoding/json"

// DayID определяет идентификатор игрового дня. Дни идут в фиксированном
// порядке (понедельник..пятница), порядок задается в пакете game.
type DayID string

const (
	DayMonday    DayID = "monday"
	DayTuesday   DayID = "tuesday"
	DayWednesday DayID = "wednesday"
	DayThursday  DayID = "thursday"
	DayFriday    DayID = "friday"
)

// ChoiceQuality определяет качество выбора игрока.
// Порядок серьезности: optimal > acceptable > poor > dangerous.
type ChoiceQuality string

const (
	QualityOptimal    ChoiceQuality = "optimal"
	QualityAcceptable ChoiceQuality = "acceptable"
	QualityPoor       ChoiceQuality = "poor"
	QualityDangerous  ChoiceQuality = "dangerous"
)

// ChoiceFeedback - обучающий фидбек, который показывается после выбора.
type ChoiceFeedback struct {
	Title            string `json:"title"`
	Explanation      string `json:"explanation"`
	RealWorldContext string `json:"real_world_context"`
}

// Choice представляет один вариант ответа на шаге сценария.
// Контент неизменяемый, авторский - движок его никогда не мутирует.
type Choice struct {
	ID                  string         `json:"id"`
	Text                string         `json:"text"`
	Quality             ChoiceQuality  `json:"quality"`
	SecurityScoreChange int            `json:"security_score_change"` // Дельта security score (может быть отрицательной)
	TrustChange         int            `json:"trust_change"`          // Дельта trust level (может быть отрицательной)
	Feedback            ChoiceFeedback `json:"feedback"`
	NextBranch          *string        `json:"next_branch,omitempty"`           // Именованная ветка, в которую уходит сюжет после этого выбора
	RequiresTrustLevel  *int           `json:"requires_trust_level,omitempty"`  // Минимальный trust для доступности выбора
	AchievementTrigger  *string        `json:"achievement_trigger,omitempty"`   // ID достижения, открываемого напрямую этим выбором
}

// ScenarioStep - один нарративный шаг внутри основного пути дня или ветки.
type ScenarioStep struct {
	ID        string          `json:"id"`
	Narrative string          `json:"narrative"`
	Choices   []Choice        `json:"choices"`
	// SimulationContent - оформление шага (письмо, звонок, чат и т.д.).
	// Движок его не интерпретирует, отдаем клиенту как есть.
	SimulationContent json.RawMessage `json:"simulation_content,omitempty"`
}

// Branch - именованный альтернативный путь, достижимый только через
// Choice.NextBranch. Шаги ветки сами могут ссылаться на другую ветку.
type Branch struct {
	Steps      []ScenarioStep `json:"steps"`
	NextBranch *string        `json:"next_branch,omitempty"`
}

// Scenario представляет контент одного игрового дня: основной список шагов
// плюс карта именованных веток.
type Scenario struct {
	ID                DayID             `json:"id"`
	Title             string            `json:"title"`
	DayLabel          string            `json:"day_label"`
	BloomsLevel       string            `json:"blooms_level"`
	LearningObjective string            `json:"learning_objective"`
	SimulationType    string            `json:"simulation_type"`
	Intro             string            `json:"intro"`
	Steps             []ScenarioStep    `json:"steps"`
	Branches          map[string]Branch `json:"branches"`
}

// FindChoice ищет выбор по ID на данном шаге. Возвращает nil, если не найден.
func (s *ScenarioStep) FindChoice(choiceID string) *Choice {
	for i := range s.Choices {
		if s.Choices[i].ID == choiceID {
			return &s.Choices[i]
		}
	}
	return nil
}

// DaySummary - сокращенная информация о дне для списков (без контента шагов).
type DaySummary struct {
	ID                DayID  `json:"id" db:"id"`
	DayIndex          int    `json:"day_index" db:"day_index"`
	Title             string `json:"title" db:"title"`
	DayLabel          string `json:"day_label" db:"day_label"`
	BloomsLevel       string `json:"blooms_level" db:"blooms_level"`
	LearningObjective string `json:"learning_objective" db:"learning_objective"`
	SimulationType    string `json:"simulation_type" db:"simulation_type"`
}
