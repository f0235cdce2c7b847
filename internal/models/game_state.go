package models

// ChoiceRecord - запись в истории выборов. Хранит обе примененные дельты,
// чтобы эффект выбора можно было точно отменить.
type ChoiceRecord struct {
	DayID       DayID         `json:"day_id"`
	StepID      string        `json:"step_id"`
	ChoiceID    string        `json:"choice_id"`
	Quality     ChoiceQuality `json:"quality"`
	ScoreChange int           `json:"score_change"`
	TrustChange int           `json:"trust_change"`
}

// GameState - полное мутабельное состояние игровой сессии.
// Мутируется ИСКЛЮЧИТЕЛЬНО через операции game.Session; сериализуется
// в JSON целиком и восстанавливается из него без потерь.
type GameState struct {
	CurrentDay       DayID   `json:"current_day"`
	CurrentStepIndex int     `json:"current_step_index"` // Позиция внутри активного пути (main или ветка)
	CurrentBranch    *string `json:"current_branch,omitempty"`
	// PendingBranch выставляется выбором с NextBranch, но применяется
	// только следующим AdvanceStep - фидбек должен ссылаться на
	// исходный шаг, а не на ветку назначения.
	PendingBranch *string `json:"pending_branch,omitempty"`

	SecurityScore int `json:"security_score"` // Инвариант: всегда в [0,100]
	TrustLevel    int `json:"trust_level"`    // Инвариант: всегда в [0,100]

	UnlockedAchievements []string       `json:"unlocked_achievements"`
	ChoiceHistory        []ChoiceRecord `json:"choice_history"`
	CompletedDays        []DayID        `json:"completed_days"`

	GameStarted     bool    `json:"game_started"`
	GameCompleted   bool    `json:"game_completed"`
	ShowingFeedback bool    `json:"showing_feedback"` // Флаг режима отображения, также гейтит навигацию
	LastChoiceID    *string `json:"last_choice_id,omitempty"`

	// PendingAchievement - максимум одно неподтвержденное уведомление
	// о достижении. Сбрасывается явным dismiss или таймаутом на клиенте.
	PendingAchievement *string `json:"pending_achievement,omitempty"`

	// ChoiceUnlocks - все достижения, открытые текущим выбором (прямой
	// триггер плюс сработавшие правила), пока показывается фидбек.
	// GoBack отменяет их вместе с выбором; закрытие фидбека очищает список.
	ChoiceUnlocks []string `json:"choice_unlocks,omitempty"`

	// Одноразовое (на всю сессию) предупреждение о низком trust.
	TrustWarningShown   bool `json:"trust_warning_shown"`
	PendingTrustWarning bool `json:"pending_trust_warning"`
}

// HasAchievement проверяет, открыто ли достижение.
func (s *GameState) HasAchievement(id string) bool {
	for _, a := range s.UnlockedAchievements {
		if a == id {
			return true
		}
	}
	return false
}

// HasCompletedDay проверяет, завершен ли день.
func (s *GameState) HasCompletedDay(day DayID) bool {
	for _, d := range s.CompletedDays {
		if d == day {
			return true
		}
	}
	return false
}
