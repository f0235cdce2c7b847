package models

// ClientUpdateType определяет тип одноразового события для клиента.
type ClientUpdateType string

const (
	ClientUpdateAchievementUnlocked ClientUpdateType = "achievement_unlocked"
	ClientUpdateTrustWarning        ClientUpdateType = "trust_warning"
	ClientUpdateGameCompleted       ClientUpdateType = "game_completed"
)

// ClientGameUpdate содержит данные одноразового события, публикуемого в
// очередь client updates (доставка на клиент - забота отдельного консьюмера).
type ClientGameUpdate struct {
	SessionID     string           `json:"session_id"`
	UpdateType    ClientUpdateType `json:"update_type"`
	AchievementID *string          `json:"achievement_id,omitempty"` // Для achievement_unlocked
	TrustLevel    *int             `json:"trust_level,omitempty"`    // Для trust_warning
	EndingID      *string          `json:"ending_id,omitempty"`      // Для game_completed
}
