package models

import (
	"time"

	"github.com/google/uuid"
)

// GameResult - архивная запись завершенной игры. Пишется один раз при
// CompleteGame, используется экраном результатов.
type GameResult struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	SessionID            string    `json:"session_id" db:"session_id"`
	FinalScore           int       `json:"final_score" db:"final_score"`
	FinalTrust           int       `json:"final_trust" db:"final_trust"`
	EndingID             string    `json:"ending_id" db:"ending_id"`
	TrustPenalized       bool      `json:"trust_penalized" db:"trust_penalized"`
	UnlockedAchievements []string  `json:"unlocked_achievements" db:"unlocked_achievements"`
	// DayPerformance - процент качества выборов по каждому дню (0-100).
	DayPerformance map[DayID]int `json:"day_performance" db:"day_performance"`
	CompletedAt    time.Time     `json:"completed_at" db:"completed_at"`
}
