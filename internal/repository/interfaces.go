package repository

import (
	"context"

	"cyberwise-server/internal/models"
)

// ScenarioRepository предоставляет доступ к контенту сценариев.
// Контент неизменяемый: движок только читает.
type ScenarioRepository interface {
	// GetByDay возвращает полный сценарий дня (шаги + ветки).
	// models.ErrScenarioNotFound, если дня нет.
	GetByDay(ctx context.Context, day models.DayID) (*models.Scenario, error)
	// ListDays возвращает сокращенную информацию о днях в игровом порядке.
	ListDays(ctx context.Context) ([]models.DaySummary, error)
}

// AchievementRepository предоставляет каталог достижений.
type AchievementRepository interface {
	List(ctx context.Context) ([]models.Achievement, error)
}

// EndingRepository предоставляет каталог концовок.
type EndingRepository interface {
	List(ctx context.Context) ([]models.Ending, error)
}

// GameStateRepository хранит состояние игровых сессий в opaque key-value
// хранилище. Семантика last-writer-wins, без разрешения конфликтов.
// Удаления нет: сброс перезаписывает состояние, неактивные сессии
// исчезают по TTL.
type GameStateRepository interface {
	// Get возвращает models.ErrSessionNotFound, если сессии нет.
	Get(ctx context.Context, sessionID string) (*models.GameState, error)
	Save(ctx context.Context, sessionID string, state *models.GameState) error
}

// GameResultRepository хранит архив завершенных игр.
type GameResultRepository interface {
	Create(ctx context.Context, result *models.GameResult) error
	// GetBySessionID возвращает последний результат сессии или
	// models.ErrNotFound.
	GetBySessionID(ctx context.Context, sessionID string) (*models.GameResult, error)
}
