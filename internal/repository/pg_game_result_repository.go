package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cyberwise-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

var _ GameResultRepository = (*pgGameResultRepository)(nil)

type pgGameResultRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgGameResultRepository создает репозиторий архива завершенных игр.
func NewPgGameResultRepository(db DBTX, logger *zap.Logger) GameResultRepository {
	return &pgGameResultRepository{
		db:     db,
		logger: logger.Named("PgGameResultRepo"),
	}
}

const createGameResultQuery = `
INSERT INTO game_results (id, session_id, final_score, final_trust, ending_id, trust_penalized, unlocked_achievements, day_performance, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const getGameResultBySessionQuery = `
SELECT id, session_id, final_score, final_trust, ending_id, trust_penalized, unlocked_achievements, day_performance, completed_at
FROM game_results
WHERE session_id = $1
ORDER BY completed_at DESC
LIMIT 1`

// Create сохраняет архивную запись завершенной игры.
func (r *pgGameResultRepository) Create(ctx context.Context, result *models.GameResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now()
	}

	perfJSON, err := json.Marshal(result.DayPerformance)
	if err != nil {
		return fmt.Errorf("ошибка сериализации day_performance: %w", err)
	}

	_, err = r.db.Exec(ctx, createGameResultQuery,
		result.ID,
		result.SessionID,
		result.FinalScore,
		result.FinalTrust,
		result.EndingID,
		result.TrustPenalized,
		pq.Array(result.UnlockedAchievements),
		perfJSON,
		result.CompletedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create game result",
			zap.Error(err),
			zap.String("sessionID", result.SessionID),
			zap.String("endingID", result.EndingID),
		)
		return fmt.Errorf("ошибка сохранения результата игры: %w", err)
	}

	r.logger.Info("Game result archived",
		zap.String("resultID", result.ID.String()),
		zap.String("sessionID", result.SessionID),
		zap.Int("finalScore", result.FinalScore),
		zap.String("endingID", result.EndingID),
	)
	return nil
}

// GetBySessionID возвращает последний результат сессии.
func (r *pgGameResultRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.GameResult, error) {
	result := &models.GameResult{}
	var achievements pq.StringArray
	var perfRaw json.RawMessage

	err := r.db.QueryRow(ctx, getGameResultBySessionQuery, sessionID).Scan(
		&result.ID,
		&result.SessionID,
		&result.FinalScore,
		&result.FinalTrust,
		&result.EndingID,
		&result.TrustPenalized,
		&achievements,
		&perfRaw,
		&result.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Game result not found", zap.String("sessionID", sessionID))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get game result", zap.Error(err), zap.String("sessionID", sessionID))
		return nil, fmt.Errorf("ошибка получения результата игры: %w", err)
	}

	result.UnlockedAchievements = achievements
	if len(perfRaw) > 0 {
		if err := json.Unmarshal(perfRaw, &result.DayPerformance); err != nil {
			return nil, fmt.Errorf("поврежденные данные day_performance для сессии %s: %w", sessionID, err)
		}
	}
	return result, nil
}
