package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cyberwise-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure redisGameStateRepository implements GameStateRepository.
var _ GameStateRepository = (*redisGameStateRepository)(nil)

type redisGameStateRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisGameStateRepository создает Redis-хранилище состояний сессий.
// ttl продлевается при каждом Save: сессия живет, пока игрок активен.
func NewRedisGameStateRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) GameStateRepository {
	return &redisGameStateRepository{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisGameStateRepo"),
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("cyberwise:session:%s", sessionID)
}

// Get загружает состояние сессии.
func (r *redisGameStateRepository) Get(ctx context.Context, sessionID string) (*models.GameState, error) {
	key := sessionKey(sessionID)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Game state not found in Redis", zap.String("sessionID", sessionID))
			return nil, models.ErrSessionNotFound
		}
		r.logger.Error("Failed to get game state from redis", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("failed to get game state from redis: %w", err)
	}

	state := &models.GameState{}
	if err := json.Unmarshal(data, state); err != nil {
		// Эта ошибка серьезная - данные в Redis повреждены
		r.logger.Error("Failed to unmarshal game state from redis data",
			zap.Error(err),
			zap.String("sessionID", sessionID),
		)
		return nil, fmt.Errorf("corrupted game state data in redis for session %s: %w", sessionID, err)
	}
	return state, nil
}

// Save записывает состояние сессии целиком (last-writer-wins) и продлевает TTL.
func (r *redisGameStateRepository) Save(ctx context.Context, sessionID string, state *models.GameState) error {
	key := sessionKey(sessionID)
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal game state for session %s: %w", sessionID, err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save game state to redis", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to save game state to redis: %w", err)
	}

	r.logger.Debug("Game state saved",
		zap.String("sessionID", sessionID),
		zap.String("day", string(state.CurrentDay)),
		zap.Int("stepIndex", state.CurrentStepIndex),
		zap.Duration("ttl", r.ttl),
	)
	return nil
}
