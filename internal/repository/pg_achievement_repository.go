package repository

import (
	"context"
	"fmt"

	"cyberwise-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

var _ AchievementRepository = (*pgAchievementRepository)(nil)

type pgAchievementRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgAchievementRepository создает репозиторий каталога достижений.
func NewPgAchievementRepository(db DBTX, logger *zap.Logger) AchievementRepository {
	return &pgAchievementRepository{
		db:     db,
		logger: logger.Named("PgAchievementRepo"),
	}
}

const listAchievementsQuery = `
SELECT id, name, description, icon, condition, sort_order
FROM achievements
ORDER BY sort_order`

// List возвращает все достижения в порядке отображения.
func (r *pgAchievementRepository) List(ctx context.Context) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := pgxscan.Select(ctx, r.db, &achievements, listAchievementsQuery); err != nil {
		r.logger.Error("Failed to list achievements", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения каталога достижений: %w", err)
	}
	return achievements, nil
}
