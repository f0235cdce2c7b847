package repository

import (
	"context"
	"fmt"

	"cyberwise-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

var _ EndingRepository = (*pgEndingRepository)(nil)

type pgEndingRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgEndingRepository создает репозиторий каталога концовок.
func NewPgEndingRepository(db DBTX, logger *zap.Logger) EndingRepository {
	return &pgEndingRepository{
		db:     db,
		logger: logger.Named("PgEndingRepo"),
	}
}

// Порядок важен: резолвер концовок идет от лучшей к худшей, последняя
// запись служит fallback для очков вне всех диапазонов.
const listEndingsQuery = `
SELECT id, title, min_score, max_score, narrative, outcome, trust_penalty_narrative
FROM endings
ORDER BY min_score DESC`

// List возвращает каталог концовок от лучшей к худшей.
func (r *pgEndingRepository) List(ctx context.Context) ([]models.Ending, error) {
	var endings []models.Ending
	if err := pgxscan.Select(ctx, r.db, &endings, listEndingsQuery); err != nil {
		r.logger.Error("Failed to list endings", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения каталога концовок: %w", err)
	}
	return endings, nil
}
