package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cyberwise-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ ScenarioRepository = (*pgScenarioRepository)(nil)

type pgScenarioRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgScenarioRepository создает репозиторий сценариев поверх PostgreSQL.
func NewPgScenarioRepository(db DBTX, logger *zap.Logger) ScenarioRepository {
	return &pgScenarioRepository{
		db:     db,
		logger: logger.Named("PgScenarioRepo"),
	}
}

const getScenarioByDayQuery = `
SELECT id, title, day_label, blooms_level, learning_objective, simulation_type, intro, steps, branches
FROM scenarios
WHERE id = $1`

const listDaysQuery = `
SELECT id, day_index, title, day_label, blooms_level, learning_objective, simulation_type
FROM scenarios
ORDER BY day_index`

// GetByDay возвращает полный сценарий дня, включая шаги и ветки.
func (r *pgScenarioRepository) GetByDay(ctx context.Context, day models.DayID) (*models.Scenario, error) {
	scenario := &models.Scenario{}
	var stepsRaw, branchesRaw json.RawMessage

	err := r.db.QueryRow(ctx, getScenarioByDayQuery, day).Scan(
		&scenario.ID,
		&scenario.Title,
		&scenario.DayLabel,
		&scenario.BloomsLevel,
		&scenario.LearningObjective,
		&scenario.SimulationType,
		&scenario.Intro,
		&stepsRaw,
		&branchesRaw,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("Scenario not found", zap.String("day", string(day)))
			return nil, models.ErrScenarioNotFound
		}
		r.logger.Error("Failed to get scenario", zap.Error(err), zap.String("day", string(day)))
		return nil, fmt.Errorf("ошибка получения сценария дня %s: %w", day, err)
	}

	if err := json.Unmarshal(stepsRaw, &scenario.Steps); err != nil {
		r.logger.Error("Failed to unmarshal scenario steps", zap.Error(err), zap.String("day", string(day)))
		return nil, fmt.Errorf("поврежденный контент шагов дня %s: %w", day, err)
	}
	scenario.Branches = map[string]models.Branch{}
	if len(branchesRaw) > 0 {
		if err := json.Unmarshal(branchesRaw, &scenario.Branches); err != nil {
			r.logger.Error("Failed to unmarshal scenario branches", zap.Error(err), zap.String("day", string(day)))
			return nil, fmt.Errorf("поврежденный контент веток дня %s: %w", day, err)
		}
	}

	r.logger.Debug("Scenario retrieved",
		zap.String("day", string(day)),
		zap.Int("steps", len(scenario.Steps)),
		zap.Int("branches", len(scenario.Branches)),
	)
	return scenario, nil
}

// ListDays возвращает сокращенную информацию о днях в игровом порядке.
func (r *pgScenarioRepository) ListDays(ctx context.Context) ([]models.DaySummary, error) {
	var days []models.DaySummary
	if err := pgxscan.Select(ctx, r.db, &days, listDaysQuery); err != nil {
		r.logger.Error("Failed to list scenario days", zap.Error(err))
		return nil, fmt.Errorf("ошибка получения списка дней: %w", err)
	}
	return days, nil
}
