package mocks

import (
	"context"

	"cyberwise-server/internal/models"

	"github.com/stretchr/testify/mock"
)

// Mock ScenarioRepository
type ScenarioRepository struct {
	mock.Mock
}

func (m *ScenarioRepository) GetByDay(ctx context.Context, day models.DayID) (*models.Scenario, error) {
	args := m.Called(ctx, day)
	scenario, _ := args.Get(0).(*models.Scenario)
	return scenario, args.Error(1)
}
func (m *ScenarioRepository) ListDays(ctx context.Context) ([]models.DaySummary, error) {
	args := m.Called(ctx)
	days, _ := args.Get(0).([]models.DaySummary)
	return days, args.Error(1)
}

// Mock AchievementRepository
type AchievementRepository struct {
	mock.Mock
}

func (m *AchievementRepository) List(ctx context.Context) ([]models.Achievement, error) {
	args := m.Called(ctx)
	achievements, _ := args.Get(0).([]models.Achievement)
	return achievements, args.Error(1)
}

// Mock EndingRepository
type EndingRepository struct {
	mock.Mock
}

func (m *EndingRepository) List(ctx context.Context) ([]models.Ending, error) {
	args := m.Called(ctx)
	endings, _ := args.Get(0).([]models.Ending)
	return endings, args.Error(1)
}

// Mock GameStateRepository
type GameStateRepository struct {
	mock.Mock
}

func (m *GameStateRepository) Get(ctx context.Context, sessionID string) (*models.GameState, error) {
	args := m.Called(ctx, sessionID)
	state, _ := args.Get(0).(*models.GameState)
	return state, args.Error(1)
}
func (m *GameStateRepository) Save(ctx context.Context, sessionID string, state *models.GameState) error {
	args := m.Called(ctx, sessionID, state)
	return args.Error(0)
}

// Mock GameResultRepository
type GameResultRepository struct {
	mock.Mock
}

func (m *GameResultRepository) Create(ctx context.Context, result *models.GameResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}
func (m *GameResultRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.GameResult, error) {
	args := m.Called(ctx, sessionID)
	result, _ := args.Get(0).(*models.GameResult)
	return result, args.Error(1)
}
