package mocks

import (
	"context"

	"cyberwise-server/internal/models"
	"cyberwise-server/internal/service"

	"github.com/stretchr/testify/mock"
)

// Mock GameplayService
type GameplayService struct {
	mock.Mock
}

func (m *GameplayService) StartSession(ctx context.Context, sessionID string) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) GetSession(ctx context.Context, sessionID string) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) MakeChoice(ctx context.Context, sessionID, choiceID string) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID, choiceID)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) Continue(ctx context.Context, sessionID string) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) GoBack(ctx context.Context, sessionID string) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) AdvanceDay(ctx context.Context, sessionID string) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) JumpToDay(ctx context.Context, sessionID string, day models.DayID) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID, day)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) ResetSession(ctx context.Context, sessionID string) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) DismissAchievement(ctx context.Context, sessionID string) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) DismissTrustWarning(ctx context.Context, sessionID string) (*service.SessionView, error) {
	args := m.Called(ctx, sessionID)
	view, _ := args.Get(0).(*service.SessionView)
	return view, args.Error(1)
}
func (m *GameplayService) GetEnding(ctx context.Context, sessionID string) (*service.EndingView, error) {
	args := m.Called(ctx, sessionID)
	view, _ := args.Get(0).(*service.EndingView)
	return view, args.Error(1)
}
func (m *GameplayService) ListDays(ctx context.Context) ([]models.DaySummary, error) {
	args := m.Called(ctx)
	days, _ := args.Get(0).([]models.DaySummary)
	return days, args.Error(1)
}
func (m *GameplayService) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	args := m.Called(ctx)
	achievements, _ := args.Get(0).([]models.Achievement)
	return achievements, args.Error(1)
}
