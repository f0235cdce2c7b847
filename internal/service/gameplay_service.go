package service

import (
	"context"
	"errors"
	"fmt"

	"cyberwise-server/internal/game"
	"cyberwise-server/internal/messaging"
	"cyberwise-server/internal/models"
	"cyberwise-server/internal/repository"

	"go.uber.org/zap"
)

// GameplayService реализует все операции игрового цикла. Каждая операция
// загружает состояние сессии, прогоняет переход через game.Session и
// сохраняет результат целиком (last-writer-wins).
type GameplayService interface {
	// StartSession начинает новую игру, перезаписывая прежнее состояние сессии.
	StartSession(ctx context.Context, sessionID string) (*SessionView, error)
	// GetSession возвращает снапшот существующей сессии.
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	// MakeChoice применяет выбор игрока на текущем шаге.
	MakeChoice(ctx context.Context, sessionID, choiceID string) (*SessionView, error)
	// Continue закрывает фидбек: шаг вперед, вход в ветку или завершение дня.
	Continue(ctx context.Context, sessionID string) (*SessionView, error)
	// GoBack - навигация на шаг назад с отменой последнего выбора.
	GoBack(ctx context.Context, sessionID string) (*SessionView, error)
	// AdvanceDay переходит к следующему дню; после пятницы завершает игру.
	AdvanceDay(ctx context.Context, sessionID string) (*SessionView, error)
	// JumpToDay переводит сессию на открытый день для переигрывания.
	JumpToDay(ctx context.Context, sessionID string, day models.DayID) (*SessionView, error)
	// ResetSession возвращает сессию к начальному состоянию.
	ResetSession(ctx context.Context, sessionID string) (*SessionView, error)
	// DismissAchievement подтверждает показанное уведомление о достижении.
	DismissAchievement(ctx context.Context, sessionID string) (*SessionView, error)
	// DismissTrustWarning подтверждает показанное trust-предупреждение.
	DismissTrustWarning(ctx context.Context, sessionID string) (*SessionView, error)
	// GetEnding возвращает данные экрана результатов завершенной игры.
	GetEnding(ctx context.Context, sessionID string) (*EndingView, error)
	// ListDays возвращает метаданные всех дней в игровом порядке.
	ListDays(ctx context.Context) ([]models.DaySummary, error)
	// ListAchievements возвращает каталог достижений.
	ListAchievements(ctx context.Context) ([]models.Achievement, error)
}

var _ GameplayService = (*gameplayService)(nil)

type gameplayService struct {
	scenarioRepo    repository.ScenarioRepository
	achievementRepo repository.AchievementRepository
	endingRepo      repository.EndingRepository
	stateRepo       repository.GameStateRepository
	resultRepo      repository.GameResultRepository
	publisher       messaging.ClientUpdatePublisher
	logger          *zap.Logger
}

// NewGameplayService создает сервис игрового цикла.
func NewGameplayService(
	scenarioRepo repository.ScenarioRepository,
	achievementRepo repository.AchievementRepository,
	endingRepo repository.EndingRepository,
	stateRepo repository.GameStateRepository,
	resultRepo repository.GameResultRepository,
	publisher messaging.ClientUpdatePublisher,
	logger *zap.Logger,
) GameplayService {
	return &gameplayService{
		scenarioRepo:    scenarioRepo,
		achievementRepo: achievementRepo,
		endingRepo:      endingRepo,
		stateRepo:       stateRepo,
		resultRepo:      resultRepo,
		publisher:       publisher,
		logger:          logger.Named("GameplayService"),
	}
}

func (s *gameplayService) loadSession(ctx context.Context, sessionID string) (*game.Session, error) {
	state, err := s.stateRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return game.Restore(*state), nil
}

// saveAndView сохраняет состояние и собирает снапшот для клиента.
func (s *gameplayService) saveAndView(ctx context.Context, sessionID string, sess *game.Session) (*SessionView, error) {
	if err := s.stateRepo.Save(ctx, sessionID, &sess.State); err != nil {
		return nil, err
	}
	return s.buildView(ctx, sessionID, sess)
}

func (s *gameplayService) buildView(ctx context.Context, sessionID string, sess *game.Session) (*SessionView, error) {
	scenario, err := s.scenarioRepo.GetByDay(ctx, sess.State.CurrentDay)
	if err != nil {
		return nil, err
	}
	return buildSessionView(sessionID, &sess.State, scenario), nil
}

// publishUpdate отправляет одноразовое событие клиенту. Ошибка публикации
// не валит игровую операцию: состояние уже сохранено, событие best-effort.
func (s *gameplayService) publishUpdate(ctx context.Context, payload models.ClientGameUpdate) {
	if err := s.publisher.PublishClientUpdate(ctx, payload); err != nil {
		s.logger.Warn("Failed to publish client update",
			zap.Error(err),
			zap.String("sessionID", payload.SessionID),
			zap.String("updateType", string(payload.UpdateType)),
		)
	}
}

func (s *gameplayService) publishAchievement(ctx context.Context, sessionID, achievementID string) {
	id := achievementID
	s.publishUpdate(ctx, models.ClientGameUpdate{
		SessionID:     sessionID,
		UpdateType:    models.ClientUpdateAchievementUnlocked,
		AchievementID: &id,
	})
}

// StartSession начинает новую игру. Существующее состояние сессии
// перезаписывается без вопросов - клиент сам решает, когда начинать заново.
func (s *gameplayService) StartSession(ctx context.Context, sessionID string) (*SessionView, error) {
	sess := game.NewSession()
	sess.Start()
	s.logger.Info("Game session started", zap.String("sessionID", sessionID))
	return s.saveAndView(ctx, sessionID, sess)
}

func (s *gameplayService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, sessionID, sess)
}

// MakeChoice применяет выбор игрока: валидирует его против контента,
// проверяет trust-блокировку, прогоняет через движок и публикует
// заработанные события (достижения, trust-предупреждение).
func (s *gameplayService) MakeChoice(ctx context.Context, sessionID, choiceID string) (*SessionView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st := &sess.State
	if !st.GameStarted {
		return nil, models.ErrGameNotStarted
	}

	scenario, err := s.scenarioRepo.GetByDay(ctx, st.CurrentDay)
	if err != nil {
		return nil, err
	}
	step := game.CurrentStep(scenario, st.CurrentStepIndex, st.CurrentBranch)
	if step == nil {
		return nil, models.ErrStepNotFound
	}
	choice := step.FindChoice(choiceID)
	if choice == nil {
		return nil, models.ErrChoiceNotFound
	}
	if choice.RequiresTrustLevel != nil && st.TrustLevel < *choice.RequiresTrustLevel {
		s.logger.Debug("Choice rejected: trust too low",
			zap.String("sessionID", sessionID),
			zap.String("choiceID", choiceID),
			zap.Int("trustLevel", st.TrustLevel),
			zap.Int("required", *choice.RequiresTrustLevel),
		)
		return nil, models.ErrChoiceLocked
	}

	warningWasPending := st.PendingTrustWarning
	if err := sess.MakeChoice(game.ChoiceInput{
		Day:                st.CurrentDay,
		StepID:             step.ID,
		ChoiceID:           choice.ID,
		Quality:            choice.Quality,
		ScoreChange:        choice.SecurityScoreChange,
		TrustChange:        choice.TrustChange,
		NextBranch:         choice.NextBranch,
		AchievementTrigger: choice.AchievementTrigger,
	}); err != nil {
		return nil, err
	}

	// Прямой триггер из контента уже открыт движком - уведомляем клиента.
	if choice.AchievementTrigger != nil && st.PendingAchievement != nil &&
		*st.PendingAchievement == *choice.AchievementTrigger {
		s.publishAchievement(ctx, sessionID, *choice.AchievementTrigger)
	}

	// Вычисляемые правила проверяются после каждого выбора (кроме финальных).
	earned := game.EvaluateAchievements(st.ChoiceHistory, st.SecurityScore, st.TrustLevel, st.UnlockedAchievements, false)
	for _, id := range earned {
		if sess.UnlockAchievement(id) {
			s.publishAchievement(ctx, sessionID, id)
		}
	}

	if st.PendingTrustWarning && !warningWasPending {
		trust := st.TrustLevel
		s.publishUpdate(ctx, models.ClientGameUpdate{
			SessionID:  sessionID,
			UpdateType: models.ClientUpdateTrustWarning,
			TrustLevel: &trust,
		})
	}

	s.logger.Debug("Choice applied",
		zap.String("sessionID", sessionID),
		zap.String("choiceID", choiceID),
		zap.Int("securityScore", st.SecurityScore),
		zap.Int("trustLevel", st.TrustLevel),
	)
	return s.saveAndView(ctx, sessionID, sess)
}

// Continue закрывает показ фидбека. На последнем шаге пути завершает день
// и прогоняет вычисляемые достижения (с финальными правилами, если это
// пятница); иначе двигает указатель шага или входит в отложенную ветку.
func (s *gameplayService) Continue(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st := &sess.State
	if !st.ShowingFeedback {
		return nil, game.ErrNotShowingFeedback
	}

	scenario, err := s.scenarioRepo.GetByDay(ctx, st.CurrentDay)
	if err != nil {
		return nil, err
	}

	isLastStep := st.PendingBranch == nil &&
		st.CurrentStepIndex >= game.TotalSteps(scenario, st.CurrentBranch)-1
	if isLastStep {
		sess.CompleteDay()
		earned := game.EvaluateAchievements(
			st.ChoiceHistory,
			st.SecurityScore,
			st.TrustLevel,
			st.UnlockedAchievements,
			game.IsLastDay(st.CurrentDay),
		)
		for _, id := range earned {
			if sess.UnlockAchievement(id) {
				s.publishAchievement(ctx, sessionID, id)
			}
		}
		s.logger.Info("Day completed",
			zap.String("sessionID", sessionID),
			zap.String("day", string(st.CurrentDay)),
			zap.Int("securityScore", st.SecurityScore),
		)
	} else if err := sess.AdvanceStep(); err != nil {
		return nil, err
	}

	return s.saveAndView(ctx, sessionID, sess)
}

func (s *gameplayService) GoBack(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.GoBack()
	return s.saveAndView(ctx, sessionID, sess)
}

// AdvanceDay вызывается с экрана итогов дня. После последнего дня
// завершает игру: резолвит концовку, архивирует результат и публикует
// событие завершения.
func (s *gameplayService) AdvanceDay(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st := &sess.State
	if !st.HasCompletedDay(st.CurrentDay) {
		return nil, ErrDayNotCompleted
	}

	if !game.IsLastDay(st.CurrentDay) {
		next, _ := game.NextDay(st.CurrentDay)
		if err := sess.AdvanceToNextDay(next); err != nil {
			return nil, err
		}
		return s.saveAndView(ctx, sessionID, sess)
	}

	if !st.GameCompleted {
		sess.CompleteGame()
		if err := s.archiveResult(ctx, sessionID, st); err != nil {
			// Архив не должен блокировать завершение игры - состояние
			// сессии уже несет все данные для экрана результатов.
			s.logger.Error("Failed to archive game result", zap.Error(err), zap.String("sessionID", sessionID))
		}
	}
	return s.saveAndView(ctx, sessionID, sess)
}

func (s *gameplayService) archiveResult(ctx context.Context, sessionID string, st *models.GameState) error {
	endings, err := s.endingRepo.List(ctx)
	if err != nil {
		return err
	}
	trust := st.TrustLevel
	ending, err := game.ResolveEnding(endings, st.SecurityScore, &trust)
	if err != nil {
		return err
	}

	performance := make(map[models.DayID]int, len(game.DayOrder))
	for _, entry := range dayPerformanceEntries(st.ChoiceHistory) {
		performance[entry.Day] = entry.Percent
	}

	result := &models.GameResult{
		SessionID:            sessionID,
		FinalScore:           st.SecurityScore,
		FinalTrust:           st.TrustLevel,
		EndingID:             ending.Ending.ID,
		TrustPenalized:       ending.TrustPenalized,
		UnlockedAchievements: append([]string{}, st.UnlockedAchievements...),
		DayPerformance:       performance,
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return err
	}

	endingID := ending.Ending.ID
	s.publishUpdate(ctx, models.ClientGameUpdate{
		SessionID:  sessionID,
		UpdateType: models.ClientUpdateGameCompleted,
		EndingID:   &endingID,
	})
	s.logger.Info("Game completed",
		zap.String("sessionID", sessionID),
		zap.Int("finalScore", st.SecurityScore),
		zap.Int("finalTrust", st.TrustLevel),
		zap.String("endingID", endingID),
		zap.Bool("trustPenalized", ending.TrustPenalized),
	)
	return nil
}

// JumpToDay переводит сессию на день для переигрывания. Дни открываются
// последовательно: прыгнуть можно на завершенный день или на первый
// незавершенный.
func (s *gameplayService) JumpToDay(ctx context.Context, sessionID string, day models.DayID) (*SessionView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st := &sess.State
	if !game.IsValidDay(day) {
		return nil, models.ErrUnknownDay
	}
	if !st.HasCompletedDay(day) && game.DayIndex(day) > len(st.CompletedDays) {
		return nil, fmt.Errorf("%w: %s", ErrDayLocked, day)
	}

	if err := sess.JumpToDay(day); err != nil {
		return nil, err
	}
	// Переигрывание открытого дня означает новый исход игры.
	st.GameCompleted = false

	s.logger.Info("Session jumped to day",
		zap.String("sessionID", sessionID),
		zap.String("day", string(day)),
		zap.Int("securityScore", st.SecurityScore),
		zap.Int("trustLevel", st.TrustLevel),
	)
	return s.saveAndView(ctx, sessionID, sess)
}

func (s *gameplayService) ResetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, models.ErrSessionNotFound) {
			return nil, err
		}
		sess = game.NewSession()
	}
	sess.Reset()
	s.logger.Info("Game session reset", zap.String("sessionID", sessionID))
	return s.saveAndView(ctx, sessionID, sess)
}

func (s *gameplayService) DismissAchievement(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.DismissAchievement()
	return s.saveAndView(ctx, sessionID, sess)
}

func (s *gameplayService) DismissTrustWarning(ctx context.Context, sessionID string) (*SessionView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.DismissTrustWarning()
	return s.saveAndView(ctx, sessionID, sess)
}

// GetEnding собирает экран результатов: концовку (с учетом trust-штрафа),
// статус всех достижений каталога и перформанс по дням.
func (s *gameplayService) GetEnding(ctx context.Context, sessionID string) (*EndingView, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st := &sess.State
	if !st.GameCompleted {
		return nil, models.ErrGameNotCompleted
	}

	endings, err := s.endingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	trust := st.TrustLevel
	ending, err := game.ResolveEnding(endings, st.SecurityScore, &trust)
	if err != nil {
		return nil, err
	}

	catalog, err := s.achievementRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	achievements := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		achievements = append(achievements, AchievementStatus{
			Achievement: a,
			Unlocked:    st.HasAchievement(a.ID),
		})
	}

	return &EndingView{
		Ending:           ending.Ending,
		TrustPenalized:   ending.TrustPenalized,
		PenaltyNarrative: ending.PenaltyNarrative,
		FinalScore:       st.SecurityScore,
		ScoreCategory:    game.ScoreCategory(st.SecurityScore),
		ScoreColor:       game.ScoreColor(st.SecurityScore),
		FinalTrust:       st.TrustLevel,
		TrustLabel:       game.TrustLabel(st.TrustLevel),
		Achievements:     achievements,
		DayPerformance:   dayPerformanceEntries(st.ChoiceHistory),
	}, nil
}

func (s *gameplayService) ListDays(ctx context.Context) ([]models.DaySummary, error) {
	return s.scenarioRepo.ListDays(ctx)
}

func (s *gameplayService) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	return s.achievementRepo.List(ctx)
}
