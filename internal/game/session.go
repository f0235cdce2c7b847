package game

import (
	"errors"

	"cyberwise-server/internal/models"
)

// LowTrustThreshold - порог trust, при падении ниже которого один раз за
// сессию поднимается предупреждение.
const LowTrustThreshold = 20

// Ошибки нарушения порядка операций. Состояние при них не меняется.
var (
	ErrAlreadyShowingFeedback = errors.New("choice already made, feedback is showing")
	ErrNotShowingFeedback     = errors.New("no feedback to advance from")
)

// Session владеет мутабельным состоянием игры и реализует девять операций
// перехода. Все операции атомарны: при ошибке состояние не меняется.
// Session не выполняет I/O и ничего не знает о хранилище - загрузка и
// сохранение состояния лежат на сервисном слое.
type Session struct {
	State models.GameState
}

// NewSession создает сессию в начальном (до старта) состоянии.
func NewSession() *Session {
	s := &Session{}
	s.State = initialState()
	return s
}

// Restore восстанавливает сессию из сохраненного состояния.
func Restore(state models.GameState) *Session {
	return &Session{State: state}
}

func initialState() models.GameState {
	return models.GameState{
		CurrentDay:           DayOrder[0],
		CurrentStepIndex:     0,
		SecurityScore:        InitialSecurityScore,
		TrustLevel:           InitialTrustLevel,
		UnlockedAchievements: []string{},
		ChoiceHistory:        []models.ChoiceRecord{},
		CompletedDays:        []models.DayID{},
	}
}

// Start сбрасывает все поля к начальным значениям и помечает игру начатой.
func (s *Session) Start() {
	s.State = initialState()
	s.State.GameStarted = true
}

// ChoiceInput - параметры применяемого выбора. Сервисный слой заполняет
// их из контента сценария; движок контенту доверяет.
type ChoiceInput struct {
	Day                models.DayID
	StepID             string
	ChoiceID           string
	Quality            models.ChoiceQuality
	ScoreChange        int
	TrustChange        int
	NextBranch         *string
	AchievementTrigger *string
}

// MakeChoice применяет выбор: пишет запись истории, применяет дельты с
// клампингом, открывает прямой триггер достижения, поднимает одноразовое
// trust-предупреждение и откладывает переход в ветку до AdvanceStep.
// Вызов во время показа фидбека - ошибка вызывающего, отклоняется.
func (s *Session) MakeChoice(in ChoiceInput) error {
	if s.State.ShowingFeedback {
		return ErrAlreadyShowingFeedback
	}

	record := models.ChoiceRecord{
		DayID:       in.Day,
		StepID:      in.StepID,
		ChoiceID:    in.ChoiceID,
		Quality:     in.Quality,
		ScoreChange: in.ScoreChange,
		TrustChange: in.TrustChange,
	}

	s.State.ChoiceHistory = append(s.State.ChoiceHistory, record)
	s.State.SecurityScore = Clamp(s.State.SecurityScore + in.ScoreChange)

	newTrust := Clamp(s.State.TrustLevel + in.TrustChange)
	s.State.TrustLevel = newTrust
	if newTrust < LowTrustThreshold && !s.State.TrustWarningShown {
		// Одноразовое событие на всю сессию, не на каждое пересечение порога.
		s.State.TrustWarningShown = true
		s.State.PendingTrustWarning = true
	}

	s.State.PendingAchievement = nil
	s.State.ChoiceUnlocks = nil
	if in.AchievementTrigger != nil && !s.State.HasAchievement(*in.AchievementTrigger) {
		s.State.UnlockedAchievements = append(s.State.UnlockedAchievements, *in.AchievementTrigger)
		s.State.PendingAchievement = in.AchievementTrigger
		s.State.ChoiceUnlocks = append(s.State.ChoiceUnlocks, *in.AchievementTrigger)
	}

	// Ветка НЕ применяется сейчас - фидбек должен ссылаться на исходный шаг.
	s.State.PendingBranch = in.NextBranch
	s.State.ShowingFeedback = true
	choiceID := in.ChoiceID
	s.State.LastChoiceID = &choiceID
	return nil
}

// AdvanceStep закрывает фидбек: входит в отложенную ветку на индекс 0 либо
// двигает указатель шага вперед внутри текущего пути.
func (s *Session) AdvanceStep() error {
	if !s.State.ShowingFeedback {
		return ErrNotShowingFeedback
	}
	if s.State.PendingBranch != nil {
		s.State.CurrentBranch = s.State.PendingBranch
		s.State.CurrentStepIndex = 0
		s.State.PendingBranch = nil
	} else {
		s.State.CurrentStepIndex++
	}
	s.State.ShowingFeedback = false
	s.State.LastChoiceID = nil
	// Фидбек закрыт - выбор больше не отменяется, его открытия финальны.
	s.State.ChoiceUnlocks = nil
	return nil
}

// GoBack - навигация назад. Три случая по порядку:
//  1. показывается фидбек: отменяем только что сделанный выбор (дельты,
//     история, достижение, если оно было открыто именно этим выбором),
//     индекс шага не меняется - игрок снова видит выборы того же шага;
//  2. индекс > 0 и есть история: отменяем последнюю запись и отступаем
//     на шаг назад;
//  3. индекс > 0 без истории: просто отступаем на шаг.
//
// На нулевом индексе без фидбека - no-op. Отмена не пересекает вход в
// ветку: внутри ветки с индекса 0 назад не уйти.
//
// Отмена после клампинга неточна: если прямое применение уперлось в
// границу, вычитание дельты не вернет исходное "сырое" значение. Это
// сознательно сохраненное поведение, закреплено тестами.
func (s *Session) GoBack() {
	st := &s.State
	if st.CurrentStepIndex <= 0 && !st.ShowingFeedback {
		return
	}

	if st.ShowingFeedback && len(st.ChoiceHistory) > 0 {
		last := st.ChoiceHistory[len(st.ChoiceHistory)-1]
		st.SecurityScore = Clamp(st.SecurityScore - last.ScoreChange)
		st.TrustLevel = Clamp(st.TrustLevel - last.TrustChange)
		st.ChoiceHistory = st.ChoiceHistory[:len(st.ChoiceHistory)-1]
		// Отзываем ВСЕ достижения этого выбора: прямой триггер и правила,
		// сработавшие на его дельтах, а не только последнее уведомление.
		for _, id := range st.ChoiceUnlocks {
			st.UnlockedAchievements = removeString(st.UnlockedAchievements, id)
		}
		st.ChoiceUnlocks = nil
		st.PendingAchievement = nil
		st.PendingBranch = nil
		st.ShowingFeedback = false
		st.LastChoiceID = nil
		return
	}

	if st.CurrentStepIndex > 0 && len(st.ChoiceHistory) > 0 {
		last := st.ChoiceHistory[len(st.ChoiceHistory)-1]
		st.CurrentStepIndex--
		st.SecurityScore = Clamp(st.SecurityScore - last.ScoreChange)
		st.TrustLevel = Clamp(st.TrustLevel - last.TrustChange)
		st.ChoiceHistory = st.ChoiceHistory[:len(st.ChoiceHistory)-1]
		st.PendingAchievement = nil
		st.PendingBranch = nil
		st.ShowingFeedback = false
		st.LastChoiceID = nil
		return
	}

	if st.CurrentStepIndex > 0 {
		st.CurrentStepIndex--
		st.PendingBranch = nil
		st.ShowingFeedback = false
		st.LastChoiceID = nil
	}
}

// CompleteDay помечает текущий день завершенным. Сам день не переключает.
func (s *Session) CompleteDay() {
	if !s.State.HasCompletedDay(s.State.CurrentDay) {
		s.State.CompletedDays = append(s.State.CompletedDays, s.State.CurrentDay)
	}
	s.State.ShowingFeedback = false
	s.State.PendingBranch = nil
	s.State.ChoiceUnlocks = nil
}

// AdvanceToNextDay переключает сессию на следующий день.
func (s *Session) AdvanceToNextDay(nextDay models.DayID) error {
	if !IsValidDay(nextDay) {
		return models.ErrUnknownDay
	}
	s.State.CurrentDay = nextDay
	s.State.CurrentStepIndex = 0
	s.State.CurrentBranch = nil
	s.State.PendingBranch = nil
	s.State.ShowingFeedback = false
	s.State.LastChoiceID = nil
	s.State.ChoiceUnlocks = nil
	return nil
}

// CompleteGame помечает игру завершенной. Идемпотентна.
func (s *Session) CompleteGame() {
	s.State.GameCompleted = true
}

// JumpToDay переводит сессию на день для переигрывания: откатывает все
// дельты ранее записанных выборов этого дня (суммой, с клампингом),
// удаляет его записи истории и отметку завершения, сбрасывает указатели
// пути. Флаг trust-предупреждения перевыводится из нового trust: если
// после отката trust все еще ниже порога - оставляем как есть, иначе
// снимаем, чтобы предупреждение могло показаться снова.
func (s *Session) JumpToDay(day models.DayID) error {
	if !IsValidDay(day) {
		return models.ErrUnknownDay
	}
	st := &s.State

	scoreAdjust, trustAdjust := 0, 0
	kept := st.ChoiceHistory[:0:0]
	for _, record := range st.ChoiceHistory {
		if record.DayID == day {
			scoreAdjust -= record.ScoreChange
			trustAdjust -= record.TrustChange
			continue
		}
		kept = append(kept, record)
	}
	if kept == nil {
		kept = []models.ChoiceRecord{}
	}

	newTrust := Clamp(st.TrustLevel + trustAdjust)
	st.SecurityScore = Clamp(st.SecurityScore + scoreAdjust)
	st.TrustLevel = newTrust
	st.ChoiceHistory = kept

	completed := st.CompletedDays[:0:0]
	for _, d := range st.CompletedDays {
		if d != day {
			completed = append(completed, d)
		}
	}
	if completed == nil {
		completed = []models.DayID{}
	}
	st.CompletedDays = completed

	st.GameStarted = true
	st.CurrentDay = day
	st.CurrentStepIndex = 0
	st.CurrentBranch = nil
	st.PendingBranch = nil
	st.ShowingFeedback = false
	st.LastChoiceID = nil
	st.ChoiceUnlocks = nil
	if newTrust >= LowTrustThreshold {
		st.TrustWarningShown = false
	}
	st.PendingTrustWarning = false
	return nil
}

// Reset возвращает сессию в начальное состояние, включая started = false.
func (s *Session) Reset() {
	s.State = initialState()
}

// UnlockAchievement открывает достижение и делает его единственным
// ожидающим уведомлением. Возвращает false, если уже открыто.
// Во время показа фидбека открытие приписывается текущему выбору и
// будет отозвано вместе с ним при GoBack.
func (s *Session) UnlockAchievement(id string) bool {
	if s.State.HasAchievement(id) {
		return false
	}
	s.State.UnlockedAchievements = append(s.State.UnlockedAchievements, id)
	s.State.PendingAchievement = &id
	if s.State.ShowingFeedback {
		s.State.ChoiceUnlocks = append(s.State.ChoiceUnlocks, id)
	}
	return true
}

// DismissAchievement сбрасывает ожидающее уведомление о достижении.
func (s *Session) DismissAchievement() {
	s.State.PendingAchievement = nil
}

// DismissTrustWarning сбрасывает ожидающее trust-предупреждение.
func (s *Session) DismissTrustWarning() {
	s.State.PendingTrustWarning = false
}

func removeString(list []string, value string) []string {
	out := list[:0:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
