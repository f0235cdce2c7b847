package service

import (
	"encoding/json"

	"cyberwise-server/internal/game"
	"cyberwise-server/internal/models"
)

// StepView - текущий шаг в том виде, в котором его видит клиент: выборы
// перемешаны детерминированно, залоченные перечислены отдельно.
type StepView struct {
	ID                string          `json:"id"`
	Narrative         string          `json:"narrative"`
	Choices           []models.Choice `json:"choices"`
	LockedChoiceIDs   []string        `json:"locked_choice_ids,omitempty"`
	SimulationContent json.RawMessage `json:"simulation_content,omitempty"`
}

// DayView - метаданные текущего дня без контента шагов.
type DayView struct {
	ID                models.DayID `json:"id"`
	Title             string       `json:"title"`
	DayLabel          string       `json:"day_label"`
	BloomsLevel       string       `json:"blooms_level"`
	LearningObjective string       `json:"learning_objective"`
	SimulationType    string       `json:"simulation_type"`
	Intro             string       `json:"intro"`
}

// SessionView - полный снапшот сессии для клиента после любой операции.
type SessionView struct {
	SessionID string  `json:"session_id"`
	Day       DayView `json:"day"`

	Step       *StepView `json:"step,omitempty"` // nil после завершения дня
	StepIndex  int       `json:"step_index"`
	TotalSteps int       `json:"total_steps"`
	IsLastStep bool      `json:"is_last_step"`

	ShowingFeedback bool `json:"showing_feedback"`
	// LastChoice - только что сделанный выбор вместе с фидбеком,
	// присутствует только пока showing_feedback.
	LastChoice *models.Choice `json:"last_choice,omitempty"`

	SecurityScore int    `json:"security_score"`
	ScoreCategory string `json:"score_category"`
	ScoreColor    string `json:"score_color"`
	TrustLevel    int    `json:"trust_level"`
	TrustLabel    string `json:"trust_label"`

	UnlockedAchievements []string       `json:"unlocked_achievements"`
	PendingAchievement   *string        `json:"pending_achievement,omitempty"`
	PendingTrustWarning  bool           `json:"pending_trust_warning"`
	CompletedDays        []models.DayID `json:"completed_days"`
	Progress             int            `json:"progress"`

	CanGoBack     bool `json:"can_go_back"`
	GameStarted   bool `json:"game_started"`
	GameCompleted bool `json:"game_completed"`
}

// AchievementStatus - достижение каталога с признаком открытия, для
// экрана результатов.
type AchievementStatus struct {
	models.Achievement
	Unlocked bool `json:"unlocked"`
}

// DayPerformanceEntry - процент качества выборов за один день.
type DayPerformanceEntry struct {
	Day     models.DayID `json:"day"`
	Label   string       `json:"label"`
	Percent int          `json:"percent"`
}

// EndingView - данные экрана результатов завершенной игры.
type EndingView struct {
	Ending           models.Ending `json:"ending"`
	TrustPenalized   bool          `json:"trust_penalized"`
	PenaltyNarrative *string       `json:"penalty_narrative,omitempty"`

	FinalScore    int    `json:"final_score"`
	ScoreCategory string `json:"score_category"`
	ScoreColor    string `json:"score_color"`
	FinalTrust    int    `json:"final_trust"`
	TrustLabel    string `json:"trust_label"`

	Achievements   []AchievementStatus   `json:"achievements"`
	DayPerformance []DayPerformanceEntry `json:"day_performance"`
}

// buildSessionView собирает снапшот сессии из состояния и контента дня.
func buildSessionView(sessionID string, state *models.GameState, scenario *models.Scenario) *SessionView {
	view := &SessionView{
		SessionID: sessionID,
		Day: DayView{
			ID:                scenario.ID,
			Title:             scenario.Title,
			DayLabel:          scenario.DayLabel,
			BloomsLevel:       scenario.BloomsLevel,
			LearningObjective: scenario.LearningObjective,
			SimulationType:    scenario.SimulationType,
			Intro:             scenario.Intro,
		},
		StepIndex:            state.CurrentStepIndex,
		TotalSteps:           game.TotalSteps(scenario, state.CurrentBranch),
		ShowingFeedback:      state.ShowingFeedback,
		SecurityScore:        state.SecurityScore,
		ScoreCategory:        game.ScoreCategory(state.SecurityScore),
		ScoreColor:           game.ScoreColor(state.SecurityScore),
		TrustLevel:           state.TrustLevel,
		TrustLabel:           game.TrustLabel(state.TrustLevel),
		UnlockedAchievements: state.UnlockedAchievements,
		PendingAchievement:   state.PendingAchievement,
		PendingTrustWarning:  state.PendingTrustWarning,
		CompletedDays:        state.CompletedDays,
		Progress:             game.ProgressPercentage(state.CompletedDays),
		CanGoBack:            state.CurrentStepIndex > 0 || state.ShowingFeedback,
		GameStarted:          state.GameStarted,
		GameCompleted:        state.GameCompleted,
	}

	step := game.CurrentStep(scenario, state.CurrentStepIndex, state.CurrentBranch)
	if step != nil {
		view.Step = &StepView{
			ID:                step.ID,
			Narrative:         step.Narrative,
			Choices:           game.ShuffledChoices(step),
			LockedChoiceIDs:   game.LockedChoiceIDs(step, state.TrustLevel),
			SimulationContent: step.SimulationContent,
		}
		view.IsLastStep = state.PendingBranch == nil &&
			state.CurrentStepIndex >= view.TotalSteps-1

		if state.ShowingFeedback && state.LastChoiceID != nil {
			view.LastChoice = step.FindChoice(*state.LastChoiceID)
		}
	}
	return view
}

// dayPerformanceEntries считает перформанс по всем дням в игровом порядке.
func dayPerformanceEntries(history []models.ChoiceRecord) []DayPerformanceEntry {
	entries := make([]DayPerformanceEntry, 0, len(game.DayOrder))
	for _, day := range game.DayOrder {
		var qualities []models.ChoiceQuality
		for _, record := range history {
			if record.DayID == day {
				qualities = append(qualities, record.Quality)
			}
		}
		entries = append(entries, DayPerformanceEntry{
			Day:     day,
			Label:   game.DayLabels[day],
			Percent: game.DayPerformance(qualities),
		})
	}
	return entries
}
