package models

// ErrorResponse - стандартный формат ошибки API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Машиночитаемые коды ошибок API.
const (
	ErrCodeSessionNotFound  = "session_not_found"
	ErrCodeScenarioNotFound = "scenario_not_found"
	ErrCodeStepNotFound     = "step_not_found"
	ErrCodeChoiceNotFound   = "choice_not_found"
	ErrCodeChoiceLocked     = "choice_locked"
	ErrCodeGameNotStarted   = "game_not_started"
	ErrCodeGameNotCompleted = "game_not_completed"
	ErrCodeDayLocked        = "day_locked"
	ErrCodeDayNotCompleted  = "day_not_completed"
	ErrCodeUnknownDay       = "unknown_day"
	ErrCodeInvalidPhase     = "invalid_phase"
	ErrCodeValidation       = "validation_error"
	ErrCodeBadRequest       = "bad_request"
	ErrCodeInternal         = "internal_error"
)
